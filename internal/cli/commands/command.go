package commands

import (
	"Crowdfunding/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
)

// ErrUsage возвращается командой при неверных аргументах; диспетчер печатает Usage.
var ErrUsage = errors.New("usage")

// Command: подкоманда CLI.
type Command interface {
	// Name: имя, которое набирает пользователь, например "donate".
	Name() string
	Description() string
	// Usage: строка использования, например "donate <item>".
	Usage() string
	// Run выполняет команду; args без имени команды.
	Run(ctx context.Context, s *Session, args []string) error
}

// Session связывает команду с сервером и выводом.
type Session struct {
	Cfg *config.Config
	Out io.Writer
}

// url собирает адрес API; сегменты пути экранируются.
func (s *Session) url(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, seg := range segments {
		escaped = append(escaped, url.PathEscape(seg))
	}
	return strings.TrimRight(s.Cfg.ServerURL, "/") + "/" + strings.Join(escaped, "/")
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.Out, format, a...)
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.Out, a...)
}

// withQuery добавляет к URL один параметр запроса.
func withQuery(u, key, value string) string {
	return u + "?" + url.Values{key: []string{value}}.Encode()
}

// Registry: набор команд по имени.
type Registry struct {
	cmds map[string]Command
}

// NewRegistry собирает реестр; команда с повторным именем заменяет прежнюю.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{cmds: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		r.Add(c)
	}
	return r
}

// Default возвращает реестр со всеми командами клиента.
func Default() *Registry {
	return NewRegistry(
		userAddCmd{}, userGetCmd{}, userRenameCmd{}, userDeleteCmd{}, usersCmd{},
		itemAddCmd{}, itemGetCmd{}, itemEditCmd{}, itemDeleteCmd{}, donateCmd{}, itemsCmd{},
		healthCmd{},
	)
}

func (r *Registry) Add(c Command) {
	r.cmds[c.Name()] = c
}

func (r *Registry) Get(name string) (Command, bool) {
	c, ok := r.cmds[name]
	return c, ok
}

// List возвращает команды, отсортированные по имени.
func (r *Registry) List() []Command {
	list := make([]Command, 0, len(r.cmds))
	for _, c := range r.cmds {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Help: общая справка по командам.
func (r *Registry) Help() string {
	var b strings.Builder
	b.WriteString("Crowdfunding CLI\n\nUsage:\n  cfcli [-base-url <host:port>] [-https] <command> [args]\n\nCommands:\n")
	for _, c := range r.List() {
		fmt.Fprintf(&b, "  %-28s %s\n", c.Usage(), c.Description())
	}
	return b.String()
}
