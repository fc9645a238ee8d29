package commands

import (
	"Crowdfunding/internal/cli/api"
	"context"
	"errors"
	"strings"
)

// Dispatch выполняет команду из args и возвращает код выхода процесса:
// 0 успех, 1 отказ сервера или ошибка, 2 неверный вызов.
func (r *Registry) Dispatch(ctx context.Context, s *Session, args []string) int {
	if len(args) == 0 {
		s.printf("%s", r.Help())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" || name == "-h" || name == "--help" { // cfcli help [command]
		if len(args) == 1 {
			s.printf("%s", r.Help())
			return 0
		}
		if c, ok := r.Get(args[1]); ok {
			s.printf("Usage: %s\n", c.Usage())
			return 0
		}
		s.printf("Unknown command: %s\n\n%s", args[1], r.Help())
		return 2
	}

	c, ok := r.Get(name)
	if !ok {
		s.printf("Unknown command: %s\n\n%s", name, r.Help())
		return 2
	}
	for _, a := range args[1:] {
		if a == "-h" || a == "--help" {
			s.printf("Usage: %s\n", c.Usage())
			return 0
		}
	}

	err := c.Run(ctx, s, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		s.printf("Usage: %s\n", c.Usage())
		return 2
	case errors.Is(err, api.ErrFailed):
		s.printf("%s: FAILED\n", name)
		return 1
	default:
		s.printf("%s error: %v\n", name, err)
		return 1
	}
}
