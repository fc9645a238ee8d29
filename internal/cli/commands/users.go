package commands

import (
	"Crowdfunding/internal/cli/api"
	"context"
	"net/http"
)

type userView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type userAddCmd struct{}

func (userAddCmd) Name() string        { return "user-add" }
func (userAddCmd) Description() string { return "Зарегистрировать пользователя" }
func (userAddCmd) Usage() string       { return "user-add <name>" }

func (userAddCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := api.Call(ctx, http.MethodPost, s.url("user", args[0]), nil, nil); err != nil {
		return err
	}
	s.printf("Created user %s\n", args[0])
	return nil
}

type userGetCmd struct{}

func (userGetCmd) Name() string        { return "user-get" }
func (userGetCmd) Description() string { return "Показать пользователя по имени" }
func (userGetCmd) Usage() string       { return "user-get <name>" }

func (userGetCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	var u userView
	if err := api.Call(ctx, http.MethodGet, s.url("user", args[0]), nil, &u); err != nil {
		return err
	}
	s.printf("id:   %s\n", u.ID)
	s.printf("name: %s\n", u.Name)
	return nil
}

type userRenameCmd struct{}

func (userRenameCmd) Name() string        { return "user-rename" }
func (userRenameCmd) Description() string { return "Переименовать пользователя" }
func (userRenameCmd) Usage() string       { return "user-rename <name> <new-name>" }

func (userRenameCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	payload := map[string]string{"name": args[1]}
	if err := api.Call(ctx, http.MethodPut, s.url("user", args[0]), payload, nil); err != nil {
		return err
	}
	s.printf("Renamed %s -> %s\n", args[0], args[1])
	return nil
}

type userDeleteCmd struct{}

func (userDeleteCmd) Name() string { return "user-delete" }
func (userDeleteCmd) Description() string {
	return "Удалить пользователя вместе с его кампаниями"
}
func (userDeleteCmd) Usage() string { return "user-delete <name>" }

func (userDeleteCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := api.Call(ctx, http.MethodDelete, s.url("user", args[0]), nil, nil); err != nil {
		return err
	}
	s.printf("Deleted user %s\n", args[0])
	return nil
}

type usersCmd struct{}

func (usersCmd) Name() string        { return "users" }
func (usersCmd) Description() string { return "Найти пользователей по подстроке имени" }
func (usersCmd) Usage() string       { return "users [substring]" }

func (usersCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	search := ""
	if len(args) == 1 {
		search = args[0]
	}
	var list []userView
	if err := api.Call(ctx, http.MethodGet, withQuery(s.url("user", "list"), "search", search), nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		s.println("Нет пользователей")
		return nil
	}
	for _, u := range list {
		s.printf("- %s  %s\n", u.Name, u.ID)
	}
	s.printf("Всего: %d\n", len(list))
	return nil
}
