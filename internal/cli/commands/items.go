package commands

import (
	"Crowdfunding/internal/cli/api"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

type itemView struct {
	ItemName        string  `json:"item_name"`
	UserName        string  `json:"user_name"`
	Summary         string  `json:"summary"`
	EndDate         string  `json:"end_date"`
	FundingUnit     int64   `json:"funding_unit"`
	TargetMoney     int64   `json:"target_money"`
	CurrentMoney    int64   `json:"current_money"`
	ParticipantSize int64   `json:"participant_size"`
	FundingGage     float64 `json:"funding_gage"`
}

type itemListView struct {
	ItemName     string `json:"item_name"`
	UserName     string `json:"user_name"`
	CurrentMoney int64  `json:"current_money"`
	Percentage   int64  `json:"percentage"`
	DDay         int    `json:"d-day"`
}

// короткие имена порядка сортировки для командной строки
var orderAliases = map[string]string{
	"funding": "총펀딩금액",
	"created": "생성일",
}

type itemAddCmd struct{}

func (itemAddCmd) Name() string        { return "item-add" }
func (itemAddCmd) Description() string { return "Создать кампанию" }
func (itemAddCmd) Usage() string {
	return `item-add <name> <user> "<YYYY/MM/DD HH:MM:SS>" <funding_unit> <target_money> [summary]`
}

func (itemAddCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) < 5 || len(args) > 6 {
		return ErrUsage
	}
	unit, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		return ErrUsage
	}
	target, err := strconv.ParseInt(args[4], 10, 64)
	if err != nil {
		return ErrUsage
	}
	summary := ""
	if len(args) == 6 {
		summary = args[5]
	}

	payload := map[string]any{
		"user_name":    args[1],
		"end_date":     args[2],
		"summary":      summary,
		"funding_unit": unit,
		"target_money": target,
	}
	if err := api.Call(ctx, http.MethodPost, s.url("item", args[0]), payload, nil); err != nil {
		return err
	}
	s.printf("Created item %s\n", args[0])
	return nil
}

type itemGetCmd struct{}

func (itemGetCmd) Name() string { return "item-get" }
func (itemGetCmd) Description() string {
	return "Показать кампанию по имени (точное совпадение)"
}
func (itemGetCmd) Usage() string { return "item-get <name>" }

func (itemGetCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	var it itemView
	if err := api.Call(ctx, http.MethodGet, s.url("item", args[0]), nil, &it); err != nil {
		return err
	}
	s.printf("name:         %s\n", it.ItemName)
	s.printf("owner:        %s\n", it.UserName)
	s.printf("summary:      %s\n", it.Summary)
	s.printf("end date:     %s\n", it.EndDate)
	s.printf("funding unit: %d\n", it.FundingUnit)
	s.printf("target:       %d\n", it.TargetMoney)
	s.printf("collected:    %d (%.1f%%)\n", it.CurrentMoney, it.FundingGage)
	s.printf("participants: %d\n", it.ParticipantSize)
	return nil
}

type itemEditCmd struct{}

func (itemEditCmd) Name() string { return "item-edit" }
func (itemEditCmd) Description() string {
	return "Изменить поля кампании: name|summary|end_date|funding_unit|participant_size|current_money"
}
func (itemEditCmd) Usage() string { return "item-edit <name> <field>=<value> [<field>=<value> ...]" }

func (itemEditCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	payload := make(map[string]any, len(args)-1)
	for _, kv := range args[1:] {
		field, value, ok := strings.Cut(kv, "=")
		if !ok {
			return ErrUsage
		}
		switch field {
		case "name", "summary", "end_date":
			payload[field] = value
		case "funding_unit", "participant_size", "current_money":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return ErrUsage
			}
			payload[field] = n
		default:
			return ErrUsage
		}
	}

	if err := api.Call(ctx, http.MethodPut, s.url("item", args[0]), payload, nil); err != nil {
		return err
	}
	s.println("Updated:")
	s.printf("  name:   %s\n", args[0])
	s.printf("  fields: %d\n", len(payload))
	return nil
}

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string        { return "item-delete" }
func (itemDeleteCmd) Description() string { return "Удалить кампанию" }
func (itemDeleteCmd) Usage() string       { return "item-delete <name>" }

func (itemDeleteCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := api.Call(ctx, http.MethodDelete, s.url("item", args[0]), nil, nil); err != nil {
		return err
	}
	s.printf("Deleted item %s\n", args[0])
	return nil
}

type donateCmd struct{}

func (donateCmd) Name() string        { return "donate" }
func (donateCmd) Description() string { return "Пожертвовать кампании одну ставку funding_unit" }
func (donateCmd) Usage() string       { return "donate <item>" }

func (donateCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := api.Call(ctx, http.MethodPut, s.url("item", args[0], "donate"), nil, nil); err != nil {
		return err
	}
	s.printf("Donated to %s\n", args[0])
	return nil
}

type itemsCmd struct{}

func (itemsCmd) Name() string { return "items" }
func (itemsCmd) Description() string {
	return "Список кампаний: поиск по имени или сортировка (funding|created)"
}
func (itemsCmd) Usage() string { return "items [--search=<substring>] [--order=funding|created]" }

func (itemsCmd) Run(ctx context.Context, s *Session, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	search := fs.String("search", "", "подстрока имени кампании")
	order := fs.String("order", "", "порядок: funding|created")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	u := s.url("item", "list")
	switch {
	case *search != "":
		u = withQuery(u, "search", *search)
	case *order != "":
		orderBy, ok := orderAliases[*order]
		if !ok {
			return ErrUsage
		}
		u = withQuery(u, "order_by", orderBy)
	default:
		// без параметров сервер отдаёт пустой список
		u = withQuery(u, "order_by", orderAliases["created"])
	}

	var list []itemListView
	if err := api.Call(ctx, http.MethodGet, u, nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		s.println("Нет кампаний")
		return nil
	}
	for _, it := range list {
		s.printf("- %s  owner=%s  money=%d  %d%%  d-day=%d\n",
			it.ItemName, it.UserName, it.CurrentMoney, it.Percentage, it.DDay)
	}
	s.printf("Всего: %d\n", len(list))
	return nil
}

type healthCmd struct{}

func (healthCmd) Name() string        { return "health" }
func (healthCmd) Description() string { return "Проверить доступность сервера и БД" }
func (healthCmd) Usage() string       { return "health" }

func (healthCmd) Run(ctx context.Context, s *Session, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, body, err := api.DoJSON(ctx, http.MethodGet, s.url("health"), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d %s", api.ErrServer, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	s.println(strings.TrimSpace(string(body)))
	return nil
}
