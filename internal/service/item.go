package service

import (
	"Crowdfunding/internal/metrics"
	"Crowdfunding/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Допустимые значения order_by для списка кампаний.
const (
	OrderByFundingMoney = "총펀딩금액"
	OrderByCreateDate   = "생성일"
)

// ErrUnknownOrder: неизвестное значение order_by.
var ErrUnknownOrder = errors.New("unknown order")

// ItemService инкапсулирует бизнес-логику работы с кампаниями.
type ItemService struct {
	repo   repo.ItemRepository
	logger *zap.SugaredLogger
}

func NewItemService(r repo.ItemRepository, logger *zap.SugaredLogger) *ItemService {
	return &ItemService{repo: r, logger: logger}
}

// AddItem создаёт кампанию вместе с описанием; владелец задаётся в n.User.
func (s *ItemService) AddItem(ctx context.Context, n repo.NewItem) (bool, error) {
	code, err := s.repo.Create(ctx, n)
	if err != nil {
		return false, err
	}
	return s.done("create", n.Name, code), nil
}

// UpdateItem применяет частичное обновление к кампании name.
func (s *ItemService) UpdateItem(ctx context.Context, name string, p repo.ItemPatch) (bool, error) {
	code, err := s.repo.Update(ctx, repo.ByName(name), p)
	if err != nil {
		return false, err
	}
	return s.done("update", name, code), nil
}

// GetItem возвращает кампанию с описанием или nil.
func (s *ItemService) GetItem(ctx context.Context, name string) (*repo.ItemDetail, error) {
	return s.repo.Read(ctx, repo.ByName(name))
}

// RemoveItem удаляет кампанию и её описание.
func (s *ItemService) RemoveItem(ctx context.Context, name string) (bool, error) {
	code, err := s.repo.Delete(ctx, repo.ByName(name))
	if err != nil {
		return false, err
	}
	return s.done("delete", name, code), nil
}

// Sort возвращает все кампании в порядке orderBy.
func (s *ItemService) Sort(ctx context.Context, orderBy string) ([]repo.ItemSummary, error) {
	switch orderBy {
	case OrderByFundingMoney:
		return s.repo.SortByFundingMoney(ctx)
	case OrderByCreateDate:
		return s.repo.SortByCreateDate(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOrder, orderBy)
	}
}

// GetList ищет кампании по подстроке имени.
func (s *ItemService) GetList(ctx context.Context, search string) ([]repo.ItemSummary, error) {
	return s.repo.SearchByName(ctx, search)
}

// DonateFunding засчитывает одно пожертвование размером funding_unit.
// false, если кампании нет.
func (s *ItemService) DonateFunding(ctx context.Context, name string) (bool, error) {
	code, err := s.repo.Donate(ctx, repo.ByName(name))
	if err != nil {
		return false, err
	}
	ok := s.done("donate", name, code)
	metrics.RecordDonation(ok)
	return ok, nil
}

func (s *ItemService) done(op, name string, code repo.ItemCode) bool {
	metrics.RecordQuery("item", op, code.String())
	if code != repo.ItemSucceed {
		s.logger.Infow("item query rejected", "op", op, "item", name, "code", code.String())
		return false
	}
	return true
}
