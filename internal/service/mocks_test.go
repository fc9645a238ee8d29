package service

import (
	"Crowdfunding/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, name string) (repo.UserCode, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(repo.UserCode), args.Error(1)
}

func (m *mockUserRepo) Read(ctx context.Context, ref repo.Ref) (*repo.UserRecord, error) {
	args := m.Called(ctx, ref)
	if u, ok := args.Get(0).(*repo.UserRecord); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, ref repo.Ref, newName string) (repo.UserCode, error) {
	args := m.Called(ctx, ref, newName)
	return args.Get(0).(repo.UserCode), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, ref repo.Ref) (repo.UserCode, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(repo.UserCode), args.Error(1)
}

func (m *mockUserRepo) Search(ctx context.Context, substring string) ([]repo.UserRecord, error) {
	args := m.Called(ctx, substring)
	if l, ok := args.Get(0).([]repo.UserRecord); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.ItemRepository
type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Create(ctx context.Context, n repo.NewItem) (repo.ItemCode, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(repo.ItemCode), args.Error(1)
}

func (m *mockItemRepo) Read(ctx context.Context, ref repo.Ref) (*repo.ItemDetail, error) {
	args := m.Called(ctx, ref)
	if d, ok := args.Get(0).(*repo.ItemDetail); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Update(ctx context.Context, ref repo.Ref, p repo.ItemPatch) (repo.ItemCode, error) {
	args := m.Called(ctx, ref, p)
	return args.Get(0).(repo.ItemCode), args.Error(1)
}

func (m *mockItemRepo) Delete(ctx context.Context, ref repo.Ref) (repo.ItemCode, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(repo.ItemCode), args.Error(1)
}

func (m *mockItemRepo) list(args mock.Arguments) ([]repo.ItemSummary, error) {
	if l, ok := args.Get(0).([]repo.ItemSummary); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) SearchByName(ctx context.Context, substring string) ([]repo.ItemSummary, error) {
	return m.list(m.Called(ctx, substring))
}

func (m *mockItemRepo) SortByCreateDate(ctx context.Context) ([]repo.ItemSummary, error) {
	return m.list(m.Called(ctx))
}

func (m *mockItemRepo) SortByFundingMoney(ctx context.Context) ([]repo.ItemSummary, error) {
	return m.list(m.Called(ctx))
}

func (m *mockItemRepo) Donate(ctx context.Context, ref repo.Ref) (repo.ItemCode, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(repo.ItemCode), args.Error(1)
}

var _ repo.ItemRepository = (*mockItemRepo)(nil)
