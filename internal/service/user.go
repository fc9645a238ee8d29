package service

import (
	"Crowdfunding/internal/metrics"
	"Crowdfunding/internal/repo"
	"context"

	"go.uber.org/zap"
)

// UserService инкапсулирует бизнес-логику работы с пользователями.
// Коды репозитория сводятся к bool: true означает, что операция выполнена.
type UserService struct {
	repo   repo.UserRepository
	logger *zap.SugaredLogger
}

func NewUserService(r repo.UserRepository, logger *zap.SugaredLogger) *UserService {
	return &UserService{repo: r, logger: logger}
}

// AddUser регистрирует пользователя с указанным именем.
func (s *UserService) AddUser(ctx context.Context, name string) (bool, error) {
	code, err := s.repo.Create(ctx, name)
	if err != nil {
		return false, err
	}
	return s.done("create", name, code), nil
}

// GetUser возвращает пользователя по имени или nil.
func (s *UserService) GetUser(ctx context.Context, name string) (*repo.UserRecord, error) {
	return s.repo.Read(ctx, repo.ByName(name))
}

// UpdateUser переименовывает пользователя name в newName.
func (s *UserService) UpdateUser(ctx context.Context, name, newName string) (bool, error) {
	code, err := s.repo.Update(ctx, repo.ByName(name), newName)
	if err != nil {
		return false, err
	}
	return s.done("update", name, code), nil
}

// RemoveUser удаляет пользователя вместе с его кампаниями.
func (s *UserService) RemoveUser(ctx context.Context, name string) (bool, error) {
	code, err := s.repo.Delete(ctx, repo.ByName(name))
	if err != nil {
		return false, err
	}
	return s.done("delete", name, code), nil
}

// SearchUsers ищет пользователей по подстроке имени.
func (s *UserService) SearchUsers(ctx context.Context, substring string) ([]repo.UserRecord, error) {
	return s.repo.Search(ctx, substring)
}

func (s *UserService) done(op, name string, code repo.UserCode) bool {
	metrics.RecordQuery("user", op, code.String())
	if code != repo.UserSucceed {
		s.logger.Infow("user query rejected", "op", op, "name", name, "code", code.String())
		return false
	}
	return true
}
