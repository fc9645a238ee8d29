package repo

import (
	"Crowdfunding/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// UserRecord: пользователь в виде, отдаваемом наружу.
type UserRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRepository определяет операции над пользователями.
// Каждая операция выполняется в одной транзакции; отсутствие записи возвращается кодом или nil, а не ошибкой.
type UserRepository interface {
	// Create добавляет пользователя с новым сгенерированным ID.
	Create(ctx context.Context, name string) (UserCode, error)

	// Read ищет пользователя по id или имени; nil, если не найден.
	Read(ctx context.Context, ref Ref) (*UserRecord, error)

	// Update переименовывает пользователя.
	Update(ctx context.Context, ref Ref, newName string) (UserCode, error)

	// Delete удаляет пользователя; его кампании удаляются каскадом по внешнему ключу.
	Delete(ctx context.Context, ref Ref) (UserCode, error)

	// Search возвращает пользователей, имя которых содержит подстроку.
	Search(ctx context.Context, substring string) ([]UserRecord, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория пользователей.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, name string) (UserCode, error) {
	u := &model.User{ID: model.GenerateID(), Name: name}
	if code := userCodeFor(model.InvalidField(u.Validate())); code != UserSucceed {
		return code, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(u).Error
	})
	switch {
	case err == nil:
		return UserSucceed, nil
	case isConflict(err):
		return UserNameAlreadyExist, nil
	default:
		return UserUnexpected, fmt.Errorf("create user %q: %w", name, err)
	}
}

func (r *userRepo) Read(ctx context.Context, ref Ref) (*UserRecord, error) {
	var rec *UserRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUser(tx, ref)
		if err != nil || u == nil {
			return err
		}
		rec = &UserRecord{ID: u.ID, Name: u.Name}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read user %s: %w", ref, err)
	}
	return rec, nil
}

func (r *userRepo) Update(ctx context.Context, ref Ref, newName string) (UserCode, error) {
	code := UserUnexpected
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUser(tx, ref)
		if err != nil {
			return err
		}
		if u == nil {
			code = UserNotExist
			return nil
		}

		u.Name = newName
		if code = userCodeFor(model.InvalidField(u.Validate())); code != UserSucceed {
			return nil
		}
		return tx.Model(&model.User{}).Where("id = ?", u.ID).Update("name", newName).Error
	})
	switch {
	case err == nil:
		return code, nil
	case isConflict(err):
		return UserNameAlreadyExist, nil
	default:
		return UserUnexpected, fmt.Errorf("update user %s: %w", ref, err)
	}
}

func (r *userRepo) Delete(ctx context.Context, ref Ref) (UserCode, error) {
	code := UserUnexpected
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUser(tx, ref)
		if err != nil {
			return err
		}
		if u == nil {
			code = UserNotExist
			return nil
		}
		if err := tx.Where("id = ?", u.ID).Delete(&model.User{}).Error; err != nil {
			return err
		}
		code = UserSucceed
		return nil
	})
	if err != nil {
		return UserUnexpected, fmt.Errorf("delete user %s: %w", ref, err)
	}
	return code, nil
}

func (r *userRepo) Search(ctx context.Context, substring string) ([]UserRecord, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where(containsClause(tx, "name"), substring).
			Order("name").
			Find(&users).Error
	})
	if err != nil {
		return nil, fmt.Errorf("search users %q: %w", substring, err)
	}

	out := make([]UserRecord, 0, len(users))
	for _, u := range users {
		out = append(out, UserRecord{ID: u.ID, Name: u.Name})
	}
	return out, nil
}

// findUser возвращает пользователя или nil, если записи нет.
func findUser(tx *gorm.DB, ref Ref) (*model.User, error) {
	col, err := ref.column("id")
	if err != nil {
		return nil, err
	}
	var u model.User
	res := tx.Where(col+" = ?", ref.Value).Limit(1).Find(&u)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &u, nil
}
