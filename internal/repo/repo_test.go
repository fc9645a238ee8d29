package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB открывает SQLite-файл во временном каталоге (modernc.org/sqlite) и применяет миграции.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// mustCreateUser заводит пользователя и возвращает его запись.
func mustCreateUser(t *testing.T, r UserRepository, name string) *UserRecord {
	t.Helper()
	ctx := context.Background()
	code, err := r.Create(ctx, name)
	require.NoError(t, err)
	require.Equal(t, UserSucceed, code)
	u, err := r.Read(ctx, ByName(name))
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func newItemFor(owner, name string) NewItem {
	return NewItem{
		User:        ByName(owner),
		Name:        name,
		Summary:     "summary of " + name,
		EndDate:     time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
		FundingUnit: 1000,
		TargetMoney: 100000,
	}
}

func mustCreateItem(t *testing.T, r ItemRepository, n NewItem) {
	t.Helper()
	code, err := r.Create(context.Background(), n)
	require.NoError(t, err)
	require.Equal(t, ItemSucceed, code)
}

func countRows(t *testing.T, db *gorm.DB, m any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(m)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

