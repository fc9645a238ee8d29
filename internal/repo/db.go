package repo

import (
	"Crowdfunding/internal/config"
	"Crowdfunding/internal/model"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlitePragmas включает внешние ключи (для каскадного удаления) и ожидание блокировки.
const sqlitePragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// InitDB открывает хранилище, выбранное в конфигурации, и применяет миграции.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.StorageBackend {
	case config.BackendProduction:
		db, err = OpenPostgres(cfg.PostgresDSN())
	default:
		db, err = OpenSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSQLite открывает файл SQLite через modernc.org/sqlite (без cgo).
func OpenSQLite(path string) (*gorm.DB, error) {
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + path + sqlitePragmas}
	db, err := gorm.Open(dial, gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite допускает одного писателя; одно соединение снимает SQLITE_BUSY между транзакциями
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// OpenPostgres подключается к PostgreSQL и настраивает пул соединений.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// Migrate создаёт таблицы user, item и itemContents.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Item{}, &model.ItemContents{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// RemoveSQLiteFile удаляет файл тестовой БД; отсутствие файла не считается ошибкой.
func RemoveSQLiteFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Health пингует БД и возвращает статистику пула.
func Health(ctx context.Context, sqlDB *sql.DB) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := make(map[string]string)
	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	st := sqlDB.Stats()
	stats["status"] = "up"
	stats["open_connections"] = strconv.Itoa(st.OpenConnections)
	stats["in_use"] = strconv.Itoa(st.InUse)
	stats["idle"] = strconv.Itoa(st.Idle)
	return stats
}

func gormConfig() *gorm.Config {
	// конфликты уникальности обрабатываются кодами, логировать их как ошибки не нужно
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}
