package handlers_test

import (
	"Crowdfunding/internal/handlers"
	"Crowdfunding/internal/middleware"
	"Crowdfunding/internal/repo"
	"Crowdfunding/internal/service"
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestRouter собирает роутер поверх SQLite-файла во временном каталоге.
func newTestRouter(t *testing.T) (http.Handler, *sql.DB) {
	t.Helper()
	return newLimitedRouter(t, nil)
}

// newLimitedRouter: то же, но с ограничением частоты запросов.
func newLimitedRouter(t *testing.T, limiter *middleware.RateLimiter) (http.Handler, *sql.DB) {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	logger := zap.NewNop().Sugar()
	users := service.NewUserService(repo.NewUserRepository(db), logger)
	items := service.NewItemService(repo.NewItemRepository(db), logger)
	h := handlers.NewHandler(users, items, sqlDB, logger, limiter)
	return h.Router, sqlDB
}

// call выполняет запрос и разбирает JSON-ответ; статус всегда должен быть 200.
func call(t *testing.T, h http.Handler, method, path string, body any) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func itemBody(user string) map[string]any {
	return map[string]any{
		"user_name":    user,
		"end_date":     "2030/01/02 03:04:05",
		"summary":      "something great",
		"funding_unit": 1000,
		"target_money": 10000,
	}
}
