package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrUnknownKey: ключ поиска не "id" и не "name".
var ErrUnknownKey = errors.New("unknown lookup key")

// LookupKey: по какому полю искать запись.
type LookupKey string

const (
	KeyID   LookupKey = "id"
	KeyName LookupKey = "name"
)

// Ref указывает на пользователя или кампанию по id или по имени.
type Ref struct {
	Key   LookupKey
	Value string
}

func ByID(id string) Ref     { return Ref{Key: KeyID, Value: id} }
func ByName(name string) Ref { return Ref{Key: KeyName, Value: name} }

func (r Ref) String() string { return string(r.Key) + "=" + r.Value }

// column возвращает колонку для WHERE; idColumn: имя первичного ключа таблицы.
func (r Ref) column(idColumn string) (string, error) {
	switch r.Key {
	case KeyID:
		return idColumn, nil
	case KeyName:
		return "name", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, string(r.Key))
	}
}

// containsClause: условие "column содержит подстроку" для Where с одним параметром.
// LIKE не подходит: в SQLite он не различает регистр ASCII, а в PostgreSQL различает,
// и его спецсимволы пришлось бы экранировать.
func containsClause(tx *gorm.DB, column string) string {
	if tx.Dialector.Name() == "postgres" {
		return "strpos(" + column + ", ?) > 0"
	}
	return "instr(" + column + ", ?) > 0"
}
