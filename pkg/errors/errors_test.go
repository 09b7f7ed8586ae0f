package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !IsUniqueViolation(err) {
		t.Error("包装后的 23505 应被识别为唯一约束冲突")
	}
	if IsForeignKeyViolation(err) {
		t.Error("23505 不应被识别为外键冲突")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("23503 应被识别为外键冲突")
	}
}

func TestPlainError(t *testing.T) {
	if IsUniqueViolation(errors.New("boom")) {
		t.Error("普通错误不应被识别为约束冲突")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil 不应被识别为约束冲突")
	}
}
