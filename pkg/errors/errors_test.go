package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation_PgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_applications_job_student"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	if !IsUniqueViolation(wrapped) {
		t.Error("包装后的 23505 应识别为唯一约束冲突")
	}
	if !IsUniqueViolation(wrapped, "uq_applications_job_student") {
		t.Error("约束名一致时应识别")
	}
	if IsUniqueViolation(wrapped, "uq_users_email") {
		t.Error("约束名不一致时不应识别")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("外键冲突不应识别为唯一约束冲突")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Error("普通错误不应识别为唯一约束冲突")
	}
}

func TestTranslateDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}

	err := TranslateDuplicate(pgErr)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("期望 errors.Is(err, ErrDuplicateKey)，实际: %v", err)
	}
	if !IsUniqueViolation(err, "uq_users_email") {
		t.Error("转换后应保留约束名")
	}
	var unwrapped *pgconn.PgError
	if !errors.As(err, &unwrapped) {
		t.Error("转换后应仍可取回原始 PgError")
	}

	plain := errors.New("boom")
	if TranslateDuplicate(plain) != plain {
		t.Error("非唯一约束错误应原样返回")
	}
	if TranslateDuplicate(nil) != nil {
		t.Error("nil 应原样返回")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("23503 应识别为外键冲突")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("23505 不应识别为外键冲突")
	}
}
