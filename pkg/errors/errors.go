package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// ErrDuplicateKey 唯一约束冲突：记录已存在
var ErrDuplicateKey = errors.New("记录已存在")

// DuplicateKeyError 携带冲突约束名的唯一约束错误
// errors.Is(err, ErrDuplicateKey) 恒为 true
type DuplicateKeyError struct {
	Constraint string
	Err        error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrDuplicateKey.Error(), e.Constraint)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

func (e *DuplicateKeyError) Unwrap() error { return e.Err }

// TranslateDuplicate 将驱动层唯一约束冲突转换为 *DuplicateKeyError，其余错误原样返回
func TranslateDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return &DuplicateKeyError{Constraint: pgErr.ConstraintName, Err: err}
	}
	return err
}

// IsUniqueViolation 判断错误是否为唯一约束冲突
// constraint 非空时还要求冲突约束名命中其一
func IsUniqueViolation(err error, constraint ...string) bool {
	name, ok := duplicateConstraint(err)
	if !ok {
		return false
	}
	if len(constraint) == 0 {
		return true
	}
	for _, c := range constraint {
		if name == c {
			return true
		}
	}
	return false
}

func duplicateConstraint(err error) (string, bool) {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup.Constraint, true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// IsForeignKeyViolation 判断错误是否为外键约束冲突
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}
