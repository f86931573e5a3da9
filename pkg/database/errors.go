package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
	codeSerialization      = "40001"
	codeDeadlock           = "40P01"
	codeAdminShutdown      = "57P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// ConstraintName returns the violated constraint, if the error carries one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func IsExclusionViolation(err error) bool {
	return pgCode(err) == codeExclusionViolation
}

// IsTransient reports whether repeating the statement may succeed:
// connection failures (class 08), serialization failures, deadlocks and
// server restarts.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if pgconn.SafeToRetry(err) {
		return true
	}
	code := pgCode(err)
	switch {
	case strings.HasPrefix(code, "08"):
		return true
	case code == codeSerialization, code == codeDeadlock, code == codeAdminShutdown:
		return true
	}
	return false
}
