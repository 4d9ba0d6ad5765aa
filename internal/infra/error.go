package infra

import (
	"context"
	"errors"
	"log/slog"

	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/pgconv"
)

type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT"
)

// RepositoryError carries a storage failure up to the use cases without
// leaking driver types. Use cases branch on Kind only.
type RepositoryError struct {
	Kind  RepositoryErrorKind
	op    string
	cause error
}

func (e RepositoryError) Error() string {
	if e.cause == nil {
		return string(e.Kind) + ": " + e.op
	}
	return string(e.Kind) + ": " + e.cause.Error()
}

func (e RepositoryError) Unwrap() error {
	return e.cause
}

// WrapRepoErr classifies err by its postgres error code unless a kind is given.
// Only DB failures are logged above debug.
func WrapRepoErr(op string, err error, kind ...RepositoryErrorKind) error {
	k := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	level := slog.LevelDebug
	if k == KindDBFailure {
		level = slog.LevelError
	}
	slog.Log(context.Background(), level, "repository error", "op", op, "kind", string(k), "error", err)

	if err != nil {
		err = errs.Wrap(err, op)
	}
	return RepositoryError{Kind: k, op: op, cause: err}
}

// KindOf returns the kind of the first RepositoryError in err's chain.
func KindOf(err error) (RepositoryErrorKind, bool) {
	var e RepositoryError
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func classify(err error) RepositoryErrorKind {
	switch {
	case pgconv.IsNoRows(err):
		return KindNotFound
	case pgconv.IsUniqueViolation(err):
		return KindDuplicateKey
	case pgconv.IsForeignKeyViolation(err):
		return KindForeignKeyViolated
	default:
		return KindDBFailure
	}
}
