//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"coupon-service/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind []infra.RepositoryErrorKind
		want infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "anything else", err: errors.New("broken pipe"), want: infra.KindDBFailure},
		{name: "explicit kind wins", err: pgx.ErrNoRows, kind: []infra.RepositoryErrorKind{infra.KindDuplicateKey}, want: infra.KindDuplicateKey},
		{name: "nil cause with kind", kind: []infra.RepositoryErrorKind{infra.KindConflict}, want: infra.KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := infra.WrapRepoErr("failed to load row", tt.err, tt.kind...)

			got, ok := infra.KindOf(err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.True(t, infra.IsKind(err, tt.want))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Contains(t, err.Error(), "failed to load row")
			}
		})
	}
}

func TestKindOf_PlainError(t *testing.T) {
	_, ok := infra.KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, infra.IsKind(nil, infra.KindNotFound))
}
