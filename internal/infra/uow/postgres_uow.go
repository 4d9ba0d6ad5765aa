package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"coupon-service/internal/infra/repository"
	"coupon-service/internal/infra/sqlc"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/pgconv"
	"coupon-service/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// RetryPolicy bounds how often a conflicting transaction is replayed.
type RetryPolicy struct {
	MaxRetries int
	Base       time.Duration
}

// Backoff doubles Base per attempt and adds up to 20% jitter.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	wait := p.Base << attempt
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int64N(jitter))
	}
	return wait
}

type PostgresUoW struct {
	pool   *pgxpool.Pool
	q      *sqlc.Queries
	policy RetryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, cfg config.Config) *PostgresUoW {
	return &PostgresUoW{
		pool: pool,
		q:    q,
		policy: RetryPolicy{
			MaxRetries: max(cfg.DB.TxMaxRetries, 0),
			Base:       cfg.DB.TxRetryBase,
		},
	}
}

// Within runs fn in a read committed transaction. Redemption and binding take row
// locks inside fn, so only serialization failures and deadlocks are replayed.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for attempt := 0; attempt <= u.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := u.policy.Backoff(attempt - 1)
			slog.WarnContext(ctx, "retrying transaction",
				"attempt", attempt+1, "wait_ms", wait.Milliseconds(), "error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err = u.attempt(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}

	slog.ErrorContext(ctx, "transaction failed after max retries",
		"attempts", u.policy.MaxRetries+1, "error", err)
	return errs.Mark(err, errMaxRetriesExceeded)
}

// attempt owns exactly one transaction so a replay never overlaps an open one.
func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if err == nil {
			return
		}
		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "rollback failed", "error", rbErr)
		}
	}()

	if err = fn(ctx, &pgTx{dbtx: pgxTx, q: u.q}); err != nil {
		return err
	}
	if err = pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func IsRetryable(err error) bool {
	switch pgconv.SQLState(err) {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	}
	return false
}

// pgTx builds repositories lazily, all sharing one pgx.Tx.
type pgTx struct {
	dbtx sqlc.DBTX
	q    *sqlc.Queries

	coupons      shared.CouponRepository
	consumptions shared.ConsumptionRepository
	campaigns    shared.CampaignRepository
	users        shared.UserRepository
}

func (t *pgTx) Coupons() shared.CouponRepository {
	if t.coupons == nil {
		t.coupons = repository.NewCouponRepository(t.q, t.dbtx)
	}
	return t.coupons
}

func (t *pgTx) Consumptions() shared.ConsumptionRepository {
	if t.consumptions == nil {
		t.consumptions = repository.NewConsumptionRepository(t.q, t.dbtx)
	}
	return t.consumptions
}

func (t *pgTx) Campaigns() shared.CampaignRepository {
	if t.campaigns == nil {
		t.campaigns = repository.NewCampaignRepository(t.q, t.dbtx)
	}
	return t.campaigns
}

func (t *pgTx) Users() shared.UserRepository {
	if t.users == nil {
		t.users = repository.NewUserRepository(t.q, t.dbtx)
	}
	return t.users
}
