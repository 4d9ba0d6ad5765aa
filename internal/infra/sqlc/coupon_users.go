package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const couponUserColumns = `id, coupon_id, user_id, code, redeemed_at, created_at`

func scanCouponUser(row pgx.Row) (CouponUsers, error) {
	var i CouponUsers
	err := row.Scan(
		&i.ID,
		&i.CouponID,
		&i.UserID,
		&i.Code,
		&i.RedeemedAt,
		&i.CreatedAt,
	)
	return i, err
}

const getCouponUser = `SELECT ` + couponUserColumns + `
FROM coupon_users
WHERE coupon_id = $1 AND user_id = $2
`

func (q *Queries) GetCouponUser(ctx context.Context, db DBTX, couponID, userID uuid.UUID) (CouponUsers, error) {
	return scanCouponUser(db.QueryRow(ctx, getCouponUser, couponID, userID))
}

const countCouponUsers = `SELECT count(*)
FROM coupon_users
WHERE coupon_id = $1
  AND (NOT $2::boolean OR user_id IS NOT NULL)
  AND (NOT $3::boolean OR redeemed_at IS NOT NULL)
  AND ($4::text IS NULL OR code = $4)
`

type CountCouponUsersParams struct {
	CouponID  uuid.UUID   `json:"coupon_id"`
	UserBound bool        `json:"user_bound"`
	Redeemed  bool        `json:"redeemed"`
	Code      pgtype.Text `json:"code"`
}

func (q *Queries) CountCouponUsers(ctx context.Context, db DBTX, arg CountCouponUsersParams) (int64, error) {
	row := db.QueryRow(ctx, countCouponUsers,
		arg.CouponID,
		arg.UserBound,
		arg.Redeemed,
		arg.Code,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createCouponUser = `INSERT INTO coupon_users (coupon_id, user_id, code, redeemed_at)
VALUES ($1, $2, $3, $4)
RETURNING ` + couponUserColumns

type CreateCouponUserParams struct {
	CouponID   uuid.UUID          `json:"coupon_id"`
	UserID     pgtype.UUID        `json:"user_id"`
	Code       pgtype.Text        `json:"code"`
	RedeemedAt pgtype.Timestamptz `json:"redeemed_at"`
}

func (q *Queries) CreateCouponUser(ctx context.Context, db DBTX, arg CreateCouponUserParams) (CouponUsers, error) {
	row := db.QueryRow(ctx, createCouponUser,
		arg.CouponID,
		arg.UserID,
		arg.Code,
		arg.RedeemedAt,
	)
	return scanCouponUser(row)
}

const markCouponUserRedeemed = `UPDATE coupon_users
SET redeemed_at = $2,
    code        = COALESCE(code, $3)
WHERE id = $1 AND redeemed_at IS NULL
RETURNING ` + couponUserColumns

type MarkCouponUserRedeemedParams struct {
	ID         uuid.UUID          `json:"id"`
	RedeemedAt pgtype.Timestamptz `json:"redeemed_at"`
	Code       pgtype.Text        `json:"code"`
}

func (q *Queries) MarkCouponUserRedeemed(ctx context.Context, db DBTX, arg MarkCouponUserRedeemedParams) (CouponUsers, error) {
	return scanCouponUser(db.QueryRow(ctx, markCouponUserRedeemed, arg.ID, arg.RedeemedAt, arg.Code))
}

const listCouponUsersByCoupon = `SELECT cu.id, cu.coupon_id, cu.user_id, cu.code, cu.redeemed_at, cu.created_at,
       u.email AS user_email
FROM coupon_users cu
LEFT JOIN users u ON u.id = cu.user_id
WHERE cu.coupon_id = $1
ORDER BY cu.created_at ASC, cu.id ASC
`

type ListCouponUsersByCouponRow struct {
	ID         uuid.UUID          `json:"id"`
	CouponID   uuid.UUID          `json:"coupon_id"`
	UserID     pgtype.UUID        `json:"user_id"`
	Code       pgtype.Text        `json:"code"`
	RedeemedAt pgtype.Timestamptz `json:"redeemed_at"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	UserEmail  pgtype.Text        `json:"user_email"`
}

func (q *Queries) ListCouponUsersByCoupon(ctx context.Context, db DBTX, couponID uuid.UUID) ([]ListCouponUsersByCouponRow, error) {
	rows, err := db.Query(ctx, listCouponUsersByCoupon, couponID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCouponUsersByCouponRow
	for rows.Next() {
		var i ListCouponUsersByCouponRow
		if err := rows.Scan(
			&i.ID,
			&i.CouponID,
			&i.UserID,
			&i.Code,
			&i.RedeemedAt,
			&i.CreatedAt,
			&i.UserEmail,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
