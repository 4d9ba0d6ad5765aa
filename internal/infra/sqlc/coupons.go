package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const couponColumns = `id, code, type, value, user_limit, bulk, bulk_number, valid_until, active, campaign_id, created_at, updated_at`

func scanCoupon(row pgx.Row) (Coupons, error) {
	var i Coupons
	err := row.Scan(
		&i.ID,
		&i.Code,
		&i.Type,
		&i.Value,
		&i.UserLimit,
		&i.Bulk,
		&i.BulkNumber,
		&i.ValidUntil,
		&i.Active,
		&i.CampaignID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCouponByCode = `SELECT ` + couponColumns + `
FROM coupons
WHERE code = $1
`

func (q *Queries) GetCouponByCode(ctx context.Context, db DBTX, code string) (Coupons, error) {
	return scanCoupon(db.QueryRow(ctx, getCouponByCode, code))
}

const getCouponBySubCode = `SELECT c.id, c.code, c.type, c.value, c.user_limit, c.bulk, c.bulk_number, c.valid_until, c.active, c.campaign_id, c.created_at, c.updated_at
FROM coupons c
JOIN coupon_users cu ON cu.coupon_id = c.id
WHERE cu.code = $1 AND c.bulk = true
`

func (q *Queries) GetCouponBySubCode(ctx context.Context, db DBTX, code string) (Coupons, error) {
	return scanCoupon(db.QueryRow(ctx, getCouponBySubCode, code))
}

const getCouponByID = `SELECT ` + couponColumns + `
FROM coupons
WHERE id = $1
`

func (q *Queries) GetCouponByID(ctx context.Context, db DBTX, id uuid.UUID) (Coupons, error) {
	return scanCoupon(db.QueryRow(ctx, getCouponByID, id))
}

const lockCouponByID = `SELECT ` + couponColumns + `
FROM coupons
WHERE id = $1
FOR UPDATE
`

func (q *Queries) LockCouponByID(ctx context.Context, db DBTX, id uuid.UUID) (Coupons, error) {
	return scanCoupon(db.QueryRow(ctx, lockCouponByID, id))
}

const createCoupon = `INSERT INTO coupons (id, code, type, value, user_limit, bulk, bulk_number, valid_until, active, campaign_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (code) DO NOTHING
RETURNING ` + couponColumns

type CreateCouponParams struct {
	ID         uuid.UUID          `json:"id"`
	Code       string             `json:"code"`
	Type       string             `json:"type"`
	Value      pgtype.Numeric     `json:"value"`
	UserLimit  int32              `json:"user_limit"`
	Bulk       bool               `json:"bulk"`
	BulkNumber int32              `json:"bulk_number"`
	ValidUntil pgtype.Timestamptz `json:"valid_until"`
	Active     bool               `json:"active"`
	CampaignID pgtype.UUID        `json:"campaign_id"`
}

func (q *Queries) CreateCoupon(ctx context.Context, db DBTX, arg CreateCouponParams) (Coupons, error) {
	row := db.QueryRow(ctx, createCoupon,
		arg.ID,
		arg.Code,
		arg.Type,
		arg.Value,
		arg.UserLimit,
		arg.Bulk,
		arg.BulkNumber,
		arg.ValidUntil,
		arg.Active,
		arg.CampaignID,
	)
	return scanCoupon(row)
}

const updateCoupon = `UPDATE coupons
SET active      = $2,
    valid_until = $3,
    user_limit  = $4,
    updated_at  = now()
WHERE id = $1
RETURNING ` + couponColumns

type UpdateCouponParams struct {
	ID         uuid.UUID          `json:"id"`
	Active     bool               `json:"active"`
	ValidUntil pgtype.Timestamptz `json:"valid_until"`
	UserLimit  int32              `json:"user_limit"`
}

func (q *Queries) UpdateCoupon(ctx context.Context, db DBTX, arg UpdateCouponParams) (Coupons, error) {
	row := db.QueryRow(ctx, updateCoupon,
		arg.ID,
		arg.Active,
		arg.ValidUntil,
		arg.UserLimit,
	)
	return scanCoupon(row)
}

const listCoupons = `SELECT c.id, c.code, c.type, c.value, c.user_limit, c.bulk, c.bulk_number, c.valid_until, c.active, c.campaign_id, c.created_at,
       cp.name AS campaign_name,
       (SELECT count(*) FROM coupon_users cu WHERE cu.coupon_id = c.id) AS user_count,
       (SELECT count(*) FROM coupon_users cu WHERE cu.coupon_id = c.id AND cu.redeemed_at IS NOT NULL) AS redeemed_count
FROM coupons c
LEFT JOIN campaigns cp ON cp.id = c.campaign_id
WHERE ($1::text IS NULL OR c.type = $1)
  AND ($2::uuid IS NULL OR c.campaign_id = $2)
  AND ($3::text IS NULL OR c.code ILIKE '%' || $3 || '%')
  AND ($4::timestamptz IS NULL OR (c.created_at, c.id) < ($4, $5::uuid))
ORDER BY c.created_at DESC, c.id DESC
LIMIT $6
`

type ListCouponsParams struct {
	Type          pgtype.Text        `json:"type"`
	CampaignID    pgtype.UUID        `json:"campaign_id"`
	Search        pgtype.Text        `json:"search"`
	LastCreatedAt pgtype.Timestamptz `json:"last_created_at"`
	LastID        pgtype.UUID        `json:"last_id"`
	Limit         int32              `json:"limit"`
}

type ListCouponsRow struct {
	ID            uuid.UUID          `json:"id"`
	Code          string             `json:"code"`
	Type          string             `json:"type"`
	Value         pgtype.Numeric     `json:"value"`
	UserLimit     int32              `json:"user_limit"`
	Bulk          bool               `json:"bulk"`
	BulkNumber    int32              `json:"bulk_number"`
	ValidUntil    pgtype.Timestamptz `json:"valid_until"`
	Active        bool               `json:"active"`
	CampaignID    pgtype.UUID        `json:"campaign_id"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	CampaignName  pgtype.Text        `json:"campaign_name"`
	UserCount     int64              `json:"user_count"`
	RedeemedCount int64              `json:"redeemed_count"`
}

func (q *Queries) ListCoupons(ctx context.Context, db DBTX, arg ListCouponsParams) ([]ListCouponsRow, error) {
	rows, err := db.Query(ctx, listCoupons,
		arg.Type,
		arg.CampaignID,
		arg.Search,
		arg.LastCreatedAt,
		arg.LastID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCouponsRow
	for rows.Next() {
		var i ListCouponsRow
		if err := rows.Scan(
			&i.ID,
			&i.Code,
			&i.Type,
			&i.Value,
			&i.UserLimit,
			&i.Bulk,
			&i.BulkNumber,
			&i.ValidUntil,
			&i.Active,
			&i.CampaignID,
			&i.CreatedAt,
			&i.CampaignName,
			&i.UserCount,
			&i.RedeemedCount,
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
