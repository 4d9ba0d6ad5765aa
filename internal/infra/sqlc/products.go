package sqlc

import (
	"context"

	"github.com/google/uuid"
)

const upsertProduct = `INSERT INTO products (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`

func (q *Queries) UpsertProduct(ctx context.Context, db DBTX, name string) (uuid.UUID, error) {
	row := db.QueryRow(ctx, upsertProduct, name)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const addCouponProduct = `INSERT INTO coupon_products (coupon_id, product_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

func (q *Queries) AddCouponProduct(ctx context.Context, db DBTX, couponID, productID uuid.UUID) error {
	_, err := db.Exec(ctx, addCouponProduct, couponID, productID)
	return err
}

const listCouponProductNames = `SELECT p.name
FROM coupon_products cp
JOIN products p ON p.id = cp.product_id
WHERE cp.coupon_id = $1
ORDER BY p.name
`

func (q *Queries) ListCouponProductNames(ctx context.Context, db DBTX, couponID uuid.UUID) ([]string, error) {
	rows, err := db.Query(ctx, listCouponProductNames, couponID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		items = append(items, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
