package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createCampaign = `INSERT INTO campaigns (id, name, description)
VALUES ($1, $2, $3)
RETURNING id, name, description, created_at
`

type CreateCampaignParams struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func (q *Queries) CreateCampaign(ctx context.Context, db DBTX, arg CreateCampaignParams) (Campaigns, error) {
	row := db.QueryRow(ctx, createCampaign, arg.ID, arg.Name, arg.Description)
	var i Campaigns
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const campaignExists = `SELECT EXISTS (SELECT 1 FROM campaigns WHERE id = $1)
`

func (q *Queries) CampaignExists(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	row := db.QueryRow(ctx, campaignExists, id)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listCampaignsWithStats = `WITH coupon_state AS (
    SELECT c.id,
           c.campaign_id,
           EXISTS (SELECT 1 FROM coupon_users cu WHERE cu.coupon_id = c.id AND cu.redeemed_at IS NOT NULL) AS used,
           (c.valid_until IS NOT NULL AND c.valid_until < $1) AS expired
    FROM coupons c
    WHERE c.campaign_id IS NOT NULL
)
SELECT cp.id, cp.name, cp.description, cp.created_at,
       count(cs.id)                                  AS total,
       count(cs.id) FILTER (WHERE cs.used)           AS used,
       count(cs.id) FILTER (WHERE cs.expired)        AS expired,
       count(cs.id) FILTER (WHERE cs.used AND cs.expired) AS used_and_expired
FROM campaigns cp
LEFT JOIN coupon_state cs ON cs.campaign_id = cp.id
GROUP BY cp.id, cp.name, cp.description, cp.created_at
ORDER BY cp.name ASC
`

type ListCampaignsWithStatsRow struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	Total          int64              `json:"total"`
	Used           int64              `json:"used"`
	Expired        int64              `json:"expired"`
	UsedAndExpired int64              `json:"used_and_expired"`
}

func (q *Queries) ListCampaignsWithStats(ctx context.Context, db DBTX, now pgtype.Timestamptz) ([]ListCampaignsWithStatsRow, error) {
	rows, err := db.Query(ctx, listCampaignsWithStats, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCampaignsWithStatsRow
	for rows.Next() {
		var i ListCampaignsWithStatsRow
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.CreatedAt,
			&i.Total,
			&i.Used,
			&i.Expired,
			&i.UsedAndExpired,
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
