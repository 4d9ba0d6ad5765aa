package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findUserByEmail = `SELECT id, email, password_hash, role, last_login, is_active, created_at, updated_at
FROM users
WHERE email = $1 AND is_active = true
`

func (q *Queries) FindUserByEmail(ctx context.Context, db DBTX, email string) (Users, error) {
	row := db.QueryRow(ctx, findUserByEmail, email)
	var i Users
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.LastLogin,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findUserByID = `SELECT u.id, u.email, u.role, u.last_login, u.is_active,
       count(cu.id) FILTER (WHERE cu.redeemed_at IS NOT NULL) AS redeemed_count,
       count(cu.id) FILTER (WHERE cu.redeemed_at IS NULL)     AS pending_count
FROM users u
LEFT JOIN coupon_users cu ON cu.user_id = u.id
WHERE u.id = $1
GROUP BY u.id
`

type FindUserByIDRow struct {
	ID            uuid.UUID          `json:"id"`
	Email         string             `json:"email"`
	Role          string             `json:"role"`
	LastLogin     pgtype.Timestamptz `json:"last_login"`
	IsActive      bool               `json:"is_active"`
	RedeemedCount int64              `json:"redeemed_count"`
	PendingCount  int64              `json:"pending_count"`
}

func (q *Queries) FindUserByID(ctx context.Context, db DBTX, id uuid.UUID) (FindUserByIDRow, error) {
	row := db.QueryRow(ctx, findUserByID, id)
	var i FindUserByIDRow
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Role,
		&i.LastLogin,
		&i.IsActive,
		&i.RedeemedCount,
		&i.PendingCount,
	)
	return i, err
}

const recordUserLogin = `UPDATE users
SET last_login = $2, updated_at = $2
WHERE id = $1
`

type RecordUserLoginParams struct {
	ID        uuid.UUID          `json:"id"`
	LastLogin pgtype.Timestamptz `json:"last_login"`
}

func (q *Queries) RecordUserLogin(ctx context.Context, db DBTX, arg RecordUserLoginParams) error {
	_, err := db.Exec(ctx, recordUserLogin, arg.ID, arg.LastLogin)
	return err
}

const createUser = `INSERT INTO users (id, email, password_hash, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (email) WHERE is_active = true DO NOTHING
RETURNING id
`

type CreateUserParams struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"password_hash"`
	Role         string             `json:"role"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateUser(ctx context.Context, db DBTX, arg CreateUserParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createUser,
		arg.ID,
		arg.Email,
		arg.PasswordHash,
		arg.Role,
		arg.IsActive,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}
