// Package sqlc holds the hand-written SQL statements and row types of the service.
// Every query takes the db handle per call so the same Queries value serves the
// pool and open transactions. Nothing here is generated; edit the statements
// alongside the migrations.
package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

func New() *Queries {
	return &Queries{}
}

type Queries struct{}
