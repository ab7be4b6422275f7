package repository

import (
	"context"
	"metro-ticketing/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier pool 與 tx 共同的查詢介面
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querierFrom 有交易就用交易，否則用連接池
func querierFrom(ctx context.Context, pool *pgxpool.Pool) Querier {
	if tx := database.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}
