package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so the same repository code runs pooled or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Stores bundles the repositories that participate in one transaction.
type Stores struct {
	Tickets       TicketRepository
	Messages      MessageRepository
	Notifications NotificationRepository
	Users         UserRepository
}

// TxRunner runs a function inside a single database transaction. The ticket
// mutation and its notification records commit or roll back together.
type TxRunner interface {
	InTx(ctx context.Context, fn func(s Stores) error) error
}

type pgxTxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds a TxRunner over a pgx pool.
func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return &pgxTxRunner{pool: pool}
}

func (r *pgxTxRunner) InTx(ctx context.Context, fn func(s Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}

	stores := Stores{
		Tickets:       NewTicketRepository(tx),
		Messages:      NewMessageRepository(tx),
		Notifications: NewNotificationRepository(tx),
		Users:         NewUserRepository(tx),
	}

	if err := fn(stores); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
