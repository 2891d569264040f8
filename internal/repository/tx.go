package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// TxManager groups the writes of one logical operation into a single
// database transaction. The contract lifecycle relies on this so that a
// state transition's contract, property, tenant and schedule writes commit
// or roll back together.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type sqlTxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) TxManager {
	return &sqlTxManager{db: db}
}

func (m *sqlTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the already-open transaction.
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	return tx.Commit()
}

func txFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}

// ext returns the transaction bound to ctx if one is open, the bare
// connection pool otherwise. Every repository query goes through it.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
