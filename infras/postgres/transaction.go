package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./transaction.go -destination=./mocks/transaction_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Transactor runs a unit of work on the write connection.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type transactorImpl struct {
	db *Connection
}

func NewTransactor(db *Connection) Transactor {
	return &transactorImpl{db: db}
}

// WithTx commits when fn returns nil and rolls back otherwise, including on panic.
func (t *transactorImpl) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := t.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
