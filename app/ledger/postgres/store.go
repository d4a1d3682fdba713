// Package postgres keeps ledger records in the transactions table.
package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/txbot/app/ledger"
	"github.com/m3rciful/txbot/core/logger"
)

const (
	insertRecord = `INSERT INTO transactions (id, date, ts, type, amount, return_amount, status, notes)
VALUES (:id, :date, :ts, :type, :amount, :return_amount, :status, :notes)`

	selectRecords = `SELECT date, ts, type, amount, return_amount, status, notes
FROM transactions
ORDER BY seq`
)

// Store is a ledger.Store over Postgres.
type Store struct {
	db      *sqlx.DB
	timeout time.Duration
	newID   func() uuid.UUID
}

var _ ledger.Store = (*Store)(nil)

// New wraps db. A zero timeout selects 10s per call.
func New(db *sqlx.DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Store{db: db, timeout: timeout, newID: uuid.New}
}

type insertRow struct {
	ID uuid.UUID `db:"id"`
	ledger.Record
}

// Append inserts rec under a fresh id.
func (s *Store) Append(ctx context.Context, rec ledger.Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	id := s.newID()
	if _, err := s.db.NamedExecContext(ctx, insertRecord, insertRow{ID: id, Record: rec}); err != nil {
		return &ledger.StoreError{Op: "append", Err: err}
	}
	logger.Debug(ctx, "store", "postgres.append",
		slog.String("status", "ok"),
		slog.String("id", id.String()),
		slog.String("tx_type", string(rec.Type)),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// List returns all records in insertion order.
func (s *Store) List(ctx context.Context) ([]ledger.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	var out []ledger.Record
	if err := s.db.SelectContext(ctx, &out, selectRecords); err != nil {
		return nil, &ledger.StoreError{Op: "list", Err: err}
	}
	logger.Debug(ctx, "store", "postgres.list",
		slog.String("status", "ok"),
		slog.Int("count", len(out)),
		slog.Duration("duration", logger.Took(start)),
	)
	return out, nil
}
