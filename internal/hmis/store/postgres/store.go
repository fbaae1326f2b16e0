// Package postgres persists the HMIS data set in PostgreSQL. Repositories run
// on the transaction carried in the context when there is one.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"hmis/internal/hud"
	dErrors "hmis/pkg/domain-errors"
	"hmis/pkg/platform/sentinel"
	txcontext "hmis/pkg/platform/tx"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

// Store implements every HMIS repository on one *sql.DB.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTxTimeout bounds each transaction when the caller set no deadline.
func WithTxTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

func NewPostgres(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates any missing tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// RunInTx runs fn inside a database transaction carried by the context passed
// to fn. The transaction commits only when fn returns nil.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) exec(ctx context.Context) txcontext.Executor {
	return txcontext.ExecutorFor(ctx, s.db)
}

// translate maps driver errors onto store sentinels.
func translate(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullCode(c hud.Code) sql.NullInt64 {
	if c == hud.Blank {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(c), Valid: true}
}

func codeOf(n sql.NullInt64) hud.Code {
	if !n.Valid {
		return hud.Blank
	}
	return hud.Code(n.Int64)
}

func nullDate(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// dateOf drops the zone the driver attaches to DATE columns.
func dateOf(n sql.NullTime) time.Time {
	if !n.Valid {
		return time.Time{}
	}
	y, m, d := n.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func raceArray(codes []hud.Code) pq.Int64Array {
	out := make(pq.Int64Array, len(codes))
	for i, c := range codes {
		out[i] = int64(c)
	}
	return out
}

func raceCodes(a pq.Int64Array) []hud.Code {
	if len(a) == 0 {
		return nil
	}
	out := make([]hud.Code, len(a))
	for i, v := range a {
		out[i] = hud.Code(v)
	}
	return out
}

type scanner interface {
	Scan(dest ...any) error
}
