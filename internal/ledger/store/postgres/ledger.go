// Package postgres persists the ledger in PostgreSQL through database/sql and
// the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"meterbill/internal/sentinel"
	"meterbill/migrations"
	dErrors "meterbill/pkg/domain-errors"
	txcontext "meterbill/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// Ledger groups the three postgres stores and the transaction runner sharing one pool.
type Ledger struct {
	db       *sql.DB
	timeout  time.Duration
	tenants  *TenantStore
	periods  *PeriodReadingStore
	readings *TenantReadingStore
}

// Option configures a postgres ledger.
type Option func(*Ledger)

// WithTxTimeout bounds transactions started without a context deadline.
func WithTxTimeout(d time.Duration) Option {
	return func(l *Ledger) {
		l.timeout = d
	}
}

// New wraps an open pool. The caller owns the pool unless Close is used.
func New(db *sql.DB, opts ...Option) *Ledger {
	l := &Ledger{db: db}
	for _, opt := range opts {
		opt(l)
	}
	l.tenants = &TenantStore{l: l}
	l.periods = &PeriodReadingStore{l: l}
	l.readings = &TenantReadingStore{l: l}
	return l
}

func (l *Ledger) Tenants() *TenantStore               { return l.tenants }
func (l *Ledger) PeriodReadings() *PeriodReadingStore { return l.periods }
func (l *Ledger) TenantReadings() *TenantReadingStore { return l.readings }

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Migrate applies every embedded *.up.sql file in name order. Statements are
// idempotent so Migrate may run on every start.
func (l *Ledger) Migrate(ctx context.Context) error {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := l.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("execute migration %s: %w", file, err)
		}
	}
	return nil
}

// RunInTx runs fn in a serializable transaction carried by the context. Nested
// calls join the outer transaction.
func (l *Ledger) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}

	timeout := l.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := l.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback after commit is no-op; error already captured
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return translateTxErr(err)
	}

	if err := tx.Commit(); err != nil {
		return translateTxErr(err)
	}
	return nil
}

// translateTxErr reports serialization failures as conflicts so callers can retry.
func translateTxErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected) {
		return dErrors.Wrap(err, dErrors.CodeConflict, "concurrent ledger update; retry")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction timed out")
	}
	return err
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (l *Ledger) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return l.db
}

func isUniqueViolation(err error) bool {
	return hasPgCode(err, pgUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgForeignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

func requireAffected(res sql.Result, action string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", action, err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
