// Package sqlite persists the ledger in a single SQLite file through gorm.
package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"meterbill/internal/sentinel"
	dErrors "meterbill/pkg/domain-errors"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Ledger groups the three sqlite stores and the transaction runner sharing one handle.
type Ledger struct {
	db       *gorm.DB
	tenants  *TenantStore
	periods  *PeriodReadingStore
	readings *TenantReadingStore
}

// Open opens or creates the database at path and migrates the schema.
func Open(path string) (*Ledger, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases shared.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&tenantRow{}, &periodRow{}, &readingRow{}); err != nil {
		sqlDB.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return newLedger(db), nil
}

func newLedger(db *gorm.DB) *Ledger {
	l := &Ledger{db: db}
	l.tenants = &TenantStore{l: l}
	l.periods = &PeriodReadingStore{l: l}
	l.readings = &TenantReadingStore{l: l}
	return l
}

func (l *Ledger) Tenants() *TenantStore               { return l.tenants }
func (l *Ledger) PeriodReadings() *PeriodReadingStore { return l.periods }
func (l *Ledger) TenantReadings() *TenantReadingStore { return l.readings }

func (l *Ledger) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type txKey struct{}

// RunInTx runs fn inside a gorm transaction carried by the context. Nested
// calls join the outer transaction.
func (l *Ledger) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction carried by ctx, or the shared handle.
func (l *Ledger) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return l.db.WithContext(ctx)
}

// translate maps gorm errors onto store sentinels.
func translate(err error, action string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return sentinel.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", action, sentinel.ErrAlreadyUsed)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

func requireAffected(res *gorm.DB, action string) error {
	if res.Error != nil {
		return translate(res.Error, action)
	}
	if res.RowsAffected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
