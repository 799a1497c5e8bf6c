package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// MaxCostPrecision bounds METERBILL_COST_PRECISION.
const MaxCostPrecision = 6

// Ledger captures how a ledger is opened.
type Ledger struct {
	Store       string
	DatabaseURL string
	SQLitePath  string
	TxTimeout   time.Duration
	// CostPrecision is the number of decimals allocated costs are rounded to;
	// negative keeps raw proportional costs.
	CostPrecision int32
	LogLevel      slog.Level
	// SeedDemo fills an empty ledger with demo tenants and readings on open.
	SeedDemo bool
}

// Default returns an in-memory ledger with unrounded allocation.
func Default() Ledger {
	return Ledger{
		Store:         StoreMemory,
		SQLitePath:    "meterbill.db",
		TxTimeout:     5 * time.Second,
		CostPrecision: -1,
		LogLevel:      slog.LevelInfo,
	}
}

// FromEnv builds a Ledger config from environment variables, loading a .env
// file first when one exists.
func FromEnv() (Ledger, error) {
	_ = godotenv.Load()

	cfg := Default()
	if store := strings.ToLower(strings.TrimSpace(os.Getenv("METERBILL_STORE"))); store != "" {
		cfg.Store = store
	}
	cfg.DatabaseURL = os.Getenv("METERBILL_DATABASE_URL")
	if path := os.Getenv("METERBILL_SQLITE_PATH"); path != "" {
		cfg.SQLitePath = path
	}

	if raw := os.Getenv("METERBILL_TX_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Ledger{}, fmt.Errorf("METERBILL_TX_TIMEOUT: %w", err)
		}
		cfg.TxTimeout = d
	}

	if raw := os.Getenv("METERBILL_COST_PRECISION"); raw != "" {
		places, err := strconv.Atoi(raw)
		if err != nil {
			return Ledger{}, fmt.Errorf("METERBILL_COST_PRECISION: %w", err)
		}
		cfg.CostPrecision = int32(places)
	}

	if raw := os.Getenv("METERBILL_SEED_DEMO"); raw != "" {
		seed, err := strconv.ParseBool(raw)
		if err != nil {
			return Ledger{}, fmt.Errorf("METERBILL_SEED_DEMO: %w", err)
		}
		cfg.SeedDemo = seed
	}

	if raw := os.Getenv("METERBILL_LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return Ledger{}, fmt.Errorf("METERBILL_LOG_LEVEL: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Ledger{}, err
	}
	return cfg, nil
}

func (c Ledger) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("METERBILL_DATABASE_URL is required for the postgres store")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("METERBILL_SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown store %q: want %s, %s or %s", c.Store, StoreMemory, StorePostgres, StoreSQLite)
	}
	if c.CostPrecision > MaxCostPrecision {
		return fmt.Errorf("cost precision %d exceeds %d decimals", c.CostPrecision, MaxCostPrecision)
	}
	if c.TxTimeout <= 0 {
		return fmt.Errorf("transaction timeout must be positive")
	}
	return nil
}
