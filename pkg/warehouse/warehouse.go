// Package warehouse persists depth chart snapshots in a relational store so
// starter lineups can be compared across dates. The engine is chosen at
// runtime: embedded SQLite (the default), Chai or Genji files, DuckDB when
// the binary carries the duckdb build tag, or PostgreSQL for shared
// deployments. Binaries must import the drivers subpackage to link the
// engines in.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Warehouse wraps the snapshot store together with the normalized engine
// name so SQL builders can stay declarative.
type Warehouse struct {
	DB          *sql.DB
	Driver      string
	idGenerator chan int64
}

// Config holds the connection details for opening the warehouse.
type Config struct {
	Type    string // "sqlite" (default), "chai", "genji", "duckdb" or "pgx"
	Path    string // file path for the embedded engines
	Conn    string // raw DSN for pgx, overrides the field-by-field form
	Host    string
	Port    int
	User    string
	Pass    string
	Name    string
	SSLMode string
}

// normalizeType trims and lowercases engine names so switch blocks never
// miss an engine because a caller passed mixed case or stray whitespace.
// An empty value selects sqlite, the engine that needs no setup at all.
func normalizeType(dbType string) string {
	t := strings.ToLower(strings.TrimSpace(dbType))
	if t == "" {
		return "sqlite"
	}
	return t
}

// startIDGenerator hands out unique row ids over a channel. The embedded
// engines get explicit ids so bulk inserts never race on the key column.
func startIDGenerator(initialID int64) chan int64 {
	ids := make(chan int64)
	go func(next int64) {
		for {
			ids <- next
			next++
		}
	}(initialID)
	return ids
}

// Open connects to the configured engine and probes the connection before
// handing the warehouse out. Embedded engines are capped to one underlying
// connection; concurrent statements would only fight over the file lock.
func Open(cfg Config) (*Warehouse, error) {
	driver := normalizeType(cfg.Type)

	var (
		dsn          string
		applyPragmas bool
	)
	switch driver {
	case "sqlite":
		applyPragmas = true
		dsn = cfg.Path
		if dsn == "" {
			dsn = "nflverse-warehouse.sqlite"
		}
	case "chai", "genji":
		// Both reuse file DSNs but manage their own transaction and caching
		// strategy, so the SQLite PRAGMA pass is skipped.
		dsn = cfg.Path
		if dsn == "" {
			dsn = "nflverse-warehouse." + driver
		}
	case "duckdb":
		// The file is created on first open.
		dsn = cfg.Path
		if dsn == "" {
			dsn = "nflverse-warehouse.duckdb"
		}
	case "pgx":
		if strings.TrimSpace(cfg.Conn) != "" {
			dsn = cfg.Conn
		} else {
			dsn = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
				cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode)
		}
	default:
		return nil, fmt.Errorf("unsupported warehouse type: %s", cfg.Type)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}

	switch driver {
	case "sqlite", "chai", "genji":
		// One physical connection; no concurrent statements at the DB layer.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		if applyPragmas {
			tuneCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := tuneSQLiteConnection(tuneCtx, db, log.Printf); err != nil {
				log.Printf("sqlite tuning skipped: %v", err)
			}
			cancel()
		}
	case "duckdb":
		// DuckDB funnels writes through one transaction log; extra
		// connections only add unique-key races during snapshot loads.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		tuneCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := tuneDuckDBConnection(tuneCtx, db, log.Printf); err != nil {
			log.Printf("duckdb tuning skipped: %v", err)
		}
		cancel()
	}

	// Liveness probe with a deadline so startup cannot hang on a dead engine.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("connect warehouse: %w", err)
		}
	}

	log.Printf("Using warehouse driver: %s with DSN: %s", driver, dsn)

	// Seed the id generator past existing rows. An error here just means
	// the table does not exist yet; InitSchema will create it.
	var maxID sql.NullInt64
	_ = db.QueryRow(`SELECT MAX(id) FROM depth_slots`).Scan(&maxID)
	initialID := int64(1)
	if maxID.Valid && maxID.Int64 >= initialID {
		initialID = maxID.Int64 + 1
	}

	return &Warehouse{DB: db, Driver: driver, idGenerator: startIDGenerator(initialID)}, nil
}

// Close releases the underlying handle.
func (w *Warehouse) Close() error {
	if w == nil || w.DB == nil {
		return nil
	}
	return w.DB.Close()
}

// AvailableEngines lists the engines compiled into the binary. DuckDB is
// opt-in via the duckdb build tag, so it is hidden when absent while the
// rest keep a predictable order.
func AvailableEngines() []string {
	engines := []string{"sqlite", "chai", "genji", "pgx"}
	if duckDBBuilt {
		engines = append([]string{"duckdb"}, engines...)
	}
	return engines
}

// placeholder returns the bind marker for the n-th argument: "$n" for the
// PostgreSQL wire protocol, "?" everywhere else.
func (w *Warehouse) placeholder(n int) string {
	if w.Driver == "pgx" {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// tuneSQLiteConnection applies the WAL/synchronous/busy_timeout settings
// that keep snapshot loads fast on the single shared connection. The steps
// run through a jobs channel so the caller stays responsive and a stuck
// pragma cannot wedge startup past the context deadline.
func tuneSQLiteConnection(ctx context.Context, db *sql.DB, logf func(string, ...any)) error {
	type pragma struct {
		label     string
		query     string
		expectRow bool
	}

	steps := []pragma{
		{label: "journal_mode", query: "PRAGMA journal_mode=WAL;", expectRow: true},
		{label: "synchronous", query: "PRAGMA synchronous=NORMAL;"},
		{label: "temp_store", query: "PRAGMA temp_store=MEMORY;"},
		{label: "cache_size", query: "PRAGMA cache_size=-20000;"},
		{label: "busy_timeout", query: "PRAGMA busy_timeout=5000;"},
	}

	jobs := make(chan pragma)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		for step := range jobs {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			default:
			}

			if step.expectRow {
				var mode string
				if err := db.QueryRowContext(ctx, step.query).Scan(&mode); err != nil {
					errs <- fmt.Errorf("apply %s: %w", step.label, err)
					return
				}
				logf("SQLite tuning %s -> %s", step.label, mode)
				continue
			}

			if _, err := db.ExecContext(ctx, step.query); err != nil {
				errs <- fmt.Errorf("apply %s: %w", step.label, err)
				return
			}
			logf("SQLite tuning %s applied", step.label)
		}
		errs <- nil
	}()

	go func() {
		defer close(jobs)
		for _, step := range steps {
			jobs <- step
		}
	}()

	return <-errs
}

// tuneDuckDBConnection raises thread counts and the checkpoint threshold so
// bulk snapshot loads stay CPU-bound instead of pausing mid-stream. Only
// settings DuckDB documents as safe at runtime are touched.
func tuneDuckDBConnection(ctx context.Context, db *sql.DB, logf func(string, ...any)) error {
	// Defaults can be conservative inside containers.
	threads := runtime.NumCPU()
	if threads < 1 {
		threads = 1
	}

	type pragma struct {
		label string
		query string
	}

	steps := []pragma{
		{label: "threads", query: fmt.Sprintf("PRAGMA threads=%d;", threads)},
		{label: "checkpoint_threshold", query: "PRAGMA checkpoint_threshold='1GB';"},
	}

	jobs := make(chan pragma)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		for step := range jobs {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			default:
			}

			if _, err := db.ExecContext(ctx, step.query); err != nil {
				errs <- fmt.Errorf("apply %s: %w", step.label, err)
				return
			}
			logf("DuckDB tuning %s applied", step.label)
		}
		errs <- nil
	}()

	go func() {
		defer close(jobs)
		for _, step := range steps {
			jobs <- step
		}
	}()

	return <-errs
}
