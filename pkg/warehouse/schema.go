package warehouse

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// InitSchema creates the snapshot table for the active engine. Each engine
// gets its own DDL: PostgreSQL brings BIGSERIAL and a named constraint for
// ON CONFLICT, DuckDB needs an explicit sequence behind the id column, and
// the file engines pair an INTEGER PRIMARY KEY with a separate unique
// index.
func (w *Warehouse) InitSchema(ctx context.Context) error {
	var statements []string

	switch w.Driver {
	case "pgx":
		statements = []string{`
CREATE TABLE IF NOT EXISTS depth_slots (
  id BIGSERIAL PRIMARY KEY,
  taken_at BIGINT NOT NULL,
  team TEXT NOT NULL,
  position TEXT NOT NULL,
  player TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'ACT',
  CONSTRAINT depth_slots_unique UNIQUE (taken_at, team, position, player)
);`}
	case "duckdb":
		statements = []string{
			`CREATE SEQUENCE IF NOT EXISTS depth_slots_id_seq;`,
			`
CREATE TABLE IF NOT EXISTS depth_slots (
  id BIGINT PRIMARY KEY DEFAULT nextval('depth_slots_id_seq'),
  taken_at BIGINT NOT NULL,
  team TEXT NOT NULL,
  position TEXT NOT NULL,
  player TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'ACT',
  CONSTRAINT depth_slots_unique UNIQUE (taken_at, team, position, player)
);`,
		}
	case "genji":
		// Genji has no column defaults, so status arrives filled from the
		// insert path instead.
		statements = []string{
			`CREATE TABLE IF NOT EXISTS depth_slots (
  id INTEGER PRIMARY KEY,
  taken_at BIGINT,
  team TEXT,
  position TEXT,
  player TEXT,
  status TEXT
);`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_depth_slots_unique ON depth_slots (taken_at, team, position, player);`,
		}
	default: // sqlite, chai
		statements = []string{
			`
CREATE TABLE IF NOT EXISTS depth_slots (
  id INTEGER PRIMARY KEY,
  taken_at BIGINT NOT NULL,
  team TEXT NOT NULL,
  position TEXT NOT NULL,
  player TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'ACT'
);`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_depth_slots_unique ON depth_slots (taken_at, team, position, player);`,
		}
	}

	if err := w.execStatements(ctx, statements); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// execStatements runs schema statements one at a time. Genji rejects
// multi-statement Exec calls, and running singly costs nothing on the
// other engines.
func (w *Warehouse) execStatements(ctx context.Context, statements []string) error {
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := w.DB.ExecContext(ctx, stmt); err != nil {
			snippet := stmt
			if len(snippet) > 60 {
				snippet = snippet[:60]
			}
			return fmt.Errorf("%w (statement: %s...)", err, snippet)
		}
	}
	return nil
}

// warehouseIndexes lists the secondary indexes queries lean on. The unique
// index doubles as the dedupe guard and is created in InitSchema instead.
func warehouseIndexes() []struct{ name, ddl string } {
	return []struct{ name, ddl string }{
		{"idx_depth_slots_taken_at", "CREATE INDEX IF NOT EXISTS idx_depth_slots_taken_at ON depth_slots (taken_at)"},
		{"idx_depth_slots_team", "CREATE INDEX IF NOT EXISTS idx_depth_slots_team ON depth_slots (team, taken_at)"},
	}
}

// EnsureIndexesAsync builds the secondary indexes in the background so
// startup cost stays flat on a large warehouse. File engines report the
// database as locked while a snapshot load runs; those attempts back off
// and retry instead of failing the index.
func (w *Warehouse) EnsureIndexesAsync(ctx context.Context) {
	go func() {
		for _, idx := range warehouseIndexes() {
			for attempt := 1; attempt <= 5; attempt++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				_, err := w.DB.ExecContext(ctx, idx.ddl)
				if err == nil {
					log.Printf("✅ index %s ready", idx.name)
					break
				}

				msg := strings.ToLower(err.Error())
				if strings.Contains(msg, "already exists") {
					break
				}
				if strings.Contains(msg, "locked") || strings.Contains(msg, "busy") {
					log.Printf("⏳ index %s: database busy, retry %d/5", idx.name, attempt)
					select {
					case <-ctx.Done():
						return
					case <-time.After(time.Duration(attempt) * time.Second):
					}
					continue
				}

				log.Printf("index %s failed: %v", idx.name, err)
				break
			}
		}
	}()
}
