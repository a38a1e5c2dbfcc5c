package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"nflverse-datahub/pkg/depthchart"
)

// copyThreshold is the row count past which the pgx path switches from
// batched INSERT to the COPY protocol. A full league snapshot is a few
// hundred rows, so COPY only kicks in for multi-snapshot backfills.
const copyThreshold = 1000

// BatchProgress reports bulk load advancement. Sends never block; a slow
// listener just misses intermediate updates.
type BatchProgress struct {
	Total    int
	Done     int
	Batch    int
	Mode     string // "insert", "copy" or "row"
	Duration time.Duration
}

// sqlExecutor lets the chunk writer run against either the bare handle or
// the explicit DuckDB transaction.
type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InsertStarters stores one snapshot of starters under the takenAt
// timestamp (unix seconds). Duplicate (team, position, player) tuples are
// dropped before the write, and rows already in the warehouse are skipped
// through the unique constraint, so reloading the same snapshot is safe.
func (w *Warehouse) InsertStarters(ctx context.Context, takenAt int64, starters []depthchart.Starter, batchSize int, progress chan<- BatchProgress) (err error) {
	rows := dedupeStarters(starters)
	if len(rows) == 0 {
		return nil
	}

	size := w.insertBatchSize(batchSize, len(rows))

	// DuckDB gets one explicit transaction around the whole load; implicit
	// per-statement commits hammer its write-ahead log.
	var exec sqlExecutor = w.DB
	if w.Driver == "duckdb" {
		tx, txErr := w.DB.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("begin duckdb transaction: %w", txErr)
		}
		exec = tx
		defer func() {
			if err != nil {
				_ = tx.Rollback()
				return
			}
			err = tx.Commit()
		}()
	}

	if w.Driver == "pgx" && len(rows) >= copyThreshold {
		copyErr := w.insertStartersPostgresCopy(ctx, takenAt, rows, progress)
		if copyErr == nil {
			return nil
		}
		log.Printf("COPY load failed, falling back to batched INSERT: %v", copyErr)
	}

	done := 0
	for start := 0; start < len(rows); {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		began := time.Now()
		mode := "insert"
		if chunkErr := w.insertStarterChunk(ctx, exec, takenAt, chunk); chunkErr != nil {
			if w.Driver == "duckdb" && duckdbIsConflict(chunkErr) {
				mode = "row"
				if rowErr := w.insertStartersRowByRow(ctx, exec, takenAt, chunk); rowErr != nil {
					return rowErr
				}
			} else {
				return chunkErr
			}
		}

		done += len(chunk)
		reportProgress(progress, BatchProgress{
			Total:    len(rows),
			Done:     done,
			Batch:    len(chunk),
			Mode:     mode,
			Duration: time.Since(began),
		})
		start = end
	}
	return nil
}

// insertStarterChunk writes one multi-row INSERT. PostgreSQL rows omit the
// id column and lean on BIGSERIAL plus the named constraint; every other
// engine takes explicit ids from the generator channel.
func (w *Warehouse) insertStarterChunk(ctx context.Context, exec sqlExecutor, takenAt int64, chunk []depthchart.Starter) error {
	var (
		sb   strings.Builder
		args []any
	)

	switch w.Driver {
	case "pgx":
		sb.WriteString("INSERT INTO depth_slots (taken_at, team, position, player, status) VALUES ")
		args = make([]any, 0, len(chunk)*5)
		for i, s := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			base := i * 5
			fmt.Fprintf(&sb, "(%s, %s, %s, %s, %s)",
				w.placeholder(base+1), w.placeholder(base+2), w.placeholder(base+3),
				w.placeholder(base+4), w.placeholder(base+5))
			args = append(args, takenAt, s.Team, s.Position, s.Player, s.Status)
		}
		sb.WriteString(" ON CONFLICT ON CONSTRAINT depth_slots_unique DO NOTHING")
	default:
		sb.WriteString("INSERT INTO depth_slots (id, taken_at, team, position, player, status) VALUES ")
		args = make([]any, 0, len(chunk)*6)
		for i, s := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?, ?, ?, ?)")
			args = append(args, <-w.idGenerator, takenAt, s.Team, s.Position, s.Player, s.Status)
		}
		sb.WriteString(" ON CONFLICT DO NOTHING")
	}

	if _, err := exec.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert depth slots: %w", err)
	}
	return nil
}

// insertStartersRowByRow retries a failed DuckDB chunk one row at a time,
// skipping individual conflicts. Slow, but only reached when a chunk mixes
// fresh rows with ones already on disk.
func (w *Warehouse) insertStartersRowByRow(ctx context.Context, exec sqlExecutor, takenAt int64, chunk []depthchart.Starter) error {
	const stmt = `INSERT INTO depth_slots (id, taken_at, team, position, player, status) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`
	for _, s := range chunk {
		_, err := exec.ExecContext(ctx, stmt, <-w.idGenerator, takenAt, s.Team, s.Position, s.Player, s.Status)
		if err != nil {
			if duckdbIsConflict(err) {
				continue
			}
			return fmt.Errorf("insert depth slot %s %s: %w", s.Team, s.Position, err)
		}
	}
	return nil
}

// dedupeStarters drops repeated (team, position, player) tuples while
// keeping first occurrences in order. A chart occasionally lists the same
// veteran on two rows; the snapshot keeps one.
func dedupeStarters(starters []depthchart.Starter) []depthchart.Starter {
	if len(starters) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(starters))
	out := make([]depthchart.Starter, 0, len(starters))
	for _, s := range starters {
		key := s.Team + "\x00" + s.Position + "\x00" + s.Player
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// insertBatchSize clamps the caller's batch size to what the engine
// handles well. DuckDB slows down past a few hundred rows per statement,
// and a zero or negative size falls back to the engine default.
func (w *Warehouse) insertBatchSize(requested, total int) int {
	size := requested
	if size <= 0 {
		size = 500
		if w.Driver == "duckdb" {
			size = 256
		}
	}
	if w.Driver == "duckdb" && size > 256 {
		size = 256
	}
	if size > total {
		size = total
	}
	return size
}

// duckdbIsConflict reports whether an error is DuckDB's way of flagging a
// unique-key collision. The wording shifted across releases, so every
// known spelling is matched.
func duckdbIsConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "constraint error") ||
		strings.Contains(msg, "update the same row twice")
}

// reportProgress delivers an update without ever blocking the load.
func reportProgress(progress chan<- BatchProgress, update BatchProgress) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
