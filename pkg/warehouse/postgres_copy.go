package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"nflverse-datahub/pkg/depthchart"
)

// insertStartersPostgresCopy streams starters into PostgreSQL over the COPY
// protocol. COPY cannot skip conflicting rows, so the stream lands in a
// temporary table first and a single INSERT ... SELECT merges it into
// depth_slots under the usual ON CONFLICT policy.
func (w *Warehouse) insertStartersPostgresCopy(ctx context.Context, takenAt int64, starters []depthchart.Starter, progress chan<- BatchProgress) error {
	if len(starters) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if w == nil || w.DB == nil {
		return fmt.Errorf("warehouse unavailable")
	}

	began := time.Now()

	conn, err := w.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open postgres connection: %w", err)
	}
	defer conn.Close()

	// The timestamp suffix keeps names unique per call while staying
	// readable when a stray table shows up in pg_temp during debugging.
	tempTable := fmt.Sprintf("temp_depth_slots_%d", time.Now().UnixNano())
	// No ON COMMIT DROP: the table has to survive autocommit between the
	// COPY and the merge below.
	createTemp := fmt.Sprintf(`CREATE TEMP TABLE %s (
taken_at BIGINT,
team TEXT,
position TEXT,
player TEXT,
status TEXT
)`, tempTable)
	if _, err := conn.ExecContext(ctx, createTemp); err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}

	// Cleanup runs on a detached context so a cancelled caller cannot leave
	// the temp table behind for the rest of the session.
	dropCtx, dropCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer dropCancel()
	defer conn.ExecContext(dropCtx, fmt.Sprintf("DROP TABLE IF EXISTS %s", tempTable))

	rows := make([][]interface{}, 0, len(starters))
	for _, s := range starters {
		rows = append(rows, []interface{}{takenAt, s.Team, s.Position, s.Player, s.Status})
	}

	copyErr := conn.Raw(func(driverConn any) error {
		direct, ok := driverConn.(*stdlib.Conn)
		if !ok {
			return fmt.Errorf("unexpected postgres driver %T", driverConn)
		}
		_, err := direct.Conn().CopyFrom(
			ctx,
			pgx.Identifier{tempTable},
			[]string{"taken_at", "team", "position", "player", "status"},
			pgx.CopyFromRows(rows),
		)
		return err
	})
	if copyErr != nil {
		return fmt.Errorf("copy starters into temp table: %w", copyErr)
	}

	insertFromTemp := fmt.Sprintf(`INSERT INTO depth_slots
(taken_at,team,position,player,status)
SELECT taken_at,team,position,player,status FROM %s
ON CONFLICT ON CONSTRAINT depth_slots_unique DO NOTHING`, tempTable)
	if _, err := conn.ExecContext(ctx, insertFromTemp); err != nil {
		return fmt.Errorf("merge temp starters: %w", err)
	}

	reportProgress(progress, BatchProgress{
		Total:    len(starters),
		Done:     len(starters),
		Batch:    len(starters),
		Mode:     "copy",
		Duration: time.Since(began),
	})

	return nil
}
