package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"nflverse-datahub/pkg/config"
	"nflverse-datahub/pkg/depthchart"
	"nflverse-datahub/pkg/nflverse"
	"nflverse-datahub/pkg/teams"
	"nflverse-datahub/pkg/warehouse"
)

// Environment settings load first so the flag defaults below can pick them
// up; flags always win over the environment.
var settings, settingsErr = config.Load()

var dbPath = flag.String("db", settings.DatabasePath, "Path to the nflverse database mount (empty = /nflverse)")
var readWrite = flag.Bool("read-write", settings.ReadWrite, "Open the nflverse database writable instead of read-only")
var showTables = flag.Bool("show-tables", false, "List the tables in the nflverse database and exit")
var query = flag.String("query", "", "Run one SQL query against the nflverse database and print CSV")
var teamList = flag.String("teams", "", "Comma separated team slugs (default: all 32 teams)")
var depthCharts = flag.Bool("depth-charts", false, "Scrape the current depth charts and print CSV")
var overridePath = flag.String("override", settings.OverridePath, "CSV file with manual depth chart corrections")
var chartURL = flag.String("depth-chart-url", settings.ChartURL, "Depth chart endpoint (empty = ourlads.com)")
var snapshot = flag.Bool("snapshot", false, "Scrape depth charts and store them in the warehouse")
var listSnapshots = flag.Bool("snapshots", false, "List stored snapshot timestamps and exit")
var showSnapshot = flag.Bool("show-snapshot", false, "Print one stored snapshot as CSV")
var snapshotAt = flag.Int64("snapshot-at", 0, "Snapshot timestamp for -show-snapshot (0 = latest)")
var batchSize = flag.Int("batch", 0, "Rows per INSERT during the snapshot load (0 = engine default)")
var warehouseType = flag.String("warehouse-type", settings.WarehouseType, "Warehouse engine: sqlite, chai, genji, duckdb, or pgx (postgresql)")
var warehousePath = flag.String("warehouse-path", settings.WarehousePath, "Warehouse file path (embedded engines)")
var warehouseConn = flag.String("warehouse-conn", settings.WarehouseConn, "Raw PostgreSQL DSN, overrides the -pg-* flags")
var pgHost = flag.String("pg-host", settings.PGHost, "PostgreSQL host (applicable for pgx engine)")
var pgPort = flag.Int("pg-port", settings.PGPort, "PostgreSQL port (applicable for pgx engine)")
var pgUser = flag.String("pg-user", settings.PGUser, "PostgreSQL user (applicable for pgx engine)")
var pgPass = flag.String("pg-pass", settings.PGPass, "PostgreSQL password (applicable for pgx engine)")
var pgName = flag.String("pg-name", settings.PGName, "PostgreSQL database name (applicable for pgx engine)")
var pgSSLMode = flag.String("pg-ssl-mode", settings.PGSSLMode, "PostgreSQL SSL mode: disable, allow, prefer, require, verify-ca, or verify-full")
var version = flag.Bool("version", false, "Show the application version")

var CompileVersion = "dev"

func main() {
	// 1. Flags and version
	flag.Parse()

	if *version {
		fmt.Printf("nflverse-datahub version %s\n", CompileVersion)
		fmt.Printf("warehouse engines: %s\n", strings.Join(warehouse.AvailableEngines(), ", "))
		return
	}

	if settingsErr != nil {
		log.Fatalf("config: %v", settingsErr)
	}

	ctx := context.Background()

	// 2. One operation per invocation
	switch {
	case *showTables:
		runShowTables(ctx)
	case *query != "":
		runQuery(ctx, *query)
	case *depthCharts:
		runDepthCharts(ctx)
	case *snapshot:
		runSnapshot(ctx)
	case *listSnapshots:
		runListSnapshots(ctx)
	case *showSnapshot:
		runShowSnapshot(ctx)
	default:
		fmt.Fprintln(os.Stderr, "nflverse-datahub: pick one of -show-tables, -query, -depth-charts, -snapshot, -snapshots, -show-snapshot")
		flag.Usage()
		os.Exit(2)
	}
}

func mountConfig() nflverse.Config {
	return nflverse.Config{Path: *dbPath, ReadWrite: *readWrite}
}

func warehouseConfig() warehouse.Config {
	return warehouse.Config{
		Type:    *warehouseType,
		Path:    *warehousePath,
		Conn:    *warehouseConn,
		Host:    *pgHost,
		Port:    *pgPort,
		User:    *pgUser,
		Pass:    *pgPass,
		Name:    *pgName,
		SSLMode: *pgSSLMode,
	}
}

// runShowTables lists the tables the nflverse mount exposes.
func runShowTables(ctx context.Context) {
	err := nflverse.WithConnection(ctx, mountConfig(), func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, "SHOW TABLES")
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			fmt.Println(name)
		}
		return rows.Err()
	})
	if err != nil {
		log.Fatalf("show tables: %v", err)
	}
}

// runQuery executes one SQL statement against the mount and streams the
// result as CSV on stdout.
func runQuery(ctx context.Context, stmt string) {
	err := nflverse.WithConnection(ctx, mountConfig(), func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, stmt)
		if err != nil {
			return err
		}
		defer rows.Close()
		return writeRowsCSV(os.Stdout, rows)
	})
	if err != nil {
		log.Fatalf("query: %v", err)
	}
}

// runDepthCharts scrapes the league and prints the starters as CSV.
func runDepthCharts(ctx context.Context) {
	starters := scrapeStarters(ctx)
	if err := writeStartersCSV(os.Stdout, starters); err != nil {
		log.Fatalf("write csv: %v", err)
	}
}

// runSnapshot scrapes the league and stores the result as one timestamped
// snapshot in the warehouse.
func runSnapshot(ctx context.Context) {
	starters := scrapeStarters(ctx)
	if len(starters) == 0 {
		log.Fatal("no starters scraped; nothing to store")
	}

	w, err := warehouse.Open(warehouseConfig())
	if err != nil {
		log.Fatalf("warehouse: %v", err)
	}
	defer w.Close()

	if err := w.InitSchema(ctx); err != nil {
		log.Fatalf("warehouse schema: %v", err)
	}

	idxCtx, cancelIdx := context.WithCancel(ctx)
	defer cancelIdx()
	w.EnsureIndexesAsync(idxCtx)

	takenAt := time.Now().Unix()

	progress := make(chan warehouse.BatchProgress, 8)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for p := range progress {
			log.Printf("⏳ stored %d/%d (%s batch of %d in %s)", p.Done, p.Total, p.Mode, p.Batch, p.Duration)
		}
	}()

	err = w.InsertStarters(ctx, takenAt, starters, *batchSize, progress)
	close(progress)
	<-drained
	if err != nil {
		log.Fatalf("store snapshot: %v", err)
	}

	log.Printf("✔ snapshot %d stored (%d starters)", takenAt, len(starters))
}

// runListSnapshots prints the stored snapshot timestamps, newest first.
func runListSnapshots(ctx context.Context) {
	w, err := warehouse.Open(warehouseConfig())
	if err != nil {
		log.Fatalf("warehouse: %v", err)
	}
	defer w.Close()

	if err := w.InitSchema(ctx); err != nil {
		log.Fatalf("warehouse schema: %v", err)
	}

	stamps, err := w.Snapshots(ctx)
	if err != nil {
		log.Fatalf("snapshots: %v", err)
	}
	for _, ts := range stamps {
		fmt.Printf("%s\t%d\n", time.Unix(ts, 0).UTC().Format(time.RFC3339), ts)
	}
}

// runShowSnapshot prints one stored snapshot as CSV. With a single team in
// -teams the output is filtered to that team.
func runShowSnapshot(ctx context.Context) {
	w, err := warehouse.Open(warehouseConfig())
	if err != nil {
		log.Fatalf("warehouse: %v", err)
	}
	defer w.Close()

	if err := w.InitSchema(ctx); err != nil {
		log.Fatalf("warehouse schema: %v", err)
	}

	takenAt := *snapshotAt
	if takenAt == 0 {
		takenAt, err = w.LatestTakenAt(ctx)
		if err != nil {
			log.Fatalf("latest snapshot: %v", err)
		}
		if takenAt == 0 {
			log.Fatal("warehouse is empty; run -snapshot first")
		}
	}

	filter := ""
	if list := strings.TrimSpace(*teamList); list != "" &&
		!strings.EqualFold(list, "all") && !strings.Contains(list, ",") {
		team, ok := teams.ResolveSlug(list)
		if !ok {
			log.Fatalf("unknown team %q", list)
		}
		filter = team
	}

	starters, err := w.Starters(ctx, takenAt, filter)
	if err != nil {
		log.Fatalf("load snapshot: %v", err)
	}
	if err := writeStartersCSV(os.Stdout, starters); err != nil {
		log.Fatalf("write csv: %v", err)
	}
}

// scrapeStarters resolves the requested teams and pulls their charts. Both
// an empty -teams and the literal "all" expand to the whole league.
func scrapeStarters(ctx context.Context) []depthchart.Starter {
	slugs := teams.Slugs()
	if *teamList != "" && !strings.EqualFold(strings.TrimSpace(*teamList), "all") {
		slugs = nil
		for _, raw := range strings.Split(*teamList, ",") {
			team, ok := teams.ResolveSlug(raw)
			if !ok {
				log.Fatalf("unknown team %q", strings.TrimSpace(raw))
			}
			slugs = append(slugs, team)
		}
	}

	client := depthchart.NewClient(depthchart.Config{
		BaseURL:   *chartURL,
		Timeout:   settings.HTTPTimeout,
		UserAgent: settings.UserAgent,
	})

	starters, err := client.ReadStarters(ctx, slugs, *overridePath)
	if err != nil {
		log.Fatalf("depth charts: %v", err)
	}
	return starters
}

// writeStartersCSV prints starters with a fixed header so the output can
// be piped into the override file format directly.
func writeStartersCSV(w io.Writer, starters []depthchart.Starter) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"team", "position", "player", "status"}); err != nil {
		return err
	}
	for _, s := range starters {
		if err := cw.Write([]string{s.Team, s.Position, s.Player, s.Status}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeRowsCSV streams an arbitrary result set as CSV, header first.
func writeRowsCSV(w io.Writer, rows *sql.Rows) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// formatValue renders one scanned cell for CSV output. NULL becomes the
// empty string, everything else falls back to its natural formatting.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
