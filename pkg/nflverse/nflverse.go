// Package nflverse opens the shared nflverse DuckDB database.
//
// The execution environment mounts a read-only DuckDB database at /nflverse.
// This package validates that the DuckDB driver is linked into the binary and
// that the mount is present before opening a handle, so a missing engine or
// an absent dataset surfaces as one clear ConnectionError instead of a late
// driver failure. The handle returned here is a plain *sql.DB owned by the
// caller; query execution stays with database/sql.
//
// Binaries enable the engine by building with CGO_ENABLED=1 and -tags duckdb,
// which links the driver registration in driver-duckdb.go.
package nflverse

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultDatabasePath is the conventional mount point of the shared nflverse
// dataset. Callers normally leave Config.Path empty and connect here.
const DefaultDatabasePath = "/nflverse"

const (
	driverName   = "duckdb"
	memoryPath   = ":memory:"
	probeTimeout = 2 * time.Second
)

// registeredDrivers lists the database/sql driver names linked into the
// binary. Kept as a variable so tests can simulate a build without DuckDB
// support even after a test driver has claimed the name.
var registeredDrivers = sql.Drivers

// Config selects which database to open. The zero value opens the standard
// /nflverse mount read-only, which is what almost every caller wants.
type Config struct {
	Path      string // database location; empty means DefaultDatabasePath
	ReadWrite bool   // lift the read-only default when the caller owns the file
}

// ConnectionError reports why the nflverse database could not be opened. The
// message on its own tells an operator which precondition failed and how to
// remediate, so callers can surface it directly without unwrapping.
type ConnectionError struct {
	Path string // database path involved, empty when the failure precedes path resolution
	Msg  string // operator-facing explanation with a remediation hint
	Err  error  // underlying driver error, nil for precondition failures
}

func (e *ConnectionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("nflverse: %s: %v", e.Msg, e.Err)
	}
	return "nflverse: " + e.Msg
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Connect opens the nflverse database described by cfg and returns the live
// handle. Every failure comes back as a *ConnectionError whose message names
// the failed precondition, and no handle is left open on the error path. The
// caller owns the returned handle and must Close it; WithConnection does that
// bookkeeping automatically.
func Connect(cfg Config) (*sql.DB, error) {
	if !driverAvailable() {
		return nil, &ConnectionError{
			Msg: "the duckdb driver is not linked into this binary; rebuild with CGO_ENABLED=1 and -tags duckdb to install DuckDB support",
		}
	}

	path, err := normalizePath(cfg.Path)
	if err != nil {
		return nil, err
	}

	// Read-only opens require the database to exist up front. DuckDB would
	// fail on its own eventually, but a precondition message pointing at the
	// mount tells the operator what to fix without reading driver internals.
	// Read-write opens skip the check because the engine creates the file.
	if !cfg.ReadWrite && path != memoryPath {
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, &ConnectionError{
				Path: path,
				Msg:  fmt.Sprintf("database not found at %q; make sure the dataset mount is present and the path is correct", path),
			}
		}
	}

	db, openErr := sql.Open(driverName, dsnFor(path, cfg.ReadWrite))
	if openErr != nil {
		return nil, &ConnectionError{
			Path: path,
			Msg:  fmt.Sprintf("unable to connect to the nflverse database at %q", path),
			Err:  openErr,
		}
	}

	// sql.Open is lazy, so probe the connection before handing it out.
	// Otherwise a corrupt file or a bad mount would only surface on the
	// caller's first query.
	probeCtx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	if pingErr := db.PingContext(probeCtx); pingErr != nil {
		_ = db.Close()
		return nil, &ConnectionError{
			Path: path,
			Msg:  fmt.Sprintf("unable to connect to the nflverse database at %q", path),
			Err:  pingErr,
		}
	}

	return db, nil
}

// WithConnection opens the database described by cfg, runs fn with the live
// handle, and closes the handle on every exit path, including a panicking
// callback. Use it whenever the connection does not need to outlive one
// block of work.
func WithConnection(ctx context.Context, cfg Config, fn func(context.Context, *sql.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, db)
}

// driverAvailable reports whether the DuckDB driver registered itself with
// database/sql. Registration happens in init when the binary is built with
// the duckdb tag, so this is the runtime equivalent of "is the dependency
// installed".
func driverAvailable() bool {
	for _, name := range registeredDrivers() {
		if name == driverName {
			return true
		}
	}
	return false
}

// normalizePath resolves the caller-supplied database location: empty falls
// back to the standard mount, ":memory:" passes through for throwaway
// sessions, "~" expands against the home directory, and relative paths
// anchor to the working directory so error messages always show the real
// location that was probed.
func normalizePath(path string) (string, error) {
	if path == "" {
		path = DefaultDatabasePath
	}
	if path == memoryPath {
		return path, nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", &ConnectionError{Path: path, Msg: "cannot expand ~ in database path", Err: err}
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &ConnectionError{Path: path, Msg: "cannot resolve database path", Err: err}
	}
	return abs, nil
}

// dsnFor appends the access mode to the path the way the DuckDB driver
// expects. Read-only is the default so one consumer of the shared mount
// cannot corrupt it for everyone else.
func dsnFor(path string, readWrite bool) string {
	if readWrite {
		return path
	}
	return path + "?access_mode=read_only"
}
