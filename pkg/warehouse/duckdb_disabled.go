//go:build !duckdb

// This file keeps callers honest when DuckDB support is not compiled in.
// With the flag false at build time, operators only see engines their
// binary can actually run.
package warehouse

const duckDBBuilt = false
