//go:build duckdb

// The duckdb build tag is required for the DuckDB driver. This file marks
// the binary as carrying DuckDB support so the engine is only offered when
// it is actually compiled in.
package warehouse

const duckDBBuilt = true
