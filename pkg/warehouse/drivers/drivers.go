// Package drivers registers the warehouse database/sql engines. Nothing in
// here is called for its result: importing the package wires up sqlite, chai
// and genji (plus DuckDB when built with -tags duckdb), and skipping the
// import keeps those dependencies out of builds that never open a warehouse.
package drivers

// Ready gives importers something to call so the blank-import side effect
// reads as intentional at the call site.
func Ready() {}
