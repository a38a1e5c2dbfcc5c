//go:build cgo && duckdb && linux && (amd64 || arm64)

// DuckDB needs CGO and a platform-specific static library, so only tagged
// Linux builds link it and cross compilation of the default engine set
// stays simple.
// Build examples:
//
//	CGO_ENABLED=1 GOOS=linux GOARCH=amd64 go build -tags duckdb
//	CGO_ENABLED=1 GOOS=linux GOARCH=arm64 go build -tags duckdb
package drivers

import (
	_ "github.com/marcboeker/go-duckdb"
)
