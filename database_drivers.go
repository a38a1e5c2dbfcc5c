//go:build !test

// This file links the heavyweight SQL drivers into production builds only.
// Passing -tags test drops it so editor tooling and quick test runs skip
// the cgo-adjacent engines; binaries keep every registered backend.
package main

import "nflverse-datahub/pkg/warehouse/drivers"

func init() {
	// Touch the drivers package so its init functions register the SQL
	// backends before any warehouse or mount connection is opened.
	drivers.Ready()
}
