package config

import (
	"testing"
	"time"
)

// TestLoadDefaults pins the built-in defaults a fresh container starts
// with before any NFLVERSE_* variable is exported.
func TestLoadDefaults(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.DatabasePath != "" {
		t.Errorf("DatabasePath = %q, want empty (library default)", s.DatabasePath)
	}
	if s.ReadWrite {
		t.Error("ReadWrite = true, want false")
	}
	if s.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", s.HTTPTimeout)
	}
	if s.OverridePath != "starters_override.csv" {
		t.Errorf("OverridePath = %q, want starters_override.csv", s.OverridePath)
	}
	if s.WarehouseType != "sqlite" {
		t.Errorf("WarehouseType = %q, want %q", s.WarehouseType, "sqlite")
	}
	if s.PGHost != "localhost" || s.PGPort != 5432 {
		t.Errorf("PG defaults = %s:%d, want localhost:5432", s.PGHost, s.PGPort)
	}
	if s.PGSSLMode != "prefer" {
		t.Errorf("PGSSLMode = %q, want %q", s.PGSSLMode, "prefer")
	}
}

// TestLoadFromEnvironment checks that exported variables replace the
// defaults, including the typed fields.
func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NFLVERSE_DB_PATH", "/mnt/data/nflverse")
	t.Setenv("NFLVERSE_DB_READ_WRITE", "true")
	t.Setenv("NFLVERSE_CHART_URL", "http://localhost:8080/charts")
	t.Setenv("NFLVERSE_HTTP_TIMEOUT", "5s")
	t.Setenv("NFLVERSE_WAREHOUSE_TYPE", "duckdb")
	t.Setenv("NFLVERSE_WAREHOUSE_PATH", "/var/lib/depthcharts.duckdb")
	t.Setenv("NFLVERSE_PG_PORT", "6432")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.DatabasePath != "/mnt/data/nflverse" {
		t.Errorf("DatabasePath = %q, want /mnt/data/nflverse", s.DatabasePath)
	}
	if !s.ReadWrite {
		t.Error("ReadWrite = false, want true")
	}
	if s.ChartURL != "http://localhost:8080/charts" {
		t.Errorf("ChartURL = %q, want http://localhost:8080/charts", s.ChartURL)
	}
	if s.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", s.HTTPTimeout)
	}
	if s.WarehouseType != "duckdb" {
		t.Errorf("WarehouseType = %q, want duckdb", s.WarehouseType)
	}
	if s.WarehousePath != "/var/lib/depthcharts.duckdb" {
		t.Errorf("WarehousePath = %q, want /var/lib/depthcharts.duckdb", s.WarehousePath)
	}
	if s.PGPort != 6432 {
		t.Errorf("PGPort = %d, want 6432", s.PGPort)
	}
}

// TestLoadBadValue makes sure a malformed typed variable surfaces as an
// error instead of silently falling back.
func TestLoadBadValue(t *testing.T) {
	t.Setenv("NFLVERSE_PG_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a non-numeric port")
	}
}
