// Package config loads runtime settings from NFLVERSE_* environment
// variables. Command line flags still win; the environment only replaces
// the built-in defaults so containers can be configured without long argv
// lines.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings mirrors the command line surface of the binary.
type Settings struct {
	// DatabasePath points at the read-only nflverse mount. Empty selects
	// the library default.
	DatabasePath string        `env:"NFLVERSE_DB_PATH"`
	ReadWrite    bool          `env:"NFLVERSE_DB_READ_WRITE" envDefault:"false"`
	ChartURL     string        `env:"NFLVERSE_CHART_URL"`
	HTTPTimeout  time.Duration `env:"NFLVERSE_HTTP_TIMEOUT"  envDefault:"30s"`
	UserAgent    string        `env:"NFLVERSE_USER_AGENT"`
	OverridePath string        `env:"NFLVERSE_OVERRIDE_PATH" envDefault:"starters_override.csv"`

	WarehouseType string `env:"NFLVERSE_WAREHOUSE_TYPE" envDefault:"sqlite"`
	WarehousePath string `env:"NFLVERSE_WAREHOUSE_PATH"`
	WarehouseConn string `env:"NFLVERSE_WAREHOUSE_CONN"`

	PGHost    string `env:"NFLVERSE_PG_HOST"     envDefault:"localhost"`
	PGPort    int    `env:"NFLVERSE_PG_PORT"     envDefault:"5432"`
	PGUser    string `env:"NFLVERSE_PG_USER"     envDefault:"postgres"`
	PGPass    string `env:"NFLVERSE_PG_PASS"`
	PGName    string `env:"NFLVERSE_PG_NAME"     envDefault:"nflverse"`
	PGSSLMode string `env:"NFLVERSE_PG_SSL_MODE" envDefault:"prefer"`
}

// Load parses the environment into Settings.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
