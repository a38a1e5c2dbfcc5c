//go:build dragonfly || ios || freebsd || darwin || (linux && ppc64) || (linux && ppc64le) || (linux && s390x) || (linux && amd64) || (linux && mips64) || (linux && mips64le) || (linux && arm64) || android || (windows && amd64) || (windows && arm64)

package drivers

import (
	"database/sql"
	"database/sql/driver"

	sqlite "modernc.org/sqlite"
)

// init registers "chai" as a second name for the modernc SQLite backend, so
// -warehouse-type=chai stays pure Go and a .chai file is plain SQLite
// underneath.
func init() {
	sql.Register("chai", newChaiDriver())
}

func newChaiDriver() driver.Driver {
	return &sqlite.Driver{}
}
