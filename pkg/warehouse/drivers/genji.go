//go:build dragonfly || ios || freebsd || darwin || (linux && ppc64) || (linux && ppc64le) || (linux && s390x) || (linux && amd64) || (linux && mips64) || (linux && mips64le) || (linux && arm64) || android || (windows && amd64) || (windows && arm64)

package drivers

import (
	// Genji registers itself as "genji" from its own init. The warehouse
	// only reaches it through database/sql, so a blank import is all the
	// wiring it needs.
	_ "github.com/genjidb/genji/driver"
)
