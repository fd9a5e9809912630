//go:build !cgo

package storage

import (
	_ "modernc.org/sqlite"
)

// sqliteDriver is the database/sql driver name registered by the SQLite
// implementation compiled into this binary. Without cgo the pure Go
// driver is used, so cross-compiled binaries keep a working ledger.
const sqliteDriver = "sqlite"
