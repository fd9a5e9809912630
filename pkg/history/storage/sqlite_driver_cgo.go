//go:build cgo

package storage

import (
	_ "github.com/mattn/go-sqlite3"
)

// sqliteDriver is the database/sql driver name registered by the SQLite
// implementation compiled into this binary. With cgo available the
// C-library-backed driver is used.
const sqliteDriver = "sqlite3"
