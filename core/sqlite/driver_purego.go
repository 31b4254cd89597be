//go:build !cgo_sqlite

package sqlite

import _ "modernc.org/sqlite"

const (
	driverName = "sqlite"
	driverType = "purego"
)
