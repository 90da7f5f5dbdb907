// Package sqlite provides the SQLite implementation of the store
// interfaces. The database is a single local file opened through the
// pure-Go modernc.org/sqlite driver, so no separate server process or
// cgo toolchain is required. Schema changes are managed with goose
// migrations embedded in the binary.
package sqlite
