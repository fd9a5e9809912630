// Package storage provides storage backends for the run ledger.
//
// Two implementations are available:
//
//   - SQLiteStorage: durable single-file database, the default for
//     real installations. Uses WAL mode for safe concurrent access.
//   - MemoryStorage: in-memory map, intended for testing only.
//
// Both satisfy the history.Storage interface.
package storage
