// Package repositories persists the setlist document.
//
// The whole board is stored as one JSON snapshot under a versioned key name. Loading tries
// [CurrentKey] first, then [LegacyKey]; saving always writes [CurrentKey].
//
// Implementations:
//   - [SQLiteStore] : snapshots table in the configured SQLite database, with a revision counter per save
//   - [FileStore] : one JSON file per key in a directory
//
// [LoadOrDemo] is the startup path: any missing or unreadable snapshot yields the demo board instead of an error.
package repositories
