// Package store provides SQLite-backed persistent state for the
// collectibles ledger.
//
// The store holds:
//   - Groups: token offers keyed by group name, in insertion order
//   - Tokens: minted tokens with their owner record and metadata
//   - Owners: accounts allowed to administer the ledger
//   - Transfers: refunds issued by the deposit reconciler
//
// # Storage Footprint
//
// StorageUsage reports the bytes held by groups, tokens and owners, plus a
// fixed per-row overhead. The deposit reconciler charges and credits the
// difference across a call. Transfers are the ledger's output rather than
// its state and are not counted.
//
// # Deterministic Reads
//
//   - Groups and owners are listed in insertion order (rowid)
//   - Transfers are listed ORDER BY seq ASC, id ASC COLLATE BINARY
//
// # Database Configuration
//
//   - WAL journal, so views read while a call writes
//   - synchronous=NORMAL
//   - busy_timeout=5000 (milliseconds)
//   - foreign_keys=ON
//
// Every mutating ledger call runs inside a Tx so a rejected deposit leaves
// no trace.
package store
