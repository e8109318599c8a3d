// Package store opens the SQLite database behind sqlnav.
//
// sqlnav only needs something that can execute a statement and return rows;
// store provides that as a *sql.DB backed by github.com/mattn/go-sqlite3.
//
// # Connection Model
//
//   - Exactly one open connection (SetMaxOpenConns(1))
//   - Statements from every Database, Table, Column and RowMatcher view
//     serialise through it in call order
//   - Result rows must be closed before the next statement runs, otherwise
//     the next statement waits for the connection
//
// # Database Configuration
//
//   - WAL mode: file databases only
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Closing the store is the caller's job. sqlnav views never close the
// connection they were given.
package store
