// Package testutil holds helpers shared by sqlnav tests.
package testutil

import (
	"context"
	"testing"

	"github.com/roach88/sqlnav/internal/store"
	"github.com/roach88/sqlnav/sqlnav"
)

// NewStore opens a private in-memory store that is closed when the test ends.
func NewStore(t testing.TB) *store.Store {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("store.OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// NewDatabase returns a Database over a fresh in-memory store.
func NewDatabase(t testing.TB, opts ...sqlnav.Option) *sqlnav.Database {
	t.Helper()
	return sqlnav.New(NewStore(t).DB(), opts...)
}

// Exec runs raw statements against conn, failing the test on the first error.
func Exec(t testing.TB, conn sqlnav.Conn, statements ...string) {
	t.Helper()
	for _, stmt := range statements {
		if _, err := conn.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}
