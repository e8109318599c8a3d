package sqlnav_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlnav/internal/testutil"
	"github.com/roach88/sqlnav/sqlnav"
)

// seedTable creates a table with the given columns and rows in a fresh
// database.
func seedTable(t *testing.T, name string, defs []string, columns []string, rows [][]any) (*sqlnav.Database, *sqlnav.Table) {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	tbl, err := db.CreateTable(ctx, name, defs...)
	require.NoError(t, err)
	require.NoError(t, tbl.InsertRows(ctx, columns, rows))
	return db, tbl
}

// abTable is t(a INTEGER, b TEXT) holding (1, "x"), (2, "y").
func abTable(t *testing.T) (*sqlnav.Database, *sqlnav.Table) {
	t.Helper()
	return seedTable(t, "t",
		[]string{"a INTEGER", "b TEXT"},
		[]string{"a", "b"},
		[][]any{{1, "x"}, {2, "y"}},
	)
}

func codeOf(t *testing.T, err error) sqlnav.ErrorCode {
	t.Helper()
	var e *sqlnav.Error
	require.ErrorAs(t, err, &e)
	return e.Code
}
