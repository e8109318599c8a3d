package wherelang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlnav/queryir"
	"github.com/roach88/sqlnav/querysql"
)

func TestParse_Compiles(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantSQL    string
		wantParams []any
	}{
		{"comparison", "a > 1", "(a > ?)", []any{int64(1)}},
		{"and", "a > 1 AND b < 2", "((a > ?) AND (b < ?))", []any{int64(1), int64(2)}},
		{"or binds loosest", "a = 1 or b = 2 and c = 3",
			"((a = ?) OR ((b = ?) AND (c = ?)))", []any{int64(1), int64(2), int64(3)}},
		{"parens", "(a = 1 OR b = 2) AND c = 3",
			"(((a = ?) OR (b = ?)) AND (c = ?))", []any{int64(1), int64(2), int64(3)}},
		{"arithmetic", "price * 2 > cost + 10",
			"((price * ?) > (cost + ?))", []any{int64(2), int64(10)}},
		{"left associative", "1 - 2 - 3", "((? - ?) - ?)", []any{int64(1), int64(2), int64(3)}},
		{"columns only", "a + b * c", "(a + (b * c))", nil},
		{"negative float and <>", "a - -1.5 <> 3", "((a - ?) != ?)", []any{-1.5, int64(3)}},
		{"string escape", "name = 'o''brien'", "(name = ?)", []any{"o'brien"}},
		{"empty string", "name != ''", "(name != ?)", []any{""}},
		{"bool", "flag = TRUE", "(flag = ?)", []any{true}},
		{"null", "x = null", "(x = ?)", []any{nil}},
		{"keyword prefix identifier", "android >= 1", "(android >= ?)", []any{int64(1)}},
		{"bare column", "active", "active", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := Parse(tt.src, "t")
			require.NoError(t, err)

			sql, params, err := querysql.Compile(o)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantParams == nil {
				assert.Empty(t, params)
			} else {
				assert.Equal(t, tt.wantParams, params)
			}
		})
	}
}

func TestParse_Blank(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\t"} {
		o, err := Parse(src, "t")
		require.NoError(t, err)
		assert.Equal(t, queryir.Always{}, o)
	}
}

func TestParse_ColumnsCarryTable(t *testing.T) {
	o, err := Parse("a > b", "users")
	require.NoError(t, err)
	assert.Equal(t, []queryir.ColumnRef{
		{Table: "users", Name: "a"},
		{Table: "users", Name: "b"},
	}, queryir.Columns(o))
}

func TestParse_Errors(t *testing.T) {
	tests := []string{
		"a >",
		"a = 'unterminated",
		"AND",
		"a > 1 )",
		"(a > 1",
		"-a > 1",
		"a ! 1",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src, "t")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse where")
		})
	}
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { MustParse("a = 1", "t") })
	assert.Panics(t, func() { MustParse("a =", "t") })
}
