package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateValuesEqual(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs value", nil, int64(0), false},
		{"int vs int64", 3, int64(3), true},
		{"int mismatch", 3, int64(4), false},
		{"string", "x", "x", true},
		{"string vs bytes", "x", []byte("x"), true},
		{"string vs int", "1", int64(1), false},
		{"float", 2.5, 2.5, true},
		{"float vs int64", 2.0, int64(2), true},
		{"bool vs stored int", true, int64(1), true},
		{"bool false vs stored int", false, int64(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stateValuesEqual(tt.expected, tt.actual))
		})
	}
}

func TestColumnValuesEqual_LengthMismatch(t *testing.T) {
	assert.False(t, columnValuesEqual([]any{1}, []any{int64(1), int64(2)}))
	assert.True(t, columnValuesEqual(nil, []any{}))
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{Index: 2, Table: "t", Expected: "1 rows", Actual: "0 rows"}
	assert.Equal(t, "check[2] failed on t (all rows)\n  Expected: 1 rows\n  Actual: 0 rows", err.Error())
}

func TestFormatValues(t *testing.T) {
	assert.Equal(t, `[1, "x", NULL]`, formatValues([]any{int64(1), "x", nil}))
}
