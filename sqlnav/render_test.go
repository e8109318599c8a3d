package sqlnav

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGrid_PadsToWidestCell(t *testing.T) {
	var buf bytes.Buffer
	err := RenderGrid(&buf, []string{"id", "name"}, [][]any{
		{int64(1), "ann"},
		{int64(2), nil},
	})
	require.NoError(t, err)

	want := "-----------\n" +
		"|id  |name|\n" +
		"===========\n" +
		"|1   |ann |\n" +
		"|2   |NULL|\n" +
		"-----------\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderGrid_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, []string{"a"}, nil))
	assert.Equal(t, "---\n|a|\n===\n---\n", buf.String())
}

func TestRenderGrid_WideRunes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, []string{"名"}, [][]any{{"ab"}, {"x"}}))
	assert.Equal(t, "----\n|名|\n====\n|ab|\n|x |\n----\n", buf.String())
}

func TestFormatCell(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"string", "hello", "hello"},
		{"bytes", []byte("blob"), "blob"},
		{"int64", int64(-42), "-42"},
		{"float", 2.5, "2.5"},
		{"whole float", 3.0, "3"},
		{"bool", true, "1"},
		{"time", ts, "2024-05-01T12:00:00Z"},
		{"other", 7, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCell(tt.in))
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 0, displayWidth(""))
	assert.Equal(t, 3, displayWidth("abc"))
	assert.Equal(t, 4, displayWidth("日本"))
	assert.Equal(t, 2, displayWidth("Ａ"))
	assert.Equal(t, 1, displayWidth("ｱ"))
}
