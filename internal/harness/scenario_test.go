package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "bulk_delete.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "bulk_delete", scenario.Name)
	require.Len(t, scenario.Tables, 1)
	assert.Equal(t, []string{"a INTEGER"}, scenario.Tables[0].Columns)
	require.Len(t, scenario.Rows, 1)
	assert.Equal(t, [][]any{{1}, {2}, {3}}, scenario.Rows[0].Values)
	require.Len(t, scenario.Steps, 1)
	assert.Equal(t, OpDelete, scenario.Steps[0].Op)
	assert.Equal(t, "a > 1", scenario.Steps[0].Where)
	require.Len(t, scenario.Checks, 2)
	require.NotNil(t, scenario.Checks[1].Count)
	assert.Equal(t, int64(1), *scenario.Checks[1].Count)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarioWithBasePath_ResolvesSchema(t *testing.T) {
	dir := filepath.Join("testdata", "scenarios")
	scenario, err := LoadScenarioWithBasePath(filepath.Join(dir, "inventory.yaml"), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "..", "schemas", "inventory.cue"), scenario.Schema)

	_, err = os.Stat(scenario.Schema)
	assert.NoError(t, err)
}

func TestParseScenario_UnknownField(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: has a typo
check:
  - table: t
    count: 0
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: d
checks: [{table: t, count: 0}]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: n
checks: [{table: t, count: 0}]
`,
			wantErr: "description is required",
		},
		{
			name: "no checks",
			content: `
name: n
description: d
`,
			wantErr: "checks list is required",
		},
		{
			name: "table without columns",
			content: `
name: n
description: d
tables: [{name: t}]
checks: [{table: t, count: 0}]
`,
			wantErr: "at least one column",
		},
		{
			name: "rows without table",
			content: `
name: n
description: d
rows: [{columns: [a], values: [[1]]}]
checks: [{table: t, count: 0}]
`,
			wantErr: "rows[0]: table is required",
		},
		{
			name: "unknown op",
			content: `
name: n
description: d
steps: [{op: truncate, table: t}]
checks: [{table: t, count: 0}]
`,
			wantErr: `unknown op "truncate"`,
		},
		{
			name: "set without column",
			content: `
name: n
description: d
steps: [{op: set, table: t, value: 1}]
checks: [{table: t, count: 0}]
`,
			wantErr: "column is required for set",
		},
		{
			name: "set with value and expr",
			content: `
name: n
description: d
steps: [{op: set, table: t, column: a, value: 1, expr: a + 1}]
checks: [{table: t, count: 0}]
`,
			wantErr: "value or expr",
		},
		{
			name: "insert without values",
			content: `
name: n
description: d
steps: [{op: insert, table: t, columns: [a]}]
checks: [{table: t, count: 0}]
`,
			wantErr: "values is required for insert",
		},
		{
			name: "check with project and count",
			content: `
name: n
description: d
checks: [{table: t, project: a, count: 1}]
`,
			wantErr: "exactly one of project or count",
		},
		{
			name: "check with neither",
			content: `
name: n
description: d
checks: [{table: t}]
`,
			wantErr: "exactly one of project or count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
