package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// cliRun is one CLI invocation's captured output.
type cliRun struct {
	Stdout string
	Stderr string
	Err    error
}

// execute runs the root command with args against db. If db is empty no
// --db flag is passed.
func execute(t *testing.T, db string, args ...string) cliRun {
	t.Helper()

	configDir := t.TempDir()
	old := configSearchPaths
	configSearchPaths = func() []string { return []string{configDir} }
	t.Cleanup(func() { configSearchPaths = old })

	full := []string{"--no-color"}
	if db != "" {
		full = append(full, "--db", db)
	}
	full = append(full, args...)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(full)

	err := cmd.Execute()
	return cliRun{Stdout: out.String(), Stderr: errOut.String(), Err: err}
}

// mustExecute is execute that fails the test on error.
func mustExecute(t *testing.T, db string, args ...string) string {
	t.Helper()
	r := execute(t, db, args...)
	require.NoError(t, r.Err, "stdout: %s\nstderr: %s", r.Stdout, r.Stderr)
	return r.Stdout
}

// itemsDB returns a database file holding
// items(sku TEXT, qty INTEGER) = (A1, 9), (B2, 0), (C3, 3).
func itemsDB(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "items.db")
	mustExecute(t, db, "create", "items", "sku TEXT", "qty INTEGER")
	mustExecute(t, db, "insert", "items", "sku='A1'", "qty=9")
	mustExecute(t, db, "insert", "items", "sku='B2'", "qty=0")
	mustExecute(t, db, "insert", "items", "sku='C3'", "qty=3")
	return db
}

// decodeResponse parses a JSON envelope.
func decodeResponse(t *testing.T, out string, data any) CLIResponse {
	t.Helper()
	var raw struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), "output: %s", out)
	if data != nil && raw.Data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return CLIResponse{Status: raw.Status, Error: raw.Error}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
