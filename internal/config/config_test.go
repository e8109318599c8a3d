package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "sqlnav.db", "")
	fs.String("format", "text", "")
	fs.Bool("verbose", false, "")
	fs.Bool("no-color", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".sqlnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Loader{SearchPaths: []string{t.TempDir()}, Flags: testFlags(t)}.Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlnav.db", cfg.DB)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.NoColor)
	assert.Empty(t, cfg.File)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "db: shop.db\nformat: json\nverbose: true\nno_color: true\n")

	cfg, err := Loader{SearchPaths: []string{dir}, Flags: testFlags(t)}.Load()
	require.NoError(t, err)

	assert.Equal(t, "shop.db", cfg.DB)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "db: shop.db\n")
	t.Setenv("SQLNAV_DB", "env.db")

	cfg, err := Loader{SearchPaths: []string{dir}, Flags: testFlags(t)}.Load()
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.DB)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("SQLNAV_DB", "env.db")
	t.Setenv("SQLNAV_FORMAT", "json")

	cfg, err := Loader{SearchPaths: []string{t.TempDir()}, Flags: testFlags(t, "--db", "flag.db")}.Load()
	require.NoError(t, err)
	assert.Equal(t, "flag.db", cfg.DB)
	assert.Equal(t, "json", cfg.Format, "unset flag falls through to env")
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: custom.db\n"), 0o644))

	cfg, err := Loader{ConfigFile: path}.Load()
	require.NoError(t, err)
	assert.Equal(t, "custom.db", cfg.DB)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	_, err := Loader{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "db: [unclosed\n")

	_, err := Loader{SearchPaths: []string{dir}}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_ExpandsHomeInDBPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cfg, err := Loader{SearchPaths: []string{t.TempDir()}, Flags: testFlags(t, "--db", "~/data/app.db")}.Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "app.db"), cfg.DB)
}
