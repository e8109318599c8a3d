// Package config resolves sqlnav CLI settings from flags, SQLNAV_*
// environment variables and an optional .sqlnav.yaml file.
//
// Precedence, highest first: explicitly set flag, environment, config
// file, flag default.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SQLNAV_DB.
const EnvPrefix = "SQLNAV"

// Keys shared by flags, environment and config file.
const (
	KeyDB      = "db"
	KeyFormat  = "format"
	KeyVerbose = "verbose"
	KeyNoColor = "no_color"
)

// Config holds resolved CLI settings.
type Config struct {
	// DB is the SQLite database path. ":memory:" opens a private
	// in-memory database.
	DB      string
	Format  string
	Verbose bool
	NoColor bool

	// File is the config file that was read, empty if none.
	File string
}

// Loader resolves a Config.
type Loader struct {
	// ConfigFile, when set, is read instead of searching SearchPaths.
	ConfigFile string

	// SearchPaths are the directories searched for .sqlnav.yaml.
	// Default: DefaultSearchPaths().
	SearchPaths []string

	// Flags are bound by key name; a flag named "no-color" binds to
	// KeyNoColor.
	Flags *pflag.FlagSet
}

// DefaultSearchPaths returns the working directory, the home directory and
// ~/.config/sqlnav.
func DefaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := homedir.Dir(); err == nil {
		paths = append(paths, home, filepath.Join(home, ".config", "sqlnav"))
	}
	return paths
}

// Load resolves the configuration. A missing config file is not an error;
// a malformed one is.
func (l Loader) Load() (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyDB, "sqlnav.db")
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyNoColor, false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if l.Flags != nil {
		for key, name := range map[string]string{
			KeyDB:      "db",
			KeyFormat:  "format",
			KeyVerbose: "verbose",
			KeyNoColor: "no-color",
		} {
			if f := l.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if l.ConfigFile != "" {
		path, err := homedir.Expand(l.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".sqlnav")
		v.SetConfigType("yaml")
		paths := l.SearchPaths
		if paths == nil {
			paths = DefaultSearchPaths()
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	db, err := homedir.Expand(v.GetString(KeyDB))
	if err != nil {
		return nil, fmt.Errorf("expand db path: %w", err)
	}

	return &Config{
		DB:      db,
		Format:  v.GetString(KeyFormat),
		Verbose: v.GetBool(KeyVerbose),
		NoColor: v.GetBool(KeyNoColor),
		File:    v.ConfigFileUsed(),
	}, nil
}
