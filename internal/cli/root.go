package cli

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roach88/sqlnav/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	DB         string
	NoColor    bool
	ConfigFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// configSearchPaths is replaced in tests so a developer's own
// .sqlnav.yaml never leaks in.
var configSearchPaths = config.DefaultSearchPaths

// NewRootCommand creates the root command for the sqlnav CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sqlnav",
		Short: "Navigate a SQLite database table by table, column by column",
		Long: `sqlnav inspects and edits a SQLite database through lazy table,
column and row views. Row conditions use a small expression language:

  sqlnav show users --where "age >= 18 AND name != 'root'"
  sqlnav update items qty "qty - 1" --where "sku = 'A1'"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Loader{
				ConfigFile:  opts.ConfigFile,
				SearchPaths: configSearchPaths(),
				Flags:       cmd.Flags(),
			}.Load()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			opts.DB = cfg.DB
			opts.Format = cfg.Format
			opts.Verbose = cfg.Verbose
			opts.NoColor = cfg.NoColor

			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.NoColor {
				color.NoColor = true
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every statement to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "sqlnav.db", `SQLite database path (":memory:" for a scratch database)`)
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: .sqlnav.yaml in ., ~ or ~/.config/sqlnav)")

	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewColumnsCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewSelectCommand(opts))
	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewInsertCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewDropCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}
