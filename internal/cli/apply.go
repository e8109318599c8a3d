package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlnav/internal/schemafile"
	"github.com/roach88/sqlnav/sqlnav"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <schema-file>",
		Short: "Create every table in a CUE or YAML schema file",
		Long: `Create every table in a schema file, replacing tables that already
exist. The file is applied in one transaction: if any table fails, none
of the file's changes remain.

Schema files are CUE (.cue) or YAML (.yaml, .yml):

  tables: [
    {name: "items", columns: ["sku TEXT PRIMARY KEY", "qty INTEGER"]},
  ]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			defs, err := schemafile.Load(args[0])
			if err != nil {
				code := CodeSchema
				var loadErr *schemafile.LoadError
				if errors.As(err, &loadErr) {
					code = loadErr.Code
				}
				return s.fail(ExitCommandError, code, err)
			}
			s.out.VerboseLog("applying %d tables from %s", len(defs), args[0])

			err = s.store.WithTx(cmd.Context(), func(tx *sql.Tx) error {
				return schemafile.Apply(cmd.Context(), sqlnav.New(tx, sqlnav.WithLogger(s.logger)), defs)
			})
			if err != nil {
				return s.failOp(err)
			}

			names := make([]string, len(defs))
			for i, d := range defs {
				names[i] = d.Name
			}
			return s.out.Emit(SchemaResult{Tables: names}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "applied %d tables from %s\n", len(names), args[0])
				return err
			})
		},
	}
}
