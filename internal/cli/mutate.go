package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlnav/internal/wherelang"
	"github.com/roach88/sqlnav/sqlnav"
)

// ChangeResult is the JSON payload of the insert, update and delete
// commands. Rows counts the rows the command matched before changing them.
type ChangeResult struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// SchemaResult is the JSON payload of the create, drop and apply commands.
type SchemaResult struct {
	Tables []string `json:"tables"`
}

// NewInsertCommand creates the insert command.
func NewInsertCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <table> <column=value>...",
		Short: "Insert one row",
		Long: `Insert one row. Values are literals: numbers, 'quoted text', NULL,
TRUE or FALSE. Columns not named are left to their defaults.`,
		Example: `  sqlnav insert items sku="'A1'" qty=9`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			tbl, err := s.table(cmd, args[0])
			if err != nil {
				return err
			}
			fields := make([]sqlnav.Field, 0, len(args)-1)
			for _, arg := range args[1:] {
				col, src, ok := strings.Cut(arg, "=")
				if !ok || col == "" {
					return s.fail(ExitCommandError, CodeUsage,
						fmt.Errorf("argument %q: expected column=value", arg))
				}
				v, err := s.literal(tbl.Name(), src)
				if err != nil {
					return err
				}
				fields = append(fields, sqlnav.F(col, v))
			}
			if err := tbl.InsertRow(cmd.Context(), fields...); err != nil {
				return s.failOp(err)
			}
			return s.out.Emit(ChangeResult{Table: tbl.Name(), Rows: 1}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "inserted 1 row into %s\n", tbl.Name())
				return err
			})
		},
	}
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(opts *RootOptions) *cobra.Command {
	var where string
	var all bool

	cmd := &cobra.Command{
		Use:   "update <table> <column> <value>",
		Short: "Set a column in every matching row",
		Long: `Set a column in every matching row. The value is an expression and
may refer to columns of the same row.`,
		Example: `  sqlnav update items qty 0 --where "bin = 'none'"
  sqlnav update items qty "qty + 1" --all`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			tbl, err := s.table(cmd, args[0])
			if err != nil {
				return err
			}
			m, err := s.bulkMatcher(tbl, where, all)
			if err != nil {
				return err
			}
			value, err := wherelang.Parse(args[2], tbl.Name())
			if err != nil {
				return s.fail(ExitCommandError, CodeUsage, err)
			}

			n, err := m.Count(cmd.Context())
			if err != nil {
				return s.failOp(err)
			}
			if err := m.Set(cmd.Context(), args[1], value); err != nil {
				return s.failOp(err)
			}
			return s.out.Emit(ChangeResult{Table: tbl.Name(), Rows: n}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "updated %d rows in %s\n", n, tbl.Name())
				return err
			})
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "row condition")
	cmd.Flags().BoolVar(&all, "all", false, "update every row")
	cmd.MarkFlagsMutuallyExclusive("where", "all")
	cmd.MarkFlagsOneRequired("where", "all")
	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	var where string
	var all bool

	cmd := &cobra.Command{
		Use:   "delete <table>",
		Short: "Delete every matching row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			tbl, err := s.table(cmd, args[0])
			if err != nil {
				return err
			}
			m, err := s.bulkMatcher(tbl, where, all)
			if err != nil {
				return err
			}
			n, err := m.Count(cmd.Context())
			if err != nil {
				return s.failOp(err)
			}
			if err := m.DeleteAll(cmd.Context()); err != nil {
				return s.failOp(err)
			}
			return s.out.Emit(ChangeResult{Table: tbl.Name(), Rows: n}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "deleted %d rows from %s\n", n, tbl.Name())
				return err
			})
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "row condition")
	cmd.Flags().BoolVar(&all, "all", false, "delete every row")
	cmd.MarkFlagsMutuallyExclusive("where", "all")
	cmd.MarkFlagsOneRequired("where", "all")
	return cmd
}

// NewCreateCommand creates the create command.
func NewCreateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <table> <column-def>...",
		Short: "Create a table, replacing any table of the same name",
		Example: `  sqlnav create items "sku TEXT PRIMARY KEY" "qty INTEGER NOT NULL DEFAULT 0"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			tbl, err := s.db.CreateTable(cmd.Context(), args[0], args[1:]...)
			if err != nil {
				return s.failOp(err)
			}
			return s.out.Emit(SchemaResult{Tables: []string{tbl.Name()}}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "created %s\n", tbl.Name())
				return err
			})
		},
	}
}

// NewDropCommand creates the drop command.
func NewDropCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <table>...",
		Short: "Drop tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.db.DropTables(cmd.Context(), args...); err != nil {
				return s.failOp(err)
			}
			return s.out.Emit(SchemaResult{Tables: args}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "dropped %s\n", strings.Join(args, ", "))
				return err
			})
		},
	}
}
