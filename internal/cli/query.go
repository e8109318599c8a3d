package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlnav/sqlnav"
)

// TablesResult is the JSON payload of the tables command.
type TablesResult struct {
	Tables []string `json:"tables"`
}

// ColumnsResult is the JSON payload of the columns command.
type ColumnsResult struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
}

// RowsResult is the JSON payload of the show command.
type RowsResult struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ValuesResult is the JSON payload of the select command.
type ValuesResult struct {
	Table  string `json:"table"`
	Column string `json:"column"`
	Values []any  `json:"values"`
}

// CountResult is the JSON payload of the count command.
type CountResult struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

// NewTablesCommand creates the tables command.
func NewTablesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.db.Tables(cmd.Context())
			if err != nil {
				return s.failOp(err)
			}
			return s.out.Emit(TablesResult{Tables: names}, func(w io.Writer) error {
				return printLines(w, names)
			})
		},
	}
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "columns <table>",
		Short: "List a table's columns in declaration order",
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
			cols, err := tbl.Columns(cmd.Context())
			if err != nil {
				return s.failOp(err)
			}
			return s.out.Emit(ColumnsResult{Table: tbl.Name(), Columns: cols}, func(w io.Writer) error {
				return printLines(w, cols)
			})
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	var where string

	cmd := &cobra.Command{
		Use:   "show <table>",
		Short: "Print matching rows as a grid",
		Example: `  sqlnav show items
  sqlnav show items --where "qty > 0 AND bin = 'front'"`,
		Args: cobra.ExactArgs(1),
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
			m, err := s.matcher(tbl, where)
			if err != nil {
				return err
			}
			cols, rows, err := m.Rows(cmd.Context())
			if err != nil {
				return s.failOp(err)
			}
			return s.out.Emit(RowsResult{Table: tbl.Name(), Columns: cols, Rows: rows}, func(w io.Writer) error {
				return sqlnav.RenderGrid(w, cols, rows)
			})
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "row condition (default: every row)")
	return cmd
}

// NewSelectCommand creates the select command.
func NewSelectCommand(opts *RootOptions) *cobra.Command {
	var where string

	cmd := &cobra.Command{
		Use:   "select <table> <column>",
		Short: "Print one column of the matching rows",
		Args:  cobra.ExactArgs(2),
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
			m, err := s.matcher(tbl, where)
			if err != nil {
				return err
			}
			values, err := m.Project(cmd.Context(), args[1])
			if err != nil {
				return s.failOp(err)
			}
			result := ValuesResult{Table: tbl.Name(), Column: args[1], Values: values}
			return s.out.Emit(result, func(w io.Writer) error {
				rows := make([][]any, len(values))
				for i, v := range values {
					rows[i] = []any{v}
				}
				return sqlnav.RenderGrid(w, []string{args[1]}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "row condition (default: every row)")
	return cmd
}

// NewCountCommand creates the count command.
func NewCountCommand(opts *RootOptions) *cobra.Command {
	var where string

	cmd := &cobra.Command{
		Use:   "count <table>",
		Short: "Count matching rows",
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
			m, err := s.matcher(tbl, where)
			if err != nil {
				return err
			}
			n, err := m.Count(cmd.Context())
			if err != nil {
				return s.failOp(err)
			}
			return s.out.Emit(CountResult{Table: tbl.Name(), Count: n}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, n)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "row condition (default: every row)")
	return cmd
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
