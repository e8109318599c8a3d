package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlnav/internal/store"
	"github.com/roach88/sqlnav/internal/wherelang"
	"github.com/roach88/sqlnav/queryir"
	"github.com/roach88/sqlnav/querysql"
	"github.com/roach88/sqlnav/sqlnav"
)

// Error codes for failures that do not come from sqlnav itself.
const (
	CodeUsage  = "E_USAGE"
	CodeOpen   = "E_DB_OPEN"
	CodeEngine = "E_ENGINE"
	CodeSchema = "E_SCHEMA"
)

// memoryDB selects a private in-memory database instead of a file.
const memoryDB = ":memory:"

// session is one command's view of the database.
type session struct {
	opts   *RootOptions
	out    *OutputFormatter
	logger *slog.Logger
	store  *store.Store
	db     *sqlnav.Database
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// openSession opens the configured database. Callers must Close it.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	s := &session{
		opts: opts,
		out:  newFormatter(cmd, opts),
	}
	s.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)

	var err error
	if opts.DB == memoryDB {
		s.store, err = store.OpenMemory()
	} else {
		s.store, err = store.Open(opts.DB)
	}
	if err != nil {
		return nil, s.fail(ExitCommandError, CodeOpen, err)
	}
	s.out.VerboseLog("opened %s", opts.DB)
	s.db = sqlnav.New(s.store.DB(), sqlnav.WithLogger(s.logger))
	return s, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Warn("close database", "error", err)
	}
}

// fail reports err through the formatter and returns it as an ExitError.
func (s *session) fail(exit int, code string, err error) error {
	s.out.Error(code, err.Error(), nil)
	return &ExitError{Code: exit, Message: code, Err: err, Reported: true}
}

// failOp reports an error returned by a sqlnav operation. Missing tables
// and columns keep their sqlnav code; anything else came from the engine.
func (s *session) failOp(err error) error {
	var navErr *sqlnav.Error
	if errors.As(err, &navErr) {
		return s.fail(ExitFailure, string(navErr.Code), err)
	}
	return s.fail(ExitFailure, CodeEngine, err)
}

// table opens a view of name, reporting a missing table.
func (s *session) table(cmd *cobra.Command, name string) (*sqlnav.Table, error) {
	tbl, err := s.db.Table(cmd.Context(), name)
	if err != nil {
		return nil, s.failOp(err)
	}
	return tbl, nil
}

// matcher parses a where expression against tbl.
func (s *session) matcher(tbl *sqlnav.Table, where string) (*sqlnav.RowMatcher, error) {
	pred, err := wherelang.Parse(where, tbl.Name())
	if err != nil {
		return nil, s.fail(ExitCommandError, CodeUsage, err)
	}
	s.out.VerboseLog("where %s", querysql.Explain(pred))
	m, err := tbl.Where(pred)
	if err != nil {
		return nil, s.fail(ExitCommandError, CodeUsage, err)
	}
	return m, nil
}

// bulkMatcher selects the rows a destructive command changes. Every row
// needs --all; a blank --where is rejected rather than read as no filter.
func (s *session) bulkMatcher(tbl *sqlnav.Table, where string, all bool) (*sqlnav.RowMatcher, error) {
	if all {
		return tbl.All(), nil
	}
	if strings.TrimSpace(where) == "" {
		return nil, s.fail(ExitCommandError, CodeUsage,
			errors.New("--where is blank; pass --all to match every row"))
	}
	return s.matcher(tbl, where)
}

// literal parses a single value such as 42, -1.5, 'text', NULL or TRUE.
func (s *session) literal(table, src string) (any, error) {
	o, err := wherelang.Parse(src, table)
	if err != nil {
		return nil, s.fail(ExitCommandError, CodeUsage, err)
	}
	lit, ok := o.(queryir.Literal)
	if !ok {
		return nil, s.fail(ExitCommandError, CodeUsage,
			fmt.Errorf("value %q is not a literal (quote text as 'text')", src))
	}
	return lit.Value, nil
}
