package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/sqlnav/internal/schemafile"
	"github.com/roach88/sqlnav/internal/store"
	"github.com/roach88/sqlnav/internal/wherelang"
	"github.com/roach88/sqlnav/queryir"
	"github.com/roach88/sqlnav/sqlnav"
)

// Harness is the scenario execution engine for one run.
type Harness struct {
	store  *store.Store
	db     *sqlnav.Database
	logger *slog.Logger
}

// Option configures a run.
type Option func(*Harness)

// WithLogger routes sqlnav statement logs and step logs to logger.
//
// Default: logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Apply the schema file and inline tables
// 3. Seed rows
// 4. Execute steps, comparing failures with expect_error
// 5. Evaluate checks and render every table
//
// Setup failures (schema, tables, rows) are returned as errors. Step and
// check failures are reported in the result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	st, err := store.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.db = sqlnav.New(st.DB(), sqlnav.WithLogger(h.logger))

	ctx := context.Background()

	if err := h.setup(ctx, scenario); err != nil {
		return nil, err
	}

	result := NewResult()
	h.executeSteps(ctx, scenario.Steps, result)

	for _, msg := range EvaluateChecks(ctx, h.db, scenario.Checks) {
		result.AddError(msg)
	}

	var buf bytes.Buffer
	if err := h.db.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to render database: %w", err)
	}
	result.Render = buf.String()

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"steps", len(result.Trace),
	)
	return result, nil
}

// setup applies the schema file, inline tables and seed rows.
func (h *Harness) setup(ctx context.Context, scenario *Scenario) error {
	if scenario.Schema != "" {
		defs, err := schemafile.Load(scenario.Schema)
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}
		if err := schemafile.Apply(ctx, h.db, defs); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if err := schemafile.Apply(ctx, h.db, scenario.Tables); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	for i, rs := range scenario.Rows {
		tbl, err := h.db.Table(ctx, rs.Table)
		if err != nil {
			return fmt.Errorf("rows[%d]: %w", i, err)
		}
		if err := tbl.InsertRows(ctx, rs.Columns, rs.Values); err != nil {
			return fmt.Errorf("rows[%d]: %w", i, err)
		}
	}
	return nil
}

// executeSteps runs steps in order. After the first unexpected outcome the
// remaining steps are skipped.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) {
	for i, step := range steps {
		err := h.executeStep(ctx, step)
		result.AddStepTrace(i, step, err)

		if msg := compareStepError(step, err); msg != "" {
			result.AddError(fmt.Sprintf("steps[%d] (%s %s): %s", i, step.Op, step.Table, msg))
			return
		}
	}
}

func (h *Harness) executeStep(ctx context.Context, step Step) error {
	h.logger.Debug("executing step", "op", step.Op, "table", step.Table, "where", step.Where)

	tbl, err := h.db.Table(ctx, step.Table)
	if err != nil {
		return err
	}

	switch step.Op {
	case OpDelete:
		m, err := matcher(tbl, step.Where)
		if err != nil {
			return err
		}
		return m.DeleteAll(ctx)

	case OpSet:
		m, err := matcher(tbl, step.Where)
		if err != nil {
			return err
		}
		value := step.Value
		if step.Expr != "" {
			expr, err := wherelang.Parse(step.Expr, tbl.Name())
			if err != nil {
				return err
			}
			value = expr
		}
		return m.Set(ctx, step.Column, value)

	case OpOverwrite:
		return tbl.Column(step.Column).Overwrite(ctx, step.Match, step.Value)

	case OpInsert:
		return tbl.InsertRows(ctx, step.Columns, step.Values)

	case OpAddColumns:
		return tbl.AddColumns(ctx, step.Columns...)

	case OpDropColumns:
		return tbl.DropColumns(ctx, step.Columns...)

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// matcher parses a where-language condition into a RowMatcher.
func matcher(tbl *sqlnav.Table, where string) (*sqlnav.RowMatcher, error) {
	pred, err := wherelang.Parse(where, tbl.Name())
	if err != nil {
		return nil, err
	}
	if _, ok := pred.(queryir.Always); ok {
		return tbl.All(), nil
	}
	return tbl.Where(pred)
}

// compareStepError returns a failure message, or "" if the step behaved
// as expected.
func compareStepError(step Step, err error) string {
	switch {
	case step.ExpectError == "" && err != nil:
		return fmt.Sprintf("unexpected error: %v", err)
	case step.ExpectError == "":
		return ""
	case err == nil:
		return fmt.Sprintf("expected error %s, step succeeded", step.ExpectError)
	case step.ExpectError == ExpectAnyError:
		return ""
	}

	var se *sqlnav.Error
	if !errors.As(err, &se) {
		return fmt.Sprintf("expected error %s, got engine error: %v", step.ExpectError, err)
	}
	if string(se.Code) != step.ExpectError {
		return fmt.Sprintf("expected error %s, got %s", step.ExpectError, se.Code)
	}
	return ""
}
