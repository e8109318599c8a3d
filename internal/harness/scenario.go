package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sqlnav/internal/schemafile"
)

// Scenario describes a database test: the tables to create, the rows to
// seed, the operations to run and the checks that must hold afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Schema is an optional CUE or YAML schema file applied before Tables.
	// Relative paths resolve against the scenario file's directory when
	// loaded with LoadScenarioWithBasePath.
	Schema string `yaml:"schema,omitempty"`

	// Tables are created in order, replacing tables of the same name.
	Tables []schemafile.TableDef `yaml:"tables,omitempty"`

	// Rows seed tables before the steps run.
	Rows []RowSet `yaml:"rows,omitempty"`

	// Steps run in order against the seeded database.
	Steps []Step `yaml:"steps,omitempty"`

	// Checks are evaluated after every step has run.
	Checks []Check `yaml:"checks"`
}

// RowSet is a batch of rows for one table.
type RowSet struct {
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns"`
	Values  [][]any  `yaml:"values"`
}

// Step is one operation applied through sqlnav.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	Table string `yaml:"table"`

	// Where is a condition in the where language. Empty matches every row.
	Where string `yaml:"where,omitempty"`

	// Column is the target column of set and overwrite.
	Column string `yaml:"column,omitempty"`

	// Value is the literal assigned by set, or the replacement of overwrite.
	Value any `yaml:"value,omitempty"`

	// Expr is an expression assigned by set instead of Value, e.g. "a + 1".
	Expr string `yaml:"expr,omitempty"`

	// Match is the value overwrite replaces.
	Match any `yaml:"match,omitempty"`

	// Columns lists column names for insert and drop_columns, or column
	// definitions for add_columns.
	Columns []string `yaml:"columns,omitempty"`

	// Values are the rows insert adds.
	Values [][]any `yaml:"values,omitempty"`

	// ExpectError makes the step pass only if it fails. A sqlnav error code
	// such as COLUMN_NOT_FOUND must match exactly; "any" accepts every error.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Check validates the final database state.
type Check struct {
	Table string `yaml:"table"`
	Where string `yaml:"where,omitempty"`

	// Project names the column whose matched values must equal Expect, in
	// order.
	Project string `yaml:"project,omitempty"`
	Expect  []any  `yaml:"expect,omitempty"`

	// Count is the expected number of matched rows.
	Count *int64 `yaml:"count,omitempty"`
}

// Step operations.
const (
	OpDelete      = "delete"
	OpSet         = "set"
	OpOverwrite   = "overwrite"
	OpInsert      = "insert"
	OpAddColumns  = "add_columns"
	OpDropColumns = "drop_columns"
)

// ExpectAnyError accepts any step failure.
const ExpectAnyError = "any"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, "")
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving a relative schema path against basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Schema != "" && !filepath.IsAbs(scenario.Schema) && basePath != "" {
		scenario.Schema = filepath.Join(basePath, scenario.Schema)
	}
	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "check:" vs "checks:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Checks) == 0 {
		return fmt.Errorf("checks list is required and must be non-empty")
	}

	if err := schemafile.Validate(s.Tables); err != nil {
		return err
	}

	for i, rs := range s.Rows {
		if rs.Table == "" {
			return fmt.Errorf("rows[%d]: table is required", i)
		}
		if len(rs.Columns) == 0 {
			return fmt.Errorf("rows[%d]: columns is required", i)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, check := range s.Checks {
		if check.Table == "" {
			return fmt.Errorf("checks[%d]: table is required", i)
		}
		hasProject := check.Project != ""
		hasCount := check.Count != nil
		if hasProject == hasCount {
			return fmt.Errorf("checks[%d]: exactly one of project or count is required", i)
		}
		if !hasProject && check.Expect != nil {
			return fmt.Errorf("checks[%d]: expect requires project", i)
		}
	}

	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, s *Step) error {
	if s.Op == "" {
		return fmt.Errorf("steps[%d]: op is required", index)
	}
	if s.Table == "" {
		return fmt.Errorf("steps[%d]: table is required", index)
	}

	switch s.Op {
	case OpDelete:
	case OpSet:
		if s.Column == "" {
			return fmt.Errorf("steps[%d]: column is required for set", index)
		}
		if s.Expr != "" && s.Value != nil {
			return fmt.Errorf("steps[%d]: set takes value or expr, not both", index)
		}
	case OpOverwrite:
		if s.Column == "" {
			return fmt.Errorf("steps[%d]: column is required for overwrite", index)
		}
	case OpInsert:
		if len(s.Columns) == 0 {
			return fmt.Errorf("steps[%d]: columns is required for insert", index)
		}
		if len(s.Values) == 0 {
			return fmt.Errorf("steps[%d]: values is required for insert", index)
		}
	case OpAddColumns, OpDropColumns:
		if len(s.Columns) == 0 {
			return fmt.Errorf("steps[%d]: columns is required for %s", index, s.Op)
		}
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, s.Op)
	}

	return nil
}
