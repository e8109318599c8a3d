package harness

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/sqlnav/sqlnav"
)

// AssertionError is returned when a check fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Index    int    // Position of the check in the scenario
	Table    string // Table the check ran against
	Where    string // Condition, empty for every row
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	where := e.Where
	if where == "" {
		where = "all rows"
	}
	fmt.Fprintf(&buf, "check[%d] failed on %s (%s)\n", e.Index, e.Table, where)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)

	return buf.String()
}

// EvaluateChecks evaluates every check against the current database.
// Returns a slice of error messages for failed checks.
func EvaluateChecks(ctx context.Context, db *sqlnav.Database, checks []Check) []string {
	var errors []string

	for i, check := range checks {
		if err := evaluateCheck(ctx, db, i, check); err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func evaluateCheck(ctx context.Context, db *sqlnav.Database, index int, check Check) error {
	fail := func(expected, actual string) error {
		return &AssertionError{
			Index:    index,
			Table:    check.Table,
			Where:    check.Where,
			Expected: expected,
			Actual:   actual,
		}
	}

	tbl, err := db.Table(ctx, check.Table)
	if err != nil {
		return fail("table exists", err.Error())
	}
	m, err := matcher(tbl, check.Where)
	if err != nil {
		return fail("valid condition", err.Error())
	}

	if check.Count != nil {
		n, err := m.Count(ctx)
		if err != nil {
			return fail(fmt.Sprintf("%d rows", *check.Count), err.Error())
		}
		if n != *check.Count {
			return fail(fmt.Sprintf("%d rows", *check.Count), fmt.Sprintf("%d rows", n))
		}
		return nil
	}

	got, err := m.Project(ctx, check.Project)
	if err != nil {
		return fail(fmt.Sprintf("%s = %v", check.Project, check.Expect), err.Error())
	}
	if !columnValuesEqual(check.Expect, got) {
		return fail(fmt.Sprintf("%s = %v", check.Project, formatValues(check.Expect)),
			fmt.Sprintf("%s = %v", check.Project, formatValues(got)))
	}
	return nil
}

// columnValuesEqual compares expected values from YAML with values the
// driver returned, in order.
func columnValuesEqual(expected, actual []any) bool {
	if len(expected) != len(actual) {
		return false
	}
	for i := range expected {
		if !stateValuesEqual(expected[i], actual[i]) {
			return false
		}
	}
	return true
}

// stateValuesEqual compares one expected and actual value.
// Handles type coercion for SQLite values which may be returned as different types.
func stateValuesEqual(expected, actual any) bool {
	if expected == nil || actual == nil {
		return expected == nil && actual == nil
	}

	if b, ok := actual.([]byte); ok {
		actual = string(b)
	}

	switch exp := expected.(type) {
	case string:
		act, ok := actual.(string)
		return ok && exp == act
	case int:
		return intEquals(int64(exp), actual)
	case int64:
		return intEquals(exp, actual)
	case float64:
		switch act := actual.(type) {
		case float64:
			return exp == act
		case int64:
			return exp == float64(act)
		}
		return false
	case bool:
		// SQLite stores booleans as integers
		if act, ok := actual.(int64); ok {
			return exp == (act != 0)
		}
		act, ok := actual.(bool)
		return ok && exp == act
	}

	return reflect.DeepEqual(expected, actual)
}

func intEquals(exp int64, actual any) bool {
	switch act := actual.(type) {
	case int64:
		return exp == act
	case int:
		return exp == int64(act)
	case float64:
		return float64(exp) == act
	}
	return false
}

func formatValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case nil:
			parts[i] = "NULL"
		case string:
			parts[i] = fmt.Sprintf("%q", v)
		case []byte:
			parts[i] = fmt.Sprintf("%q", string(v))
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
