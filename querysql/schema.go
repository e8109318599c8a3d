package querysql

import (
	"fmt"
	"strings"
)

// CreateTable returns the CREATE TABLE statement for the given column
// definitions. Each definition is a full "name type [constraints]" fragment
// and is passed through verbatim.
func CreateTable(table string, defs []string) (string, error) {
	if len(defs) == 0 {
		return "", fmt.Errorf("create table %s: at least one column definition is required", table)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", table)
	for i, def := range defs {
		b.WriteString("    ")
		b.WriteString(def)
		if i < len(defs)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")

	return b.String(), nil
}

// DropTable returns DROP TABLE <table>. Fails at execution if the table
// does not exist.
func DropTable(table string) string {
	return fmt.Sprintf("DROP TABLE %s", table)
}

// DropTableIfExists returns DROP TABLE IF EXISTS <table>.
func DropTableIfExists(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

// AddColumn returns ALTER TABLE <table> ADD COLUMN <def>.
func AddColumn(table, def string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, def)
}

// DropColumn returns ALTER TABLE <table> DROP COLUMN <column>.
func DropColumn(table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, column)
}

// ListTables returns the query listing user tables in creation order.
// SQLite's internal sqlite_* tables are excluded.
func ListTables() string {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite\\_%' ESCAPE '\\' ORDER BY rowid"
}

// TableExists returns the existence query for one table name.
func TableExists(table string) (string, []any) {
	return "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = " + Placeholder + " COLLATE NOCASE", []any{table}
}

// ListColumns returns the query listing a table's columns in declaration
// order. An unknown table yields zero rows.
func ListColumns(table string) (string, []any) {
	return "SELECT name FROM pragma_table_info(" + Placeholder + ") ORDER BY cid", []any{table}
}
