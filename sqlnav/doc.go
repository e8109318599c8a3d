// Package sqlnav navigates a relational database through lazy views.
//
// A Database wraps a connection. From it come Table views, from a Table
// come Column views, and from a Column or a condition tree come RowMatchers.
// None of these cache results: every read or write compiles a statement
// with querysql and runs it against the connection, so results always
// reflect the current state of the database.
//
//	db := sqlnav.New(conn)
//	users, err := db.Table(ctx, "users")
//	age := users.Column("age")
//	adults, err := users.Where(age.Ge(18))
//	names, err := adults.Project(ctx, "name")
//	err = adults.Set(ctx, "age", age.Add(1))
//
// Views check existence when used, not when created: a Column may be named
// before it is added, and a Table view may outlive the table. Missing
// tables and columns are reported as *Error values; see IsLookupError and
// IsConstructionError. Errors from the engine itself are returned as the
// driver produced them.
//
// Values are always bound as parameters. Table names, column names and
// column definitions are spliced into statements verbatim and must come
// from trusted sources.
package sqlnav
