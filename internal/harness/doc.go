// Package harness runs YAML database scenarios through sqlnav.
//
// A scenario creates tables, seeds rows, applies a list of steps and then
// evaluates checks against the result:
//
//	name: bulk_delete
//	description: deleting matched rows leaves the rest
//	tables:
//	  - name: t
//	    columns: [a INTEGER]
//	rows:
//	  - table: t
//	    columns: [a]
//	    values: [[1], [2], [3]]
//	steps:
//	  - op: delete
//	    table: t
//	    where: a > 1
//	checks:
//	  - table: t
//	    project: a
//	    expect: [1]
//
// Conditions use the where language from internal/wherelang. Each run gets
// its own in-memory database, so scenarios never see each other's tables.
//
// # Golden Files
//
// RunWithGolden compares the rendered final state of every table against
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
