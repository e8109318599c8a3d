// Package schemafile loads table definitions from CUE or YAML files.
//
// Both formats share one shape:
//
//	tables: [
//		{name: "users", columns: ["id INTEGER PRIMARY KEY", "name TEXT"]},
//	]
//
// CUE files are unified with the #File definition in schema.cue, so a
// misspelled field or an empty column list is rejected with a position.
// Column definitions are passed to the engine verbatim.
package schemafile

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/sqlnav/sqlnav"
)

//go:embed schema.cue
var schemaSource string

// TableDef is one table to create.
type TableDef struct {
	Name    string   `json:"name" yaml:"name"`
	Columns []string `json:"columns" yaml:"columns"`
}

// File is the decoded contents of a schema file.
type File struct {
	Tables []TableDef `json:"tables" yaml:"tables"`
}

// Load reads a schema file, choosing the format from its extension.
func Load(path string) ([]TableDef, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: err.Error()}
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return ParseCUE(path, src)
	case ".yaml", ".yml":
		return ParseYAML(src)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported schema file extension %q (want .cue, .yaml or .yml)", ext),
		}
	}
}

// ParseCUE decodes CUE source against the #File definition.
func ParseCUE(filename string, src []byte) ([]TableDef, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, cueError(ErrCodeInvalid, err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, cueError(ErrCodeParseFailed, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#File")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(ErrCodeInvalid, err)
	}

	var file File
	if err := unified.Decode(&file); err != nil {
		return nil, cueError(ErrCodeInvalid, err)
	}
	return file.Tables, nil
}

// ParseYAML decodes YAML source and checks it the way #File would.
func ParseYAML(src []byte) ([]TableDef, error) {
	var file File
	if err := yaml.Unmarshal(src, &file); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error()}
	}
	if err := Validate(file.Tables); err != nil {
		return nil, err
	}
	return file.Tables, nil
}

// Validate checks that every definition has a name and at least one
// non-empty column.
func Validate(defs []TableDef) error {
	for i, def := range defs {
		if def.Name == "" {
			return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("tables[%d]: name is required", i)}
		}
		if len(def.Columns) == 0 {
			return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("tables[%d] (%s): at least one column is required", i, def.Name)}
		}
		for j, col := range def.Columns {
			if strings.TrimSpace(col) == "" {
				return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("tables[%d] (%s): columns[%d] is empty", i, def.Name, j)}
			}
		}
	}
	return nil
}

// Apply creates every table in file order, replacing tables that already
// exist. Tables created before a failing one remain; wrap db in a
// transaction to make the whole file atomic.
func Apply(ctx context.Context, db *sqlnav.Database, defs []TableDef) error {
	for _, def := range defs {
		if _, err := db.CreateTable(ctx, def.Name, def.Columns...); err != nil {
			return fmt.Errorf("create table %s: %w", def.Name, err)
		}
	}
	return nil
}
