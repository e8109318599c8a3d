package wherelang

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var whereLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(?:AND|OR|NULL|TRUE|FALSE)\b`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `'(?:[^']|'')*'`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Operator", Pattern: `!=|<>|>=|<=|[=<>+\-*/]`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// orExpr is the grammar root. Precedence climbs from OR down to primary.
type orExpr struct {
	Pos   lexer.Position
	Left  *andExpr   `@@`
	Right []*andExpr `( "OR" @@ )*`
}

type andExpr struct {
	Left  *cmpExpr   `@@`
	Right []*cmpExpr `( "AND" @@ )*`
}

type cmpExpr struct {
	Left  *addExpr `@@`
	Op    string   `( @( "=" | "!=" | "<>" | ">=" | "<=" | ">" | "<" )`
	Right *addExpr `  @@ )?`
}

type addExpr struct {
	Left *mulExpr `@@`
	Rest []*addOp `@@*`
}

type addOp struct {
	Op    string   `@( "+" | "-" )`
	Right *mulExpr `@@`
}

type mulExpr struct {
	Left *primary `@@`
	Rest []*mulOp `@@*`
}

type mulOp struct {
	Op    string   `@( "*" | "/" )`
	Right *primary `@@`
}

type primary struct {
	Pos    lexer.Position
	Number *number `  @@`
	String string  `| @String`
	Null   bool    `| @"NULL"`
	Bool   string  `| @( "TRUE" | "FALSE" )`
	Column string  `| @Ident`
	Sub    *orExpr `| "(" @@ ")"`
}

type number struct {
	Neg   bool   `@"-"?`
	Float string `( @Float`
	Int   string `| @Int )`
}

var parser = participle.MustBuild[orExpr](
	participle.Lexer(whereLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Keyword"),
	participle.UseLookahead(2),
)
