// ==============================================================================================
// FILE: token/token.go
// ==============================================================================================
// PACKAGE: token
// PURPOSE: Defines the lexical vocabulary of the language: token kinds,
//          their spans, and the tagged literal payload a token may carry.
// ==============================================================================================

package token

import "eloq/position"

// Kind enumerates the lexical categories. A single KEYWORD kind carries the
// actual reserved word in its Literal string rather than minting one Kind
// per keyword spelling — the parser switches on that string.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	INT
	FLOAT
	STRING
	IDENTIFIER
	KEYWORD

	EQUAL // '='
	PLUS
	MINUS
	MULTIPLY
	DIVIDE
	FLOORDIVIDE
	MODULO
	POWER

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LSQUARE
	RSQUARE

	NEWLINE
	COLON
	COMMA
	INDEX // '?'

	EE // '=='
	NE // '!='
	LT
	LTE
	GT
	GTE
)

var names = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	INT: "INT", FLOAT: "FLOAT", STRING: "STRING", IDENTIFIER: "IDENTIFIER", KEYWORD: "KEYWORD",
	EQUAL: "EQUAL", PLUS: "PLUS", MINUS: "MINUS", MULTIPLY: "MULTIPLY", DIVIDE: "DIVIDE",
	FLOORDIVIDE: "FLOORDIVIDE", MODULO: "MODULO", POWER: "POWER",
	LPAREN: "LPAREN", RPAREN: "RPAREN", LBRACE: "LBRACE", RBRACE: "RBRACE",
	LSQUARE: "LSQUARE", RSQUARE: "RSQUARE",
	NEWLINE: "NEWLINE", COLON: "COLON", COMMA: "COMMA", INDEX: "INDEX",
	EE: "EE", NE: "NE", LT: "LT", LTE: "LTE", GT: "GT", GTE: "GTE",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Keywords is the fixed reserved-word set recognised by the lexer. `to` and
// `leap` are kept reserved even though the grammar in §4.2 never consumes
// them, so a future break/continue/range addition needs no lexer change.
var Keywords = map[string]bool{
	"take": true, "and": true, "or": true, "not": true,
	"whether": true, "further": true, "ifnot": true,
	"StartCycle": true, "to": true, "leap": true,
	"AsLongAs": true, "Method": true,
}

// LiteralKind tags which field of Literal is populated.
type LiteralKind int

const (
	LitNone LiteralKind = iota
	LitInt
	LitFloat
	LitString
)

// Literal is the tagged-variant payload a Token may carry: none, a
// machine-sized integer, a double, or a string (identifiers, keywords, and
// string literals all carry their text this way).
type Literal struct {
	Kind LiteralKind
	Int  int64
	Flt  float64
	Str  string
}

func NoLiteral() Literal             { return Literal{Kind: LitNone} }
func IntLiteral(v int64) Literal     { return Literal{Kind: LitInt, Int: v} }
func FloatLiteral(v float64) Literal { return Literal{Kind: LitFloat, Flt: v} }
func StringLiteral(v string) Literal { return Literal{Kind: LitString, Str: v} }

// Token is a single lexical unit produced by the lexer and consumed by the
// parser: a kind, an optional literal payload, and the span it was read
// from.
type Token struct {
	Kind    Kind
	Literal Literal
	Start   position.Position
	End     position.Position
}

// Is reports whether the token has the given Kind.
func (t Token) Is(kind Kind) bool { return t.Kind == kind }

// IsKeyword reports whether the token is the KEYWORD with the given
// spelling, e.g. tok.IsKeyword("whether").
func (t Token) IsKeyword(word string) bool {
	return t.Kind == KEYWORD && t.Literal.Str == word
}

func (t Token) String() string {
	if t.Literal.Kind == LitString {
		return t.Kind.String() + ":" + t.Literal.Str
	}
	return t.Kind.String()
}
