package syntax

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes WHILE source. Keywords (skip, if, and, ++, etc.) are not
// distinct token types — they're lexed as Ident/Operator tokens and matched
// by literal string in the grammar, the same split the token stream uses
// elsewhere in this family of grammars.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// Keywords and identifiers (order matters: Ident must not eat digits-first)
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Integer literals
		{"Integer", `[0-9]+`, nil},

		// Operators (multi-character alternatives first so the longest one wins)
		{"Operator", `(:=|\+=|-=|\*=|==|!=|<=|>=|\+\+|--|[-+*/<>])`, nil},

		// Punctuation (must come after operators)
		{"Punctuation", `[{}()\[\],;]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
