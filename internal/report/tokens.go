package report

import (
	"fmt"
	"strings"

	participlelexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/whileabs/whileabs/internal/syntax"
)

// Tokens lexes src and renders one "Type(lexeme)@line:col" line per token,
// the -t flag's raw token stream.
func Tokens(filename, src string) (string, error) {
	lex, err := syntax.Lexer.Lex(filename, strings.NewReader(src))
	if err != nil {
		return "", err
	}
	tokens, err := participlelexer.ConsumeAll(lex)
	if err != nil {
		return "", err
	}

	names := make(map[participlelexer.TokenType]string, len(syntax.Lexer.Symbols()))
	for name, tt := range syntax.Lexer.Symbols() {
		names[tt] = name
	}

	var b strings.Builder
	for _, tok := range tokens {
		if tok.EOF() {
			continue
		}
		name := names[tok.Type]
		if name == "" {
			name = "?"
		}
		fmt.Fprintf(&b, "%s(%s)@%d:%d\n", name, tok.Value, tok.Pos.Line, tok.Pos.Column)
	}
	return b.String(), nil
}
