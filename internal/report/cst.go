package report

import (
	"fmt"

	"github.com/whileabs/whileabs/internal/syntax"
)

// RawCST parses src and renders the participle-parsed struct tree with %#v,
// the -c flag.
func RawCST(filename, src string) (string, error) {
	cst, err := syntax.ParseCST(filename, src)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%#v\n", cst), nil
}

// PrettyCST parses src and reconstructs surface source from the CST,
// sugar preserved — the -C flag, and the parse/pretty-print round trip.
func PrettyCST(filename, src string) (string, error) {
	cst, err := syntax.ParseCST(filename, src)
	if err != nil {
		return "", err
	}
	return cst.Pretty(), nil
}
