package domain

import "fmt"

// ParseError reports a malformed domain literal (e.g. in --state strings).
type ParseError struct {
	Domain string
	Input  string
	Want   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s literal %q, expected %s", e.Domain, e.Input, e.Want)
}

func malformedLiteral(domain, input, want string) error {
	return &ParseError{Domain: domain, Input: input, Want: want}
}
