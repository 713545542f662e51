package expr

import "fmt"

type tokenKind int

const (
	binOpToken tokenKind = iota
	notToken
	litToken
	varToken
	parenToken
)

// A token is a lexical unit of a formula.
// char is the operator, variable name or bracket; val is only meaningful for literals.
type token struct {
	kind tokenKind
	char rune
	val  bool
}

func (t token) String() string {
	if t.kind == litToken {
		return Literal(t.val).String()
	}
	return string(t.char)
}

// A LexError is returned when a formula contains a character outside of the alphabet.
type LexError struct {
	Char rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q", e.Char)
}

// tokenize splits text into tokens. It stops at the first invalid character.
func tokenize(text string) ([]token, error) {
	var res []token
	for _, c := range text {
		switch {
		case c == 'T' || c == 'F':
			res = append(res, token{kind: litToken, char: c, val: c == 'T'})
		case c == '^' || c == 'v':
			res = append(res, token{kind: binOpToken, char: c})
		case c == '-' || c == '¬':
			res = append(res, token{kind: notToken, char: c})
		case c == '(' || c == ')':
			res = append(res, token{kind: parenToken, char: c})
		case c == ' ':
		case validName(c):
			res = append(res, token{kind: varToken, char: c})
		default:
			return nil, &LexError{Char: c}
		}
	}
	return res, nil
}
