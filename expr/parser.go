package expr

import "fmt"

// A ParseError is returned when a sequence of tokens does not match the grammar.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}

func parseErrorf(format string, args ...interface{}) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// Parse parses the formula written in text.
// It returns the corresponding Expr.
// Formulas follow this grammar:
//
//	expression := term ( ('^' | 'v') expression )?
//	term       := '-' factor | factor
//	factor     := 'T' | 'F' | variable | '(' expression ')'
//
// The returned error is either a *LexError or a *ParseError.
func Parse(text string) (Expr, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	e, next, err := parseExpression(tokens, 0)
	if err != nil {
		return nil, err
	}
	if next != len(tokens) {
		return nil, parseErrorf("expected end of input, found '%s'", tokens[next])
	}
	return e, nil
}

// Each parse function reads tokens from position pos and returns the parsed subformula
// along with the position of the first token it did not consume.

func parseExpression(tokens []token, pos int) (Expr, int, error) {
	lhs, next, err := parseTerm(tokens, pos)
	if err != nil {
		return nil, 0, err
	}
	if next == len(tokens) || tokens[next].kind != binOpToken {
		return lhs, next, nil
	}
	op := tokens[next].char
	rhs, next, err := parseExpression(tokens, next+1)
	if err != nil {
		return nil, 0, err
	}
	if op == '^' {
		return And(lhs, rhs), next, nil
	}
	return Or(lhs, rhs), next, nil
}

func parseTerm(tokens []token, pos int) (Expr, int, error) {
	if pos < len(tokens) && tokens[pos].kind == notToken {
		f, next, err := parseFactor(tokens, pos+1)
		if err != nil {
			return nil, 0, err
		}
		return Not(f), next, nil
	}
	return parseFactor(tokens, pos)
}

func parseFactor(tokens []token, pos int) (Expr, int, error) {
	if pos == len(tokens) {
		return nil, 0, parseErrorf("unexpected end of input, expected a term")
	}
	tok := tokens[pos]
	switch {
	case tok.kind == litToken:
		return Lit(tok.val), pos + 1, nil
	case tok.kind == varToken:
		return Var(tok.char), pos + 1, nil
	case tok.kind == parenToken && tok.char == '(':
		e, next, err := parseExpression(tokens, pos+1)
		if err != nil {
			return nil, 0, err
		}
		if next == len(tokens) {
			return nil, 0, parseErrorf("expected ')', found end of input")
		}
		if closing := tokens[next]; closing.kind != parenToken || closing.char != ')' {
			return nil, 0, parseErrorf("expected ')', found '%s'", closing)
		}
		return e, next + 1, nil
	default:
		return nil, 0, parseErrorf("unexpected token '%s', expected a term", tok)
	}
}
