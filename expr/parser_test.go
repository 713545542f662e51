package expr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// To each formula, associate its expected rendering.
var exprToRendering = map[string]string{
	"T":             "T",
	"F":             "F",
	"a":             "a",
	"-a":            "¬(a)",
	"¬a":            "¬(a)",
	"-(-a)":         "¬(¬(a))",
	"(a)":           "a",
	"((a))":         "a",
	"a ^ T":         "(a ^ T)",
	"a v b":         "(a v b)",
	"a^b":           "(a ^ b)",
	"a ^ b v c":     "(a ^ (b v c))",
	"a v b ^ c":     "(a v (b ^ c))",
	"(a v b) ^ c":   "((a v b) ^ c)",
	"a v (b ^ c)":   "(a v (b ^ c))",
	"-a ^ b":        "(¬(a) ^ b)",
	"-(a ^ b)":      "¬((a ^ b))",
	"  x  ^  -F  ":  "(x ^ ¬(F))",
	"a ^ b ^ c ^ d": "(a ^ (b ^ (c ^ d)))",
}

func TestParse(t *testing.T) {
	for text, expected := range exprToRendering {
		e, err := Parse(text)
		if assert.NoError(t, err, "could not parse %q", text) {
			assert.Equal(t, expected, Render(e), "for expression %q", text)
		}
	}
}

func TestParseStructure(t *testing.T) {
	tests := []struct {
		text string
		want Expr
	}{
		{"T", True},
		{"a ^ T", And(Var('a'), True)},
		{"-a", Not(Var('a'))},
		{"(a v b) ^ c", And(Or(Var('a'), Var('b')), Var('c'))},
		{"a v (b ^ c)", Or(Var('a'), And(Var('b'), Var('c')))},
		{"a ^ b v c", And(Var('a'), Or(Var('b'), Var('c')))},
		{"-(a) ^ -F", And(Not(Var('a')), Not(False))},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Parse(tt.text)
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "wanted %s, got %s", tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		text string
		msg  string
	}{
		{"", "unexpected end of input, expected a term"},
		{"a ^", "unexpected end of input, expected a term"},
		{"-", "unexpected end of input, expected a term"},
		{"a ^^ b", "unexpected token '^', expected a term"},
		{"^ a", "unexpected token '^', expected a term"},
		{"--a", "unexpected token '-', expected a term"},
		{")", "unexpected token ')', expected a term"},
		{"(a", "expected ')', found end of input"},
		{"(a b)", "expected ')', found 'b'"},
		{"(a (b))", "expected ')', found '('"},
		{"a b", "expected end of input, found 'b'"},
		{"(a))", "expected end of input, found ')'"},
		{"a T", "expected end of input, found 'T'"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := Parse(tt.text)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected a parse error, got %v", err)
			assert.Equal(t, tt.msg, perr.Error())
		})
	}
}

func TestParseLexErrors(t *testing.T) {
	tests := []struct {
		text string
		char rune
	}{
		{"a & b", '&'},
		{"A", 'A'},
		{"a\tb", '\t'},
		{"a ^ 1", '1'},
		{"x | (y", '|'},
	}
	for _, tt := range tests {
		_, err := Parse(tt.text)
		var lerr *LexError
		if assert.True(t, errors.As(err, &lerr), "for %q, expected a lex error, got %v", tt.text, err) {
			assert.Equal(t, tt.char, lerr.Char)
		}
	}
}

func TestTokenizeStopsAtFirstError(t *testing.T) {
	tokens, err := tokenize("a ^ # ^ $")
	assert.Nil(t, tokens)
	assert.EqualError(t, err, "unexpected character '#'")
}

func TestTokenizePriority(t *testing.T) {
	tokens, err := tokenize("Tv-(u)")
	require.NoError(t, err)
	kinds := make([]tokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.kind
	}
	assert.Equal(t, []tokenKind{litToken, binOpToken, notToken, parenToken, varToken, parenToken}, kinds)
}

func TestRoundTrip(t *testing.T) {
	gen := newGenerator(42)
	for i := 0; i < 500; i++ {
		e := gen.expr(5)
		got, err := Parse(Render(e))
		if assert.NoError(t, err, "could not parse rendering %q", Render(e)) {
			assert.True(t, Equal(e, got), "round trip changed %s into %s", e, got)
		}
	}
}

func ExampleParse() {
	e, err := Parse("a ^ b v c")
	if err != nil {
		fmt.Printf("Could not parse expression: %v", err)
		return
	}
	fmt.Println(e)
	// Output: (a ^ (b v c))
}

func ExampleParse_error() {
	_, err := Parse("a ^^ b")
	fmt.Println(err)
	// Output: unexpected token '^', expected a term
}
