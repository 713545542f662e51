package expr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/crillab/gophersat/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	tests := []struct {
		text string
		sat  bool
	}{
		{"T", true},
		{"F", false},
		{"a", true},
		{"a ^ -a", false},
		{"a v -a", true},
		{"(a v b) ^ -a ^ -b", false},
		{"(a v b) ^ (-a v c) ^ -c", true},
		{"a ^ F", false},
		{"x v T", true},
		{"(e v (a ^ (d v (b ^ c)))) ^ -c ^ -d", true},
		{"(e v (a ^ (d v (b ^ c)))) ^ -c ^ -d ^ -e", false},
		{"(a ^ (b v (c ^ (d v e)))) v (f ^ -f)", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			e, err := Parse(tt.text)
			require.NoError(t, err)
			model := Solve(e)
			if !tt.sat {
				assert.Nil(t, model)
				return
			}
			require.NotNil(t, model)
			assert.Len(t, model, len(Vars(e)))
			assert.Equal(t, True, Evaluate(e, model), "model %v does not satisfy %s", model, e)
		})
	}
}

// The solver must agree with an exhaustive search, including on deeply nested formulas.
func TestSolveAgreesWithTruthTable(t *testing.T) {
	gen := newGenerator(4)
	for i := 0; i < 3000; i++ {
		e := gen.expr(7)
		var sat, taut = false, true
		allAssignments(Vars(e), func(a Assignment) {
			v := truth(e, a)
			sat = sat || v
			taut = taut && v
		})
		model := Solve(e)
		assert.Equal(t, sat, model != nil, "satisfiability of %s", e)
		if model != nil {
			assert.True(t, truth(e, model), "model %v does not satisfy %s", model, e)
		}
		assert.Equal(t, sat, Satisfiable(e), "satisfiability of %s", e)
		assert.Equal(t, taut, Tautology(e), "validity of %s", e)
		var buf bytes.Buffer
		require.NoError(t, Dimacs(e, &buf))
		assert.Equal(t, sat, solveDimacs(t, buf.String()), "satisfiability of DIMACS output for %s", e)
	}
}

// solveDimacs reads a DIMACS CNF and gives it to gophersat.
func solveDimacs(t *testing.T, text string) bool {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var nbVars, nbClauses int
	_, err := fmt.Sscanf(lines[0], "p cnf %d %d", &nbVars, &nbClauses)
	require.NoError(t, err, "invalid prolog %q", lines[0])
	var clauses [][]int
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, "c ") {
			continue
		}
		fields := strings.Fields(line)
		require.NotEmpty(t, fields)
		require.Equal(t, "0", fields[len(fields)-1], "clause %q is not terminated", line)
		clause := make([]int, len(fields)-1)
		for i, f := range fields[:len(fields)-1] {
			lit, err := strconv.Atoi(f)
			require.NoError(t, err)
			require.True(t, lit != 0 && lit <= nbVars && -lit <= nbVars, "invalid literal %d", lit)
			clause[i] = lit
		}
		clauses = append(clauses, clause)
	}
	require.Len(t, clauses, nbClauses)
	return solver.New(solver.ParseSlice(clauses)).Solve() == solver.Sat
}

func TestTautology(t *testing.T) {
	for text, want := range map[string]bool{
		"a v -a":                                           true,
		"-(a ^ -a)":                                        true,
		"a v b":                                            false,
		"T":                                                true,
		"(a ^ b) v -a v -b":                                true,
		"(a ^ b) v (-a ^ b)":                               false,
		"-((e v (a ^ (d v (b ^ c)))) ^ -c ^ -d)":           false,
		"(a ^ (b v (c ^ d))) v -a v (-b ^ -c) v (-b ^ -d)": true,
	} {
		e, err := Parse(text)
		require.NoError(t, err)
		assert.Equal(t, want, Tautology(e), "for %q", text)
	}
}

func TestFormula(t *testing.T) {
	e := And(Or(Var('a'), Not(Var('b'))), Not(Var('c')))
	assert.Equal(t, "and(or(a, not(b)), not(c))", Formula(e).String())
	assert.Equal(t, "⊤", Formula(True).String())
	assert.Equal(t, "⊥", Formula(False).String())
}

func TestDimacs(t *testing.T) {
	var buf bytes.Buffer
	e, err := Parse("(a v b) ^ -a")
	require.NoError(t, err)
	require.NoError(t, Dimacs(e, &buf))
	const expected = `p cnf 4 7
c a=1
c b=2
-3 1 2 0
3 -1 0
3 -2 0
-4 3 0
-4 -1 0
4 -3 1 0
4 0
`
	assert.Equal(t, expected, buf.String())
}

func TestDimacsConstants(t *testing.T) {
	for text, sat := range map[string]bool{"F": false, "T": true, "a ^ F": false, "-(a ^ F)": true} {
		e, err := Parse(text)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, Dimacs(e, &buf))
		assert.True(t, strings.HasPrefix(buf.String(), "p cnf 1 2\n"), "for %q, got %q", text, buf.String())
		assert.Equal(t, sat, solveDimacs(t, buf.String()), "for %q", text)
	}
}

func ExampleSolve() {
	e, _ := Parse("(a v b) ^ -a")
	model := Solve(e)
	if model != nil {
		fmt.Printf("Problem is satisfiable: a=%t, b=%t", model['a'], model['b'])
	} else {
		fmt.Printf("Problem is unsatisfiable")
	}
	// Output: Problem is satisfiable: a=false, b=true
}
