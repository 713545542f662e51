package expr

import (
	"fmt"
	"io"

	"github.com/crillab/gophersat/bf"
)

// Formula returns the gophersat formula equivalent to e.
func Formula(e Expr) bf.Formula {
	switch e := e.(type) {
	case Literal:
		if e {
			return bf.True
		}
		return bf.False
	case Variable:
		return bf.Var(e.String())
	case Negation:
		return bf.Not(Formula(e.X))
	case Binary:
		if e.Op == AndOp {
			return bf.And(Formula(e.Left), Formula(e.Right))
		}
		return bf.Or(Formula(e.Left), Formula(e.Right))
	default:
		panic("invalid formula type")
	}
}

// Solve looks for an assignment of the variables of e that makes it true.
// The returned assignment binds every variable of e, or is nil if e is unsatisfiable.
// e is simplified first; formulas that reduce to a constant never reach the solver.
func Solve(e Expr) Assignment {
	s := Simplify(e)
	res := make(Assignment)
	for _, v := range Vars(e) {
		res[v] = false // Default value for variables the model does not constrain
	}
	if l, ok := s.(Literal); ok {
		if !l {
			return nil
		}
		return res
	}
	model := asCnf(s).solve()
	if model == nil {
		return nil
	}
	for v, b := range model {
		res[v] = b
	}
	return res
}

// Satisfiable indicates whether at least one assignment makes e true.
func Satisfiable(e Expr) bool {
	return Solve(e) != nil
}

// Tautology indicates whether every assignment makes e true.
func Tautology(e Expr) bool {
	return Solve(Not(e)) == nil
}

// Dimacs writes the DIMACS CNF version of e on w, once simplified.
// Variable names are associated with their DIMACS indices in comment lines,
// between the prolog and the set of clauses.
// Formulas that reduce to a constant are written as a single fresh variable forced to that constant.
func Dimacs(e Expr, w io.Writer) error {
	if err := asCnf(Simplify(e)).dimacs(w); err != nil {
		return fmt.Errorf("could not write %s as DIMACS: %w", e, err)
	}
	return nil
}
