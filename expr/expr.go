package expr

import (
	"fmt"
	"sort"
)

// An Expr is a boolean formula.
// The only implementations are Literal, Variable, Negation and Binary.
// Values are never modified once built: every transformation returns a new tree.
type Expr interface {
	String() string
	isExpr()
}

// A Literal is either the true or the false constant.
type Literal bool

// True and False are the two constants.
var (
	True  Expr = Literal(true)
	False Expr = Literal(false)
)

// Lit returns the constant associated with b.
func Lit(b bool) Expr {
	return Literal(b)
}

func (l Literal) isExpr() {}

func (l Literal) String() string {
	if l {
		return "T"
	}
	return "F"
}

// A Variable is a boolean unknown, named by a lowercase letter.
type Variable rune

// Var generates a named boolean variable in a formula.
// It panics if name is not a lowercase ASCII letter.
func Var(name rune) Expr {
	if !validName(name) {
		panic(fmt.Errorf("invalid variable name %q", name))
	}
	return Variable(name)
}

func validName(name rune) bool {
	return name >= 'a' && name <= 'z'
}

func (v Variable) isExpr() {}

func (v Variable) String() string {
	return string(rune(v))
}

// A Negation is the negation of its subformula.
type Negation struct {
	X Expr
}

// Not represents a negation. It negates the given subformula.
func Not(x Expr) Expr {
	return Negation{X: x}
}

func (n Negation) isExpr() {}

func (n Negation) String() string {
	return "¬(" + n.X.String() + ")"
}

// Operator is the connector of a Binary formula.
type Operator int

const (
	// AndOp is the conjunction.
	AndOp Operator = iota
	// OrOp is the disjunction.
	OrOp
)

// Symbol returns the textual symbol of the operator.
func (op Operator) Symbol() string {
	switch op {
	case AndOp:
		return "^"
	case OrOp:
		return "v"
	default:
		panic("invalid operator")
	}
}

func (op Operator) String() string {
	switch op {
	case AndOp:
		return "and"
	case OrOp:
		return "or"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

// A Binary is a conjunction or a disjunction of two subformulas.
type Binary struct {
	Op          Operator
	Left, Right Expr
}

// And generates the conjunction of l and r.
func And(l, r Expr) Expr {
	return Binary{Op: AndOp, Left: l, Right: r}
}

// Or generates the disjunction of l and r.
func Or(l, r Expr) Expr {
	return Binary{Op: OrOp, Left: l, Right: r}
}

func (b Binary) isExpr() {}

func (b Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.Symbol() + " " + b.Right.String() + ")"
}

// Render returns the canonical, fully parenthesized form of e.
// The result can always be given back to Parse.
func Render(e Expr) string {
	return e.String()
}

// Equal indicates whether a and b have the same shape, the same operators and the same leaves.
// Equivalent but structurally different formulas are not equal.
func Equal(a, b Expr) bool {
	switch a := a.(type) {
	case Literal:
		b, ok := b.(Literal)
		return ok && a == b
	case Variable:
		b, ok := b.(Variable)
		return ok && a == b
	case Negation:
		b, ok := b.(Negation)
		return ok && Equal(a.X, b.X)
	case Binary:
		b, ok := b.(Binary)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case nil:
		return b == nil
	default:
		panic("invalid formula type")
	}
}

// Vars returns the variables appearing in e, in alphabetical order, without duplicates.
func Vars(e Expr) []rune {
	seen := make(map[rune]bool)
	varsRec(e, seen)
	res := make([]rune, 0, len(seen))
	for v := range seen {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

func varsRec(e Expr, seen map[rune]bool) {
	switch e := e.(type) {
	case Literal:
	case Variable:
		seen[rune(e)] = true
	case Negation:
		varsRec(e.X, seen)
	case Binary:
		varsRec(e.Left, seen)
		varsRec(e.Right, seen)
	default:
		panic("invalid formula type")
	}
}
