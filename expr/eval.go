package expr

// An Assignment associates variables with a truth value.
type Assignment map[rune]bool

// Evaluate replaces the variables of e bound in a with their value, then simplifies the result.
// The result is a Literal if all variables of e are bound in a.
// Otherwise, it is the residual formula over the unbound variables.
// a is only read, and may be nil.
func Evaluate(e Expr, a Assignment) Expr {
	return Simplify(Substitute(e, a))
}

// Substitute returns a copy of e where each variable bound in a is replaced by its value.
func Substitute(e Expr, a Assignment) Expr {
	switch e := e.(type) {
	case Literal:
		return e
	case Variable:
		if b, ok := a[rune(e)]; ok {
			return Literal(b)
		}
		return e
	case Negation:
		return Negation{X: Substitute(e.X, a)}
	case Binary:
		return Binary{Op: e.Op, Left: Substitute(e.Left, a), Right: Substitute(e.Right, a)}
	default:
		panic("invalid formula type")
	}
}

// Simplify reduces e using the identity and absorption laws of "and" and "or",
// and by computing the negation of constants.
// Both sides of a binary formula are always simplified before the laws are applied,
// so "F ^ x" and "x ^ F" both become F.
func Simplify(e Expr) Expr {
	switch e := e.(type) {
	case Literal, Variable:
		return e
	case Negation:
		x := Simplify(e.X)
		if l, ok := x.(Literal); ok {
			return !l
		}
		return Negation{X: x}
	case Binary:
		l := Simplify(e.Left)
		r := Simplify(e.Right)
		absorbing := Literal(e.Op == OrOp) // F for "and", T for "or"
		if l == absorbing || r == absorbing {
			return absorbing
		}
		identity := !absorbing
		if l == identity {
			return r
		}
		if r == identity {
			return l
		}
		return Binary{Op: e.Op, Left: l, Right: r}
	default:
		panic("invalid formula type")
	}
}
