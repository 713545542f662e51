package expr

import "math/rand"

// generator builds random formulas for property tests.
type generator struct {
	rnd *rand.Rand
}

func newGenerator(seed int64) *generator {
	return &generator{rnd: rand.New(rand.NewSource(seed))}
}

// Variable names used by generated formulas. "v" is left out since it reads as "or".
const genVars = "abcdexyz"

func (g *generator) expr(depth int) Expr {
	if depth == 0 {
		return g.leaf()
	}
	switch g.rnd.Intn(5) {
	case 0:
		return g.leaf()
	case 1:
		return Not(g.expr(depth - 1))
	case 2:
		return And(g.expr(depth-1), g.expr(depth-1))
	default:
		return Or(g.expr(depth-1), g.expr(depth-1))
	}
}

func (g *generator) leaf() Expr {
	if g.rnd.Intn(3) == 0 {
		return Lit(g.rnd.Intn(2) == 0)
	}
	return Var(rune(genVars[g.rnd.Intn(len(genVars))]))
}

// allAssignments calls fn with every assignment of vars.
func allAssignments(vars []rune, fn func(Assignment)) {
	for mask := 0; mask < 1<<len(vars); mask++ {
		a := make(Assignment, len(vars))
		for i, v := range vars {
			a[v] = mask&(1<<i) != 0
		}
		fn(a)
	}
}
