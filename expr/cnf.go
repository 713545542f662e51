package expr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/crillab/gophersat/solver"
)

// A cnf is the Tseitin translation of a formula: a set of clauses, as DIMACS integers,
// that is satisfiable iff the formula is.
// Variables of the formula get the first indices, in alphabetical order; each
// conjunction, disjunction and constant then gets its own fresh index.
type cnf struct {
	nbVars  int
	vars    []rune       // Variables of the formula; vars[i] has index i+1
	idx     map[rune]int // Index of each variable
	clauses [][]int
}

// asCnf returns the CNF translation of e.
func asCnf(e Expr) *cnf {
	vars := Vars(e)
	c := &cnf{nbVars: len(vars), vars: vars, idx: make(map[rune]int, len(vars))}
	for i, v := range vars {
		c.idx[v] = i + 1
	}
	root := c.lit(e)
	c.clauses = append(c.clauses, []int{root})
	return c
}

func (c *cnf) fresh() int {
	c.nbVars++
	return c.nbVars
}

// lit returns the DIMACS literal equivalent to e, adding the clauses that define it.
func (c *cnf) lit(e Expr) int {
	switch e := e.(type) {
	case Literal:
		x := c.fresh()
		if e {
			c.clauses = append(c.clauses, []int{x})
		} else {
			c.clauses = append(c.clauses, []int{-x})
		}
		return x
	case Variable:
		return c.idx[rune(e)]
	case Negation:
		return -c.lit(e.X)
	case Binary:
		l := c.lit(e.Left)
		r := c.lit(e.Right)
		x := c.fresh()
		if e.Op == AndOp { // x <-> l & r
			c.clauses = append(c.clauses, []int{-x, l}, []int{-x, r}, []int{x, -l, -r})
		} else { // x <-> l | r
			c.clauses = append(c.clauses, []int{-x, l, r}, []int{x, -l}, []int{x, -r})
		}
		return x
	default:
		panic("invalid formula type")
	}
}

// solve returns a model of the clauses, restricted to the variables of the formula,
// or nil if they are unsatisfiable.
func (c *cnf) solve() Assignment {
	pb := solver.ParseSlice(c.clauses)
	s := solver.New(pb)
	if s.Solve() != solver.Sat {
		return nil
	}
	m := s.Model()
	res := make(Assignment, len(c.vars))
	for i, v := range c.vars {
		res[v] = m[i]
	}
	return res
}

func (c *cnf) dimacs(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", c.nbVars, len(c.clauses))
	for i, v := range c.vars {
		fmt.Fprintf(&sb, "c %c=%d\n", v, i+1)
	}
	for _, clause := range c.clauses {
		for _, lit := range clause {
			sb.WriteString(strconv.Itoa(lit))
			sb.WriteByte(' ')
		}
		sb.WriteString("0\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
