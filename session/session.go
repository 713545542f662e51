// Package session holds the state of an interactive boolexpr session:
// the truth values given to variables, and the formulas stored under a name.
package session

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/crillab/boolexpr/expr"
)

// ErrInvalidName is returned when a variable or definition name is not acceptable.
var ErrInvalidName = errors.New("invalid name")

var definitionName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// A Session associates variables with truth values, and names with formulas.
// The zero value is not usable, sessions must be created with New.
type Session struct {
	assignment  expr.Assignment
	definitions map[string]expr.Expr
}

// New returns an empty session.
func New() *Session {
	return &Session{
		assignment:  make(expr.Assignment),
		definitions: make(map[string]expr.Expr),
	}
}

// Set binds the variable name to val.
// It returns true if name was already bound.
func (s *Session) Set(name rune, val bool) (replaced bool, err error) {
	if name < 'a' || name > 'z' {
		return false, fmt.Errorf("%w: variable %q is not a lowercase letter", ErrInvalidName, name)
	}
	if name == 'v' {
		return false, fmt.Errorf("%w: variable 'v' reads as the or operator", ErrInvalidName)
	}
	_, replaced = s.assignment[name]
	s.assignment[name] = val
	return replaced, nil
}

// Unset removes the binding of name, if any.
// It returns true if name was bound.
func (s *Session) Unset(name rune) bool {
	_, ok := s.assignment[name]
	delete(s.assignment, name)
	return ok
}

// Lookup returns the value bound to name, if any.
func (s *Session) Lookup(name rune) (val, ok bool) {
	val, ok = s.assignment[name]
	return val, ok
}

// Len returns the number of bound variables.
func (s *Session) Len() int {
	return len(s.assignment)
}

// Vars returns the bound variables, in alphabetical order.
func (s *Session) Vars() []rune {
	res := make([]rune, 0, len(s.assignment))
	for v := range s.assignment {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Assignment returns a copy of the current bindings.
func (s *Session) Assignment() expr.Assignment {
	res := make(expr.Assignment, len(s.assignment))
	for k, v := range s.assignment {
		res[k] = v
	}
	return res
}

// Define stores e under the given name.
// It returns true if a formula was already stored under that name.
func (s *Session) Define(name string, e expr.Expr) (replaced bool, err error) {
	if !definitionName.MatchString(name) {
		return false, fmt.Errorf("%w: definition %q", ErrInvalidName, name)
	}
	_, replaced = s.definitions[name]
	s.definitions[name] = e
	return replaced, nil
}

// Definition returns the formula stored under name, if any.
func (s *Session) Definition(name string) (expr.Expr, bool) {
	e, ok := s.definitions[name]
	return e, ok
}

// Definitions returns the names of all stored formulas, sorted.
func (s *Session) Definitions() []string {
	res := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Evaluate evaluates e with the current bindings.
func (s *Session) Evaluate(e expr.Expr) expr.Expr {
	return expr.Evaluate(e, s.assignment)
}

// Reset removes all bindings and definitions.
func (s *Session) Reset() {
	s.assignment = make(expr.Assignment)
	s.definitions = make(map[string]expr.Expr)
}
