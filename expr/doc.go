// Package expr parses, simplifies and renders small boolean formulas.
//
// Formulas are written with single-letter variables and the following symbols:
//
// - "T" and "F" for the true and false constants,
// - "a" to "z" for variables (except "v", which is the "or" operator),
// - "^" for a conjunction ("and"),
// - "v" for a disjunction ("or"),
// - "-" (or "¬") for a negation.
//
// Binary operators have no relative priority and associate to the right,
// so "a ^ b v c" is read as "a ^ (b v c)". Negation applies to the term right after it.
// Parentheses can be used to group subformulas.
//
// For instance, the following code:
//
//	e, _ := Parse("(a v b) ^ -c")
//	fmt.Println(Evaluate(e, Assignment{'a': false, 'c': false}))
//
// prints "b": the known variables were replaced by their value, and the tree was then
// reduced with the usual identity and absorption laws. Formulas that cannot be
// reduced to a constant can still be given to gophersat, see Solve and Tautology.
package expr
