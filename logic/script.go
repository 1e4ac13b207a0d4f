package logic

import (
	"fmt"
	"strings"
)

const (
	// QuantifierVar is the single bound variable reused by every universal assertion
	QuantifierVar = "x"

	// DefaultSort is the object sort used when no domain is named
	DefaultSort = "Object"

	// ConclusionMarker separates premise lines from the conclusion in full script text
	ConclusionMarker = "# Conclusion:"
)

// The helpers below produce the exact textual forms the solver executes.
// Reconstruction in the model package depends on these shapes.

// DeclareSort renders NAME = DeclareSort('NAME')
func DeclareSort(name string) string {
	return fmt.Sprintf("%s = DeclareSort('%s')", name, name)
}

// DeclareFunction renders a boolean-valued function over arity arguments of sort
func DeclareFunction(name, sort string, arity int) string {
	args := make([]string, 0, arity+1)
	for i := 0; i < arity; i++ {
		args = append(args, sort)
	}
	args = append(args, "BoolSort()")
	return fmt.Sprintf("%s = Function('%s', %s)", name, name, strings.Join(args, ", "))
}

// DeclareConst renders NAME = Const('NAME', SORT)
func DeclareConst(name, sort string) string {
	return fmt.Sprintf("%s = Const('%s', %s)", name, name, sort)
}

// Apply renders NAME(ARG, ...)
func Apply(name string, args ...string) string {
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

// Implies renders Implies(A, B)
func Implies(antecedent, consequent string) string {
	return fmt.Sprintf("Implies(%s, %s)", antecedent, consequent)
}

// ForAll renders ForAll([x], BODY) over the quantifier variable
func ForAll(body string) string {
	return fmt.Sprintf("ForAll([%s], %s)", QuantifierVar, body)
}

// Assert renders s.add(EXPR)
func Assert(expr string) string {
	return fmt.Sprintf("s.add(%s)", expr)
}

// FullText joins premise lines, a blank line, the conclusion marker and the conclusion
func FullText(premises []string, conclusion string) string {
	return strings.Join(premises, "\n") + "\n\n" + ConclusionMarker + "\n" + conclusion
}
