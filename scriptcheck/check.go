// Package scriptcheck lints solver scripts before they are sent to the prover.
package scriptcheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/ast"
)

const (
	SourcePremises   = "premises"
	SourceConclusion = "conclusion"
)

// Issue is one problem found in a script
type Issue struct {
	Source  string `json:"source"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s:%d: %s", i.Source, i.Line, i.Message)
}

// Report lists every issue found; a script with no issues is Valid
type Report struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

type symbolKind int

const (
	kindSort symbolKind = iota
	kindFunction
	kindConst
)

type symbol struct {
	kind  symbolKind
	arity int
}

var (
	declaration = regexp.MustCompile(`^(\w+)\s*=\s*(DeclareSort|Function|Const)\((.*)\)$`)
	assertion   = regexp.MustCompile(`^s\.add\(.*\)$`)
	quotedName  = regexp.MustCompile(`^['"](\w+)['"]$`)
)

// Checker parses assertion expressions with a CEL parser. The script
// language is a subset of CEL call syntax, so no declarations are needed and
// macros are cleared so predicates such as has(x) parse as plain calls.
type Checker struct {
	env *cel.Env
}

func NewChecker() (*Checker, error) {
	env, err := cel.NewEnv(cel.ClearMacros())
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Checker{env: env}, nil
}

// Check reports declarations that are duplicated, malformed or badly named,
// and assertions or a conclusion that use undeclared names, wrong arities or
// unsupported syntax.
func (c *Checker) Check(premises []string, conclusion string) Report {
	run := &checkRun{checker: c, symbols: map[string]symbol{}}

	for i, raw := range premises {
		line := strings.TrimSpace(raw)
		run.source, run.line = SourcePremises, i+1

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case declaration.MatchString(line):
			run.declare(declaration.FindStringSubmatch(line))
		case assertion.MatchString(line):
			run.assert(line)
		default:
			run.report("unrecognized statement %q", line)
		}
	}

	run.source, run.line = SourceConclusion, 1
	if conclusion = strings.TrimSpace(conclusion); conclusion == "" {
		run.report("conclusion is empty")
	} else if expr, ok := run.parse(conclusion); ok {
		run.formula(expr, nil)
	}

	return Report{Valid: len(run.issues) == 0, Issues: run.issues}
}

// checkRun is the state of a single Check call
type checkRun struct {
	checker *Checker
	symbols map[string]symbol
	issues  []Issue
	source  string
	line    int
}

func (r *checkRun) report(format string, args ...any) {
	r.issues = append(r.issues, Issue{Source: r.source, Line: r.line, Message: fmt.Sprintf(format, args...)})
}

func (r *checkRun) declare(m []string) {
	name, builtin, args := m[1], m[2], splitArgs(m[3])

	if err := ValidateIdentifier(name); err != nil {
		r.report("invalid name %q: %v", name, err)
	}
	if _, dup := r.symbols[name]; dup {
		r.report("%s is declared more than once", name)
		return
	}
	if len(args) == 0 {
		r.report("%s: missing arguments", builtin)
		return
	}
	if qm := quotedName.FindStringSubmatch(args[0]); qm == nil || qm[1] != name {
		r.report("%s must be declared with its own name, got %s", name, args[0])
	}

	switch builtin {
	case "DeclareSort":
		if len(args) != 1 {
			r.report("DeclareSort takes one argument, got %d", len(args))
		}
		r.symbols[name] = symbol{kind: kindSort}

	case "Function":
		if len(args) < 3 {
			r.report("Function %s needs at least one domain sort and a range sort", name)
			r.symbols[name] = symbol{kind: kindFunction}
			return
		}
		domain, rng := args[1:len(args)-1], args[len(args)-1]
		for _, sort := range domain {
			r.requireSort(sort)
		}
		if rng != "BoolSort()" {
			r.report("Function %s must return BoolSort(), got %s", name, rng)
		}
		r.symbols[name] = symbol{kind: kindFunction, arity: len(domain)}

	case "Const":
		if len(args) != 2 {
			r.report("Const takes a name and a sort, got %d arguments", len(args))
		} else {
			r.requireSort(args[1])
		}
		r.symbols[name] = symbol{kind: kindConst}
	}
}

func (r *checkRun) requireSort(name string) {
	if sym, ok := r.symbols[name]; !ok || sym.kind != kindSort {
		r.report("sort %s is not declared", name)
	}
}

func (r *checkRun) parse(text string) (ast.Expr, bool) {
	parsed, iss := r.checker.env.Parse(text)
	if iss != nil && iss.Err() != nil {
		r.report("syntax error: %v", iss.Err())
		return nil, false
	}
	return parsed.NativeRep().Expr(), true
}

// assert checks s.add(FORMULA)
func (r *checkRun) assert(line string) {
	expr, ok := r.parse(line)
	if !ok {
		return
	}
	if expr.Kind() != ast.CallKind {
		r.report("expected s.add(...)")
		return
	}
	call := expr.AsCall()
	if !call.IsMemberFunction() || call.FunctionName() != "add" ||
		call.Target().Kind() != ast.IdentKind || call.Target().AsIdent() != "s" {
		r.report("expected s.add(...)")
		return
	}
	if len(call.Args()) != 1 {
		r.report("s.add takes one formula, got %d", len(call.Args()))
		return
	}
	r.formula(call.Args()[0], nil)
}

// formula checks a boolean expression; bound holds quantified variables in scope
func (r *checkRun) formula(expr ast.Expr, bound map[string]bool) {
	if expr.Kind() != ast.CallKind {
		r.report("expected a predicate application or connective")
		return
	}
	call := expr.AsCall()
	if call.IsMemberFunction() {
		r.report("unexpected method call %s", call.FunctionName())
		return
	}

	name, args := call.FunctionName(), call.Args()
	switch name {
	case "ForAll", "Exists":
		r.quantifier(name, args, bound)
	case "Implies":
		r.connective(name, args, 2, bound)
	case "Not":
		r.connective(name, args, 1, bound)
	case "And", "Or":
		r.connective(name, args, -1, bound)
	default:
		r.application(name, args, bound)
	}
}

func (r *checkRun) quantifier(name string, args []ast.Expr, bound map[string]bool) {
	if len(args) != 2 || args[0].Kind() != ast.ListKind {
		r.report("%s takes a variable list and a body", name)
		return
	}

	scope := make(map[string]bool, len(bound)+1)
	for k := range bound {
		scope[k] = true
	}
	for _, v := range args[0].AsList().Elements() {
		if v.Kind() != ast.IdentKind {
			r.report("%s variables must be names", name)
			continue
		}
		id := v.AsIdent()
		if sym, ok := r.symbols[id]; !ok || sym.kind != kindConst {
			r.report("quantified variable %s is not declared", id)
		}
		scope[id] = true
	}
	r.formula(args[1], scope)
}

func (r *checkRun) connective(name string, args []ast.Expr, arity int, bound map[string]bool) {
	if arity >= 0 && len(args) != arity {
		r.report("%s takes %d arguments, got %d", name, arity, len(args))
	}
	for _, a := range args {
		r.formula(a, bound)
	}
}

func (r *checkRun) application(name string, args []ast.Expr, bound map[string]bool) {
	sym, ok := r.symbols[name]
	switch {
	case !ok:
		r.report("%s is not declared", name)
	case sym.kind != kindFunction:
		r.report("%s is not a function", name)
	case sym.arity != len(args):
		r.report("%s takes %d arguments, got %d", name, sym.arity, len(args))
	}

	for _, a := range args {
		if a.Kind() != ast.IdentKind {
			r.report("arguments of %s must be constants", name)
			continue
		}
		id := a.AsIdent()
		if bound[id] {
			continue
		}
		if s, ok := r.symbols[id]; !ok || s.kind != kindConst {
			r.report("constant %s is not declared", id)
		}
	}
}

// splitArgs splits a declaration argument list on top-level commas
func splitArgs(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" || len(out) > 0 {
		out = append(out, last)
	}
	return out
}
