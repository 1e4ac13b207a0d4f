package model

import (
	"strings"

	"github.com/liamcoop/logicgraph/logic"
)

// socratesBody is emitted verbatim after the domain line for the canonical
// Socrates model. The declarations use Object whatever the domain is named.
var socratesBody = []string{
	"Human = Function('Human', Object, BoolSort())",
	"Mortal = Function('Mortal', Object, BoolSort())",
	"socrates = Const('socrates', Object)",
	"x = Const('x', Object)",
	"s.add(ForAll([x], Implies(Human(x), Mortal(x))))",
	"s.add(Human(socrates))",
}

const socratesConclusion = "Mortal(socrates)"

// Generate compiles a SimpleModel into solver-script lines.
//
// customDomain is only consulted when m.DomainName is CustomDomain. Nothing is
// emitted when validation fails; the returned error wraps one of the Err*
// sentinels in a *ValidationError.
func Generate(m SimpleModel, customDomain string) (Generated, error) {
	predicates := validPredicates(m.Predicates)
	if len(predicates) == 0 {
		return Generated{}, &ValidationError{Err: ErrNoPredicates}
	}

	objects := validObjects(m.Objects)
	if len(objects) == 0 {
		return Generated{}, &ValidationError{Err: ErrNoObjects}
	}

	if m.ConclusionPredicate == "" || m.ConclusionObject == "" {
		return Generated{}, &ValidationError{Err: ErrNoConclusion}
	}

	domain, err := resolveDomain(m.DomainName, customDomain)
	if err != nil {
		return Generated{}, err
	}

	if IsSocrates(m) {
		lines := append([]string{logic.DeclareSort(domain)}, socratesBody...)
		return newGenerated(lines, socratesConclusion), nil
	}

	g := &generator{sort: domain, functions: logic.NewSymbolTable(), constants: logic.NewSymbolTable()}
	g.declareSort()

	for _, p := range predicates {
		g.function(p)
	}

	declared := make(map[string]bool, len(objects))
	for _, o := range objects {
		g.constant(o)
		declared[o] = true
	}

	rules := trimRules(m.Rules)
	if needsVariable(rules) {
		g.constant(logic.QuantifierVar)
	}

	for _, r := range rules {
		switch r.Type {
		case RulePredicate:
			if r.Predicate == "" || r.Object == "" {
				continue
			}
			g.function(r.Predicate)
			g.constant(r.Object)
			g.assert(logic.Apply(r.Predicate, r.Object))

		case RuleImplication:
			ant, cons := r.Antecedent.Predicate, r.Consequent.Predicate
			if ant == "" || cons == "" {
				continue
			}
			obj := antecedentObject(r)
			if obj != Variable && !declared[obj] {
				continue
			}
			g.function(ant)
			g.function(cons)
			if obj == Variable {
				g.assert(logic.ForAll(logic.Implies(
					logic.Apply(ant, logic.QuantifierVar),
					logic.Apply(cons, logic.QuantifierVar),
				)))
				continue
			}
			g.assert(logic.Implies(logic.Apply(ant, obj), logic.Apply(cons, obj)))

		case RuleUniversal:
			if r.Predicate == "" {
				continue
			}
			g.function(r.Predicate)
			g.assert(logic.ForAll(logic.Apply(r.Predicate, logic.QuantifierVar)))
		}
	}

	return newGenerated(g.lines, logic.Apply(m.ConclusionPredicate, m.ConclusionObject)), nil
}

// generator accumulates script lines for a single Generate call. Functions
// and constants are tracked in separate tables and the sort in neither, so a
// predicate named like the domain or like x still gets its own declaration.
type generator struct {
	sort      string
	functions *logic.SymbolTable
	constants *logic.SymbolTable
	lines     []string
}

func (g *generator) declareSort() {
	g.lines = append(g.lines, logic.DeclareSort(g.sort))
}

// function declares name unless it is already known. Rules naming a
// predicate missing from the predicate list get it declared here, ahead of
// the assertion that uses it.
func (g *generator) function(name string) {
	if g.functions.Declare(name) {
		g.lines = append(g.lines, logic.DeclareFunction(name, g.sort, 1))
	}
}

func (g *generator) constant(name string) {
	if g.constants.Declare(name) {
		g.lines = append(g.lines, logic.DeclareConst(name, g.sort))
	}
}

func (g *generator) assert(expr string) {
	g.lines = append(g.lines, logic.Assert(expr))
}

func newGenerated(lines []string, conclusion string) Generated {
	return Generated{
		Premises:   lines,
		Conclusion: conclusion,
		Code:       logic.FullText(lines, conclusion),
	}
}

func resolveDomain(name, custom string) (string, error) {
	switch name = strings.TrimSpace(name); name {
	case CustomDomain:
		custom = strings.TrimSpace(custom)
		if custom == "" {
			return "", &ValidationError{Err: ErrNoCustomDomain}
		}
		return custom, nil
	case "":
		return DefaultDomain, nil
	default:
		return name, nil
	}
}

func validPredicates(preds []Predicate) []string {
	out := make([]string, 0, len(preds))
	for _, p := range preds {
		if name := strings.TrimSpace(p.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func validObjects(objs []string) []string {
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// trimRules trims rule names the same way predicate and object names are
// trimmed, so a rule never redeclares a listed name under another spelling.
func trimRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Predicate = strings.TrimSpace(r.Predicate)
		r.Object = strings.TrimSpace(r.Object)
		r.Antecedent.Predicate = strings.TrimSpace(r.Antecedent.Predicate)
		r.Antecedent.Object = strings.TrimSpace(r.Antecedent.Object)
		r.Consequent.Predicate = strings.TrimSpace(r.Consequent.Predicate)
		out[i] = r
	}
	return out
}

// antecedentObject treats a blank antecedent object as the quantified variable
func antecedentObject(r Rule) string {
	if r.Antecedent.Object == "" {
		return Variable
	}
	return r.Antecedent.Object
}

func needsVariable(rules []Rule) bool {
	for _, r := range rules {
		switch r.Type {
		case RuleUniversal:
			return true
		case RuleImplication:
			if antecedentObject(r) == Variable {
				return true
			}
		}
	}
	return false
}

// IsSocrates reports whether m is the canonical "all humans are mortal,
// socrates is human" model, in any declaration order.
func IsSocrates(m SimpleModel) bool {
	hasHuman, hasMortal := false, false
	for _, p := range m.Predicates {
		hasHuman = hasHuman || p.Name == "Human"
		hasMortal = hasMortal || p.Name == "Mortal"
	}

	hasSocrates := false
	for _, o := range m.Objects {
		hasSocrates = hasSocrates || o == "socrates"
	}

	hasImplication, hasAssertion := false, false
	for _, r := range m.Rules {
		switch r.Type {
		case RuleImplication:
			hasImplication = hasImplication || (r.Antecedent.Predicate == "Human" &&
				r.Antecedent.Object == Variable &&
				r.Consequent.Predicate == "Mortal")
		case RulePredicate:
			hasAssertion = hasAssertion || (r.Predicate == "Human" && r.Object == "socrates")
		}
	}

	return hasHuman && hasMortal && hasSocrates &&
		m.ConclusionPredicate == "Mortal" && m.ConclusionObject == "socrates" &&
		hasImplication && hasAssertion
}
