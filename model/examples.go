package model

import "sort"

func assertRule(pred, obj string) Rule {
	return Rule{Type: RulePredicate, Predicate: pred, Object: obj}
}

func forAllRule(ant, cons string) Rule {
	return Rule{
		Type:       RuleImplication,
		Antecedent: Antecedent{Predicate: ant, Object: Variable},
		Consequent: Consequent{Predicate: cons},
	}
}

// SocratesExample is the canonical syllogism; Generate emits a fixed script for it
func SocratesExample() SimpleModel {
	return SimpleModel{
		DomainName: DefaultDomain,
		Predicates: []Predicate{{Name: "Human"}, {Name: "Mortal"}},
		Objects:    []string{"socrates"},
		Rules: []Rule{
			forAllRule("Human", "Mortal"),
			assertRule("Human", "socrates"),
		},
		ConclusionPredicate: "Mortal",
		ConclusionObject:    "socrates",
	}
}

func SetExample() SimpleModel {
	return SimpleModel{
		DomainName: "Set",
		Predicates: []Predicate{{Name: "SubsetOf"}, {Name: "ElementOf"}, {Name: "EmptySet"}},
		Objects:    []string{"setA", "setB", "setC", "element1"},
		Rules: []Rule{
			assertRule("SubsetOf", "setA"),
			forAllRule("SubsetOf", "ElementOf"),
			assertRule("SubsetOf", "setB"),
		},
		ConclusionPredicate: "ElementOf",
		ConclusionObject:    "element1",
	}
}

func FamilyExample() SimpleModel {
	return SimpleModel{
		DomainName: "Person",
		Predicates: []Predicate{{Name: "Parent"}, {Name: "Ancestor"}, {Name: "Sibling"}},
		Objects:    []string{"alice", "bob", "charlie", "david"},
		Rules: []Rule{
			assertRule("Parent", "alice"),
			assertRule("Parent", "bob"),
			forAllRule("Parent", "Ancestor"),
		},
		ConclusionPredicate: "Ancestor",
		ConclusionObject:    "alice",
	}
}

func TransitivityExample() SimpleModel {
	return SimpleModel{
		DomainName: DefaultDomain,
		Predicates: []Predicate{{Name: "GreaterThan"}, {Name: "LessThan"}, {Name: "Equals"}},
		Objects:    []string{"a", "b", "c"},
		Rules: []Rule{
			assertRule("GreaterThan", "a"),
			assertRule("GreaterThan", "b"),
			forAllRule("GreaterThan", "GreaterThan"),
		},
		ConclusionPredicate: "GreaterThan",
		ConclusionObject:    "c",
	}
}

var examples = map[string]func() SimpleModel{
	"socrates":     SocratesExample,
	"set":          SetExample,
	"family":       FamilyExample,
	"transitivity": TransitivityExample,
}

// Example returns a fresh copy of the named example model
func Example(name string) (SimpleModel, bool) {
	build, ok := examples[name]
	if !ok {
		return SimpleModel{}, false
	}
	return build(), true
}

// ExampleNames lists the example models in name order
func ExampleNames() []string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
