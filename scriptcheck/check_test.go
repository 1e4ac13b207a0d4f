package scriptcheck

import (
	"strings"
	"testing"
)

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	c, err := NewChecker()
	if err != nil {
		t.Fatalf("NewChecker() error: %v", err)
	}
	return c
}

func TestCheckValidScripts(t *testing.T) {
	c := newTestChecker(t)

	testCases := []struct {
		name       string
		premises   []string
		conclusion string
	}{
		{
			name: "Socrates",
			premises: []string{
				"Object = DeclareSort('Object')",
				"Human = Function('Human', Object, BoolSort())",
				"Mortal = Function('Mortal', Object, BoolSort())",
				"socrates = Const('socrates', Object)",
				"x = Const('x', Object)",
				"s.add(ForAll([x], Implies(Human(x), Mortal(x))))",
				"s.add(Human(socrates))",
			},
			conclusion: "Mortal(socrates)",
		},
		{
			name: "Binary relation",
			premises: []string{
				"Object = DeclareSort('Object')",
				"greaterthan = Function('greaterthan', Object, Object, BoolSort())",
				"a = Const('a', Object)",
				"b = Const('b', Object)",
				"s.add(greaterthan(a, b))",
			},
			conclusion: "greaterthan(a, b)",
		},
		{
			name: "Connectives and comments",
			premises: []string{
				"# facts",
				"",
				"Thing = DeclareSort(\"Thing\")",
				"Red = Function('Red', Thing, BoolSort())",
				"apple = Const('apple', Thing)",
				"s.add(And(Red(apple), Not(Not(Red(apple)))))",
				"s.add(Implies(Red(apple), Red(apple)))",
			},
			conclusion: "Or(Red(apple), Red(apple))",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report := c.Check(tc.premises, tc.conclusion)
			if !report.Valid {
				t.Errorf("expected valid script, got issues: %v", report.Issues)
			}
		})
	}
}

func TestCheckFindsIssues(t *testing.T) {
	c := newTestChecker(t)

	header := []string{
		"Object = DeclareSort('Object')",
		"Human = Function('Human', Object, BoolSort())",
		"socrates = Const('socrates', Object)",
	}

	testCases := []struct {
		name       string
		extra      []string
		conclusion string
		wantSource string
		wantLine   int
		wantMsg    string
	}{
		{"Undeclared predicate", []string{"s.add(Mortal(socrates))"}, "Human(socrates)", SourcePremises, 4, "Mortal is not declared"},
		{"Undeclared constant", []string{"s.add(Human(plato))"}, "Human(socrates)", SourcePremises, 4, "constant plato is not declared"},
		{"Duplicate declaration", []string{"Human = Function('Human', Object, BoolSort())"}, "Human(socrates)", SourcePremises, 4, "declared more than once"},
		{"Wrong arity", []string{"s.add(Human(socrates, socrates))"}, "Human(socrates)", SourcePremises, 4, "takes 1 arguments"},
		{"Undeclared quantifier variable", []string{"s.add(ForAll([x], Human(x)))"}, "Human(socrates)", SourcePremises, 4, "quantified variable x is not declared"},
		{"Undeclared sort", []string{"plato = Const('plato', Person)"}, "Human(socrates)", SourcePremises, 4, "sort Person is not declared"},
		{"Mismatched name", []string{"plato = Const('socrates', Object)"}, "Human(socrates)", SourcePremises, 4, "declared with its own name"},
		{"Reserved name", []string{"in = Function('in', Object, Object, BoolSort())"}, "Human(socrates)", SourcePremises, 4, "reserved"},
		{"Syntax error", []string{"s.add(Human(socrates)"}, "Human(socrates)", SourcePremises, 4, "syntax error"},
		{"Unrecognized line", []string{"print(s.check())"}, "Human(socrates)", SourcePremises, 4, "unrecognized statement"},
		{"Not an assertion", []string{"s.add(socrates)"}, "Human(socrates)", SourcePremises, 4, "expected a predicate application"},
		{"Empty conclusion", nil, "  ", SourceConclusion, 1, "conclusion is empty"},
		{"Conclusion parse error", nil, "Human(socrates", SourceConclusion, 1, "syntax error"},
		{"Conclusion undeclared", nil, "Mortal(socrates)", SourceConclusion, 1, "Mortal is not declared"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			premises := append(append([]string{}, header...), tc.extra...)
			report := c.Check(premises, tc.conclusion)
			if report.Valid {
				t.Fatal("expected issues, got a valid report")
			}

			found := false
			for _, issue := range report.Issues {
				if issue.Source == tc.wantSource && issue.Line == tc.wantLine && strings.Contains(issue.Message, tc.wantMsg) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %s:%d containing %q, got %v", tc.wantSource, tc.wantLine, tc.wantMsg, report.Issues)
			}
		})
	}
}

// TestCheckHasPredicate verifies predicate names that collide with CEL macros still parse
func TestCheckHasPredicate(t *testing.T) {
	c := newTestChecker(t)

	report := c.Check([]string{
		"Object = DeclareSort('Object')",
		"has = Function('has', Object, BoolSort())",
		"a = Const('a', Object)",
		"s.add(has(a))",
	}, "has(a)")
	if !report.Valid {
		t.Errorf("expected valid script, got %v", report.Issues)
	}
}

func TestIssueString(t *testing.T) {
	got := Issue{Source: SourcePremises, Line: 3, Message: "boom"}.String()
	if got != "premises:3: boom" {
		t.Errorf("String() = %q", got)
	}
}
