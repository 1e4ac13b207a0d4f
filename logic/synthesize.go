package logic

// Synthesize compiles an analyzed Document straight into solver-script lines.
//
// Only universal, predicate and relation premises produce code; the other
// kinds are dropped. Functions and constants are declared at most once in
// first-seen order, and the quantifier variable is declared the first time a
// universal premise needs it.
func Synthesize(doc Document) Script {
	table := NewSymbolTable()
	lines := []string{}

	declare := func(name, line string) {
		if table.Declare(name) {
			lines = append(lines, line)
		}
	}

	declare(DefaultSort, DeclareSort(DefaultSort))

	for _, st := range doc.Premises {
		switch st.Kind {
		case KindUniversal:
			if st.Subject == "" || st.Predicate == "" {
				continue
			}
			declare(st.Subject, DeclareFunction(st.Subject, DefaultSort, 1))
			declare(st.Predicate, DeclareFunction(st.Predicate, DefaultSort, 1))
			declare(QuantifierVar, DeclareConst(QuantifierVar, DefaultSort))
			lines = append(lines, Assert(ForAll(Implies(
				Apply(st.Subject, QuantifierVar),
				Apply(st.Predicate, QuantifierVar),
			))))

		case KindPredicate:
			if st.Subject == "" || st.Predicate == "" {
				continue
			}
			declare(st.Predicate, DeclareFunction(st.Predicate, DefaultSort, 1))
			declare(st.Subject, DeclareConst(st.Subject, DefaultSort))
			lines = append(lines, Assert(Apply(st.Predicate, st.Subject)))

		case KindRelation:
			if st.Subject == "" || st.Object == "" || st.Relation == "" {
				continue
			}
			name := st.Relation.FunctionName()
			declare(name, DeclareFunction(name, DefaultSort, 2))
			declare(st.Subject, DeclareConst(st.Subject, DefaultSort))
			declare(st.Object, DeclareConst(st.Object, DefaultSort))
			lines = append(lines, Assert(Apply(name, st.Subject, st.Object)))
		}
	}

	return Script{
		Premises:   lines,
		Conclusion: ConclusionExpr(doc.Conclusion),
	}
}

// ConclusionExpr renders a predicate or relation statement as a solver
// expression and returns "" for every other kind.
func ConclusionExpr(st Statement) string {
	switch st.Kind {
	case KindPredicate:
		if st.Subject != "" && st.Predicate != "" {
			return Apply(st.Predicate, st.Subject)
		}
	case KindRelation:
		if st.Subject != "" && st.Object != "" && st.Relation != "" {
			return Apply(st.Relation.FunctionName(), st.Subject, st.Object)
		}
	}
	return ""
}
