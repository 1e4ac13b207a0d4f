package model

import (
	"regexp"
	"sort"
	"strings"

	"github.com/liamcoop/logicgraph/logic"
)

var (
	sortDecl      = regexp.MustCompile(`(\w+)\s*=\s*DeclareSort\(['"](\w+)['"]\)`)
	functionDecl  = regexp.MustCompile(`(\w+)\s*=\s*Function\(['"](\w+)['"]`)
	constDecl     = regexp.MustCompile(`(\w+)\s*=\s*Const\(['"](\w+)['"]`)
	forAllImplies = regexp.MustCompile(`ForAll\(\[x\],\s*Implies\((\w+)\(x\),\s*(\w+)\(x\)\)\)`)
	forAllPlain   = regexp.MustCompile(`s\.add\(ForAll\(\[x\],\s*(\w+)\(x\)\)\)`)
	impliesObject = regexp.MustCompile(`s\.add\(Implies\((\w+)\((\w+)\),\s*(\w+)\((\w+)\)\)\)`)
	predicateCall = regexp.MustCompile(`s\.add\((\w+)\((\w+)\)\)`)
)

// positioned keeps a recovered rule with its offset in the script
type positioned struct {
	at   int
	rule Rule
}

// Reconstruct recovers a SimpleModel from solver-script lines.
//
// Recovery is best effort and never fails: relation assertions and anything
// else the patterns do not describe are dropped, and empty placeholders keep
// the predicate, object and rule lists non-empty. Rules come back in script
// order.
func Reconstruct(lines []string) SimpleModel {
	text := strings.Join(lines, "\n")

	m := SimpleModel{DomainName: DefaultDomain}
	if sm := sortDecl.FindStringSubmatch(text); sm != nil {
		m.DomainName = sm[1]
	}

	seen := map[string]bool{}
	for _, sm := range functionDecl.FindAllStringSubmatch(text, -1) {
		if name := sm[1]; !seen[name] {
			seen[name] = true
			m.Predicates = append(m.Predicates, Predicate{Name: name})
		}
	}

	seen = map[string]bool{}
	for _, sm := range constDecl.FindAllStringSubmatch(text, -1) {
		if name := sm[1]; name != logic.QuantifierVar && !seen[name] {
			seen[name] = true
			m.Objects = append(m.Objects, name)
		}
	}

	if len(m.Predicates) == 0 {
		m.Predicates = []Predicate{{Name: ""}}
	}
	if len(m.Objects) == 0 {
		m.Objects = []string{""}
	}

	var found []positioned

	// The asserted form contains the bare form, so one scan covers both and
	// an s.add(ForAll(...)) line yields a single implication rule, not one
	// per form.
	for _, loc := range forAllImplies.FindAllStringSubmatchIndex(text, -1) {
		found = append(found, positioned{at: loc[0], rule: Rule{
			Type:       RuleImplication,
			Antecedent: Antecedent{Predicate: text[loc[2]:loc[3]], Object: Variable},
			Consequent: Consequent{Predicate: text[loc[4]:loc[5]]},
		}})
	}

	for _, loc := range forAllPlain.FindAllStringSubmatchIndex(text, -1) {
		found = append(found, positioned{at: loc[0], rule: Rule{
			Type:      RuleUniversal,
			Predicate: text[loc[2]:loc[3]],
		}})
	}

	for _, loc := range impliesObject.FindAllStringSubmatchIndex(text, -1) {
		obj, consObj := text[loc[4]:loc[5]], text[loc[8]:loc[9]]
		if obj != consObj {
			continue
		}
		found = append(found, positioned{at: loc[0], rule: Rule{
			Type:       RuleImplication,
			Antecedent: Antecedent{Predicate: text[loc[2]:loc[3]], Object: obj},
			Consequent: Consequent{Predicate: text[loc[6]:loc[7]]},
		}})
	}

	for _, loc := range predicateCall.FindAllStringSubmatchIndex(text, -1) {
		found = append(found, positioned{at: loc[0], rule: Rule{
			Type:       RulePredicate,
			Predicate:  text[loc[2]:loc[3]],
			Object:     text[loc[4]:loc[5]],
			Antecedent: Antecedent{Object: Variable},
		}})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].at < found[j].at })
	for _, f := range found {
		m.Rules = append(m.Rules, f.rule)
	}

	if len(m.Rules) == 0 {
		first := m.Predicates[0].Name
		m.Rules = []Rule{{
			Type:       RulePredicate,
			Predicate:  first,
			Object:     m.Objects[0],
			Antecedent: Antecedent{Predicate: first, Object: Variable},
			Consequent: Consequent{Predicate: first},
		}}
	}

	return m
}
