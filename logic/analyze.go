package logic

import (
	"regexp"
	"strings"
)

// matcher is one entry of the classification cascade
type matcher struct {
	pattern *regexp.Regexp
	build   func(m []string) Statement
}

func pair(kind Kind) func(m []string) Statement {
	return func(m []string) Statement {
		return Statement{Kind: kind, Subject: m[1], Predicate: m[2]}
	}
}

func relation(rel Relation) func(m []string) Statement {
	return func(m []string) Statement {
		return Statement{Kind: KindRelation, Subject: m[1], Object: m[2], Relation: rel}
	}
}

// relationCalls recognizes the call notation produced by the Normalizer,
// e.g. greaterthan(a, b).
var relationCalls = map[string]Relation{
	RelatedTo.FunctionName():   RelatedTo,
	GreaterThan.FunctionName(): GreaterThan,
	LessThan.FunctionName():    LessThan,
	EqualTo.FunctionName():     EqualTo,
	In.FunctionName():          In,
	SubsetOf.FunctionName():    SubsetOf,
}

// cascade is evaluated top to bottom and the first match wins.
// Reordering entries changes classification: "x is related to y" is caught
// by the plain "is" entry before the relation phrases are reached.
var cascade = []matcher{
	{regexp.MustCompile(`(?i)\ball\s+(\w+)\s+are\s+(\w+)`), pair(KindUniversal)},
	{regexp.MustCompile(`(?i)\bsome\s+(\w+)\s+are\s+(\w+)`), pair(KindExistential)},
	{regexp.MustCompile(`(?i)\b(\w+)\s+implies\s+(\w+)`), pair(KindImplication)},
	{regexp.MustCompile(`(?i)\b(\w+)\s+is\s+(\w+)`), pair(KindPredicate)},

	{regexp.MustCompile(`(?i)(\w+)\s+is\s+related\s+to\s+(\w+)`), relation(RelatedTo)},
	{regexp.MustCompile(`(?i)(\w+)\s+is\s+greater\s+than\s+(\w+)`), relation(GreaterThan)},
	{regexp.MustCompile(`(?i)(\w+)\s+is\s+less\s+than\s+(\w+)`), relation(LessThan)},
	{regexp.MustCompile(`(?i)(\w+)\s+is\s+equal\s+to\s+(\w+)`), relation(EqualTo)},
	{regexp.MustCompile(`(?i)(\w+)\s+is\s+in\s+(\w+)`), relation(In)},
	{regexp.MustCompile(`(?i)(\w+)\s+is\s+a\s+subset\s+of\s+(\w+)`), relation(SubsetOf)},
	{
		regexp.MustCompile(`(?i)\b(relatedto|greaterthan|lessthan|equalto|in|subsetof)\(\s*(\w+)\s*,\s*(\w+)\s*\)`),
		func(m []string) Statement {
			return Statement{Kind: KindRelation, Subject: m[2], Object: m[3], Relation: relationCalls[strings.ToLower(m[1])]}
		},
	},
}

// Classify runs the pattern cascade over text that is already normalized
func Classify(text string) Statement {
	for _, c := range cascade {
		if m := c.pattern.FindStringSubmatch(text); m != nil {
			return c.build(m)
		}
	}
	return Unknown()
}

// Analyzer classifies single sentences
type Analyzer struct {
	normalizer *Normalizer
}

// NewAnalyzer creates an Analyzer that normalizes with n (default Normalizer when nil)
func NewAnalyzer(n *Normalizer) *Analyzer {
	if n == nil {
		n = defaultNormalizer
	}
	return &Analyzer{normalizer: n}
}

// Analyze normalizes sentence and classifies it
func (a *Analyzer) Analyze(sentence string) Statement {
	return Classify(a.normalizer.Normalize(sentence))
}

// Analyze classifies sentence using the default Normalizer
func Analyze(sentence string) Statement {
	return Classify(Normalize(sentence))
}
