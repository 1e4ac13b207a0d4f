package logic

import (
	"regexp"
	"strings"
)

// PartOfSpeech selects which base-form table a Lemmatizer consults
type PartOfSpeech int

const (
	Noun PartOfSpeech = iota
	Verb
	Adjective
)

// Lemmatizer maps an inflected word to its base form.
// Implementations return the input unchanged when they have no better guess.
type Lemmatizer interface {
	Lemma(word string, pos PartOfSpeech) string
}

// Dictionary is a table-backed Lemmatizer
type Dictionary map[PartOfSpeech]map[string]string

// Lemma looks word up in the table for pos
func (d Dictionary) Lemma(word string, pos PartOfSpeech) string {
	if lemma, ok := d[pos][word]; ok && lemma != "" {
		return lemma
	}
	return word
}

// rewrite is one ordered substitution applied during normalization
type rewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

// Connective rewrites run in order; clauses never cross sentence terminators
// so that a second pass finds nothing left to rewrite.
var connectiveRewrites = []rewrite{
	// implication
	{regexp.MustCompile(`\bif\s+([^.?!;]+?)\s+then\s+([^.?!;]+)`), "${1} implies ${2}"},
	{regexp.MustCompile(`([^.?!;]+?)\s+only\s+if\s+([^.?!;]+)`), "${1} implies ${2}"},

	// conjunction
	{regexp.MustCompile(`\s*,\s*and\s+`), " and "},
	{regexp.MustCompile(`\s+and\s+`), " and "},
	{regexp.MustCompile(`\s+&\s+`), " and "},

	// disjunction
	{regexp.MustCompile(`\s+or\s+`), " or "},
	{regexp.MustCompile(`\s+\|\s+`), " or "},

	// negation
	{regexp.MustCompile(`\s+not\s+`), " not "},
	{regexp.MustCompile(`\bisn't\b`), "is not"},
	{regexp.MustCompile(`\baren't\b`), "are not"},
	{regexp.MustCompile(`\bdon't\b`), "do not"},
	{regexp.MustCompile(`\bdoesn't\b`), "does not"},

	// universal quantification
	{regexp.MustCompile(`\b(every|each)\b`), "all"},

	// existential quantification
	{regexp.MustCompile(`\bexists\b`), "some"},
	{regexp.MustCompile(`\bthere\s+is\b`), "some"},
}

// Statement idioms rewritten into forms the analyzer understands.
// Comparison and membership phrases become call notation named after Relation.FunctionName.
var patternRewrites = []rewrite{
	{regexp.MustCompile(`\b(\w+)\s+has\s+(\w+)`), "${1} is ${2}"},
	{regexp.MustCompile(`\b(\w+)\s+is\s+related\s+to\s+(\w+)`), RelatedTo.FunctionName() + "(${1}, ${2})"},
	{regexp.MustCompile(`\b(\w+)\s+is\s+greater\s+than\s+(\w+)`), GreaterThan.FunctionName() + "(${1}, ${2})"},
	{regexp.MustCompile(`\b(\w+)\s+is\s+less\s+than\s+(\w+)`), LessThan.FunctionName() + "(${1}, ${2})"},
	{regexp.MustCompile(`\b(\w+)\s+is\s+equal\s+to\s+(\w+)`), EqualTo.FunctionName() + "(${1}, ${2})"},
	{regexp.MustCompile(`\b(\w+)\s+is\s+in\s+(\w+)`), In.FunctionName() + "(${1}, ${2})"},
	{regexp.MustCompile(`\b(\w+)\s+is\s+a\s+subset\s+of\s+(\w+)`), SubsetOf.FunctionName() + "(${1}, ${2})"},
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	wordCore   = regexp.MustCompile(`^(\W*)(\w+)(\W*)$`)
)

// Normalizer lowercases text and rewrites connectives and idioms into the
// surface forms the Analyzer recognizes.
type Normalizer struct {
	lemmatizer Lemmatizer
}

// NormalizerOption configures a Normalizer
type NormalizerOption func(*Normalizer)

// WithLemmatizer enables base-form lookup before connective rewriting
func WithLemmatizer(l Lemmatizer) NormalizerOption {
	return func(n *Normalizer) {
		n.lemmatizer = l
	}
}

// NewNormalizer creates a Normalizer. Without a Lemmatizer words are kept as written.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var defaultNormalizer = NewNormalizer()

// Normalize runs text through the default Normalizer
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Normalize never fails. Lemmatization runs before connective rewriting so
// inflected verbs do not block the later patterns.
func (n *Normalizer) Normalize(text string) string {
	out := collapse(strings.ToLower(text))
	if out == "" {
		return ""
	}

	if n.lemmatizer != nil {
		out = n.lemmatize(out)
	}

	// A rewrite can expose another one (e.g. "there has" -> "there is"),
	// so repeat until the text settles.
	for i := 0; i < maxRewritePasses; i++ {
		next := rewriteOnce(out)
		if next == out {
			break
		}
		out = next
	}

	return out
}

const maxRewritePasses = 8

func rewriteOnce(text string) string {
	for _, rw := range connectiveRewrites {
		text = rw.pattern.ReplaceAllString(text, rw.replacement)
	}
	for _, rw := range patternRewrites {
		text = rw.pattern.ReplaceAllString(text, rw.replacement)
	}
	return collapse(text)
}

// lemmatize tries noun, then verb, then adjective and keeps the first lemma
// that differs from the word. Surrounding punctuation is preserved.
func (n *Normalizer) lemmatize(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		parts := wordCore.FindStringSubmatch(word)
		if parts == nil {
			continue
		}
		core := parts[2]
		lemma := core
		for _, pos := range []PartOfSpeech{Noun, Verb, Adjective} {
			lemma = strings.ToLower(n.lemmatizer.Lemma(core, pos))
			if lemma != core && lemma != "" {
				break
			}
			lemma = core
		}
		words[i] = parts[1] + lemma + parts[3]
	}
	return strings.Join(words, " ")
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// CommonPlurals maps the plural nouns that appear in typical syllogisms to
// their singular form. It has no verb table, so copulas are left alone.
func CommonPlurals() Dictionary {
	return Dictionary{
		Noun: {
			"humans":   "human",
			"men":      "man",
			"women":    "woman",
			"people":   "person",
			"children": "child",
			"mortals":  "mortal",
			"animals":  "animal",
			"mammals":  "mammal",
			"birds":    "bird",
			"cats":     "cat",
			"dogs":     "dog",
			"sets":     "set",
			"elements": "element",
			"numbers":  "number",
		},
	}
}
