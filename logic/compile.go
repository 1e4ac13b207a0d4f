package logic

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyPremises   = errors.New("please enter at least one premise")
	ErrEmptyConclusion = errors.New("please enter a conclusion")
)

// sentenceBreaks splits text into statements on terminators and contrast conjunctions
var sentenceBreaks = regexp.MustCompile(`(?i)\.|\?|!|;|\bbut\b|\bhowever\b`)

const terminators = ".?!;"

// ValidateInput reports the first missing piece of a premises/conclusion pair
func ValidateInput(premises []string, conclusion string) error {
	hasPremise := false
	for _, p := range premises {
		if strings.TrimSpace(p) != "" {
			hasPremise = true
			break
		}
	}
	if !hasPremise {
		return ErrEmptyPremises
	}
	if strings.TrimSpace(conclusion) == "" {
		return ErrEmptyConclusion
	}
	return nil
}

// Compiler turns premise and conclusion text into a Document
type Compiler struct {
	normalizer *Normalizer
}

// NewCompiler creates a Compiler that normalizes with n (default Normalizer when nil)
func NewCompiler(n *Normalizer) *Compiler {
	if n == nil {
		n = defaultNormalizer
	}
	return &Compiler{normalizer: n}
}

// Compile uses the default Normalizer
func Compile(premises []string, conclusion string) (Document, bool) {
	return NewCompiler(nil).Compile(premises, conclusion)
}

// Compile returns false when there is no usable premise or conclusion, or
// when analysis fails. The final segment of the joined text is always the
// conclusion; every earlier segment is a premise.
func (c *Compiler) Compile(premises []string, conclusion string) (doc Document, ok bool) {
	if ValidateInput(premises, conclusion) != nil {
		return Document{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			doc, ok = Document{}, false
		}
	}()

	segments := c.Segments(JoinText(premises, conclusion))

	doc.Premises = make([]Statement, 0, len(segments))
	doc.Conclusion = Unknown()
	for i, seg := range segments {
		st := Classify(seg)
		if i == len(segments)-1 {
			doc.Conclusion = st
			break
		}
		doc.Premises = append(doc.Premises, st)
	}

	return doc, true
}

// Segments normalizes text and splits it into non-empty statements
func (c *Compiler) Segments(text string) []string {
	parts := sentenceBreaks.Split(c.normalizer.Normalize(text), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinText terminates every non-empty premise and the conclusion and joins them with spaces
func JoinText(premises []string, conclusion string) string {
	parts := make([]string, 0, len(premises)+1)
	for _, p := range premises {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, terminate(p))
		}
	}
	parts = append(parts, terminate(strings.TrimSpace(conclusion)))
	return strings.Join(parts, " ")
}

func terminate(s string) string {
	if s == "" || strings.ContainsAny(s[len(s)-1:], terminators) {
		return s
	}
	return s + "."
}
