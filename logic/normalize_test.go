package logic

import "testing"

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"Lowercase and trim", "  Hello   World ", "hello world"},
		{"If then", "If it rains then the ground is wet", "it rains implies the ground is wet"},
		{"Only if", "You pass only if you study", "you pass implies you study"},
		{"Every", "Every man is mortal", "all man is mortal"},
		{"Each", "each dog barks", "all dog barks"},
		{"Exists", "exists cat", "some cat"},
		{"There is", "There is a unicorn", "some a unicorn"},
		{"Contraction isn't", "Socrates isn't mortal", "socrates is not mortal"},
		{"Contraction aren't", "cats aren't dogs", "cats are not dogs"},
		{"Contraction doesn't", "it doesn't fly", "it does not fly"},
		{"Symbols", "A & B | C", "a and b or c"},
		{"Comma and", "red, and blue", "red and blue"},
		{"Has becomes is", "The cat has fur", "the cat is fur"},
		{"Greater than", "A is greater than B", "greaterthan(a, b)"},
		{"Less than", "a is less than b", "lessthan(a, b)"},
		{"Equal to", "a is equal to b", "equalto(a, b)"},
		{"Related to", "a is related to b", "relatedto(a, b)"},
		{"In", "x is in y", "in(x, y)"},
		{"Subset", "a is a subset of b", "subsetof(a, b)"},
		{"Empty", "   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// TestNormalizeIdempotent verifies a second pass leaves normalized text unchanged
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"If it rains then the ground is wet. Every man is mortal!",
		"There has been a problem",
		"Socrates isn't a god; however he is wise",
		"A is greater than B, and B is greater than C",
		"all humans are mortal. socrates is human.",
		"X only if Y. if p then q",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

// TestNormalizeConditionalsStayInSentence verifies rewrites do not reach across terminators
func TestNormalizeConditionalsStayInSentence(t *testing.T) {
	got := Normalize("If a then b. If c then d.")
	want := "a implies b. c implies d."
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeWithLemmatizer(t *testing.T) {
	dict := Dictionary{
		Noun: {"humans": "human", "leaves": "leaf"},
		Verb: {"runs": "run", "leaves": "leave"},
	}
	n := NewNormalizer(WithLemmatizer(dict))

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"Noun form", "All Humans", "all human"},
		{"Verb fallback keeps punctuation", "the dog runs.", "the dog run."},
		{"Noun wins over verb", "leaves", "leaf"},
		{"Unknown words kept", "socrates", "socrates"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// TestNormalizeLemmatizesBeforeConnectives verifies an inflected "has" is rewritten once lemmatized
func TestNormalizeLemmatizesBeforeConnectives(t *testing.T) {
	n := NewNormalizer(WithLemmatizer(Dictionary{Verb: {"had": "has"}}))

	got := n.Normalize("cat had fur")
	if got != "cat is fur" {
		t.Errorf("Normalize() = %q, want %q", got, "cat is fur")
	}
}

func TestCommonPlurals(t *testing.T) {
	n := NewNormalizer(WithLemmatizer(CommonPlurals()))

	got := n.Normalize("All humans are mortals.")
	if got != "all human are mortal." {
		t.Errorf("Normalize() = %q", got)
	}
}
