package logic

// Example is a natural-language argument ready for Compile
type Example struct {
	Premises   []string `json:"premises"`
	Conclusion string   `json:"conclusion"`
}

// Examples returns the built-in natural-language arguments keyed by name
func Examples() map[string]Example {
	return map[string]Example{
		"socrates": {
			Premises:   []string{"Socrates is a human.", "All humans are mortal."},
			Conclusion: "Socrates is mortal.",
		},
		"set": {
			Premises:   []string{"Set A is a subset of set B.", "Element x is in set A."},
			Conclusion: "Element x is in set B.",
		},
		"transitivity": {
			Premises: []string{
				"A is greater than B.",
				"B is greater than C.",
				"If x is greater than y and y is greater than z, then x is greater than z.",
			},
			Conclusion: "A is greater than C.",
		},
	}
}
