package logic

import "strings"

// Kind tags a Statement with the logical shape it was classified as
type Kind string

const (
	KindUniversal   Kind = "universal"
	KindExistential Kind = "existential"
	KindImplication Kind = "implication"
	KindPredicate   Kind = "predicate"
	KindRelation    Kind = "relation"
	KindUnknown     Kind = "unknown"
)

// Relation is the fixed set of binary relations recognized in sentences
type Relation string

const (
	RelatedTo   Relation = "related_to"
	GreaterThan Relation = "greater_than"
	LessThan    Relation = "less_than"
	EqualTo     Relation = "equal_to"
	In          Relation = "in"
	SubsetOf    Relation = "subset_of"
)

// FunctionName is the relation name with separators stripped, as it appears in solver scripts
func (r Relation) FunctionName() string {
	return strings.ReplaceAll(string(r), "_", "")
}

// Statement is one classified logical fragment.
// Only the fields belonging to Kind are populated:
// universal, existential, implication and predicate use Subject and Predicate;
// relation uses Subject, Object and Relation; unknown carries nothing.
type Statement struct {
	Kind      Kind     `json:"type"`
	Subject   string   `json:"subject,omitempty"`
	Predicate string   `json:"predicate,omitempty"`
	Object    string   `json:"object,omitempty"`
	Relation  Relation `json:"relation,omitempty"`
}

// Unknown returns the statement used when no pattern matched
func Unknown() Statement {
	return Statement{Kind: KindUnknown}
}

// Document is an ordered list of premises followed by exactly one conclusion
type Document struct {
	Premises   []Statement `json:"premises"`
	Conclusion Statement   `json:"conclusion"`
}

// Script is solver-script text split into premise lines plus a conclusion expression
type Script struct {
	Premises   []string `json:"premises"`
	Conclusion string   `json:"conclusion"`
}
