package model

import (
	"errors"
	"fmt"
)

// RuleType tags the variant a Rule carries
type RuleType string

const (
	RulePredicate   RuleType = "predicate"
	RuleImplication RuleType = "implication"
	RuleUniversal   RuleType = "universal"
)

const (
	// Variable marks an implication antecedent that is universally quantified
	Variable = "variable"

	// CustomDomain means the domain name is supplied separately to Generate
	CustomDomain = "Custom"

	// DefaultDomain is used when a model or script names no domain
	DefaultDomain = "Object"
)

// Predicate is a named unary boolean function over the domain
type Predicate struct {
	Name string `json:"name"`
}

// Antecedent is the left side of an implication rule
type Antecedent struct {
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// Consequent is the right side of an implication rule
type Consequent struct {
	Predicate string `json:"predicate"`
}

// Rule is one authored assertion.
//
// predicate rules use Predicate and Object, implication rules use Antecedent
// and Consequent, universal rules use Predicate only.
type Rule struct {
	Type       RuleType   `json:"type"`
	Predicate  string     `json:"predicate,omitempty"`
	Object     string     `json:"object,omitempty"`
	Antecedent Antecedent `json:"antecedent"`
	Consequent Consequent `json:"consequent"`
}

// SimpleModel is the structured alternative to free-text premises
type SimpleModel struct {
	DomainName          string      `json:"domainName"`
	Predicates          []Predicate `json:"predicates"`
	Objects             []string    `json:"objects"`
	Rules               []Rule      `json:"rules"`
	ConclusionPredicate string      `json:"conclusionPredicate"`
	ConclusionObject    string      `json:"conclusionObject"`
}

// Generated is the solver script produced from a SimpleModel
type Generated struct {
	Premises   []string `json:"premises"`
	Conclusion string   `json:"conclusion"`
	Code       string   `json:"code"`
}

var (
	ErrNoPredicates   = errors.New("please add at least one predicate with a name")
	ErrNoObjects      = errors.New("please add at least one object with a name")
	ErrNoConclusion   = errors.New("please select a conclusion predicate and object")
	ErrNoCustomDomain = errors.New("please enter a custom domain name")
)

// ValidationError reports missing required model input
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid model: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
