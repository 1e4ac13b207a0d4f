package main

import (
	"github.com/liamcoop/logicgraph/internal/logger"
	"github.com/liamcoop/logicgraph/model"
	"github.com/liamcoop/logicgraph/scriptcheck"
	"github.com/liamcoop/logicgraph/store"
)

// API request and response models

// ArgumentRequest carries premises and a conclusion, as text or as script lines
type ArgumentRequest struct {
	Premises   []string `json:"premises" example:"Socrates is human.,All humans are mortal."`
	Conclusion string   `json:"conclusion" example:"Socrates is mortal."`
} // @name ArgumentRequest

// GenerateRequest is a structured model to compile
type GenerateRequest struct {
	Model            model.SimpleModel `json:"model"`
	CustomDomainName string            `json:"customDomainName,omitempty" example:"Person"`
} // @name GenerateRequest

// SaveRelationsRequest holds explicit relations, or an expression whose
// edges are saved with RelationType
type SaveRelationsRequest struct {
	Relations    []store.Relation `json:"relations,omitempty"`
	Expression   string           `json:"expression,omitempty" example:"A→{B,C}"`
	RelationType string           `json:"relationType,omitempty" example:"KNOWS"`
} // @name SaveRelationsRequest

// RelationsListResponse is the result of a relation search
type RelationsListResponse struct {
	Relations []*store.Relation `json:"relations"`
	Count     int               `json:"count" example:"2"`
} // @name RelationsListResponse

// ExampleNamesResponse lists the canonical example names
type ExampleNamesResponse struct {
	Examples []string `json:"examples"`
} // @name ExampleNamesResponse

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string              `json:"error" example:"invalid model: please add at least one predicate with a name"`
	Details string              `json:"details,omitempty"`
	Issues  []scriptcheck.Issue `json:"issues,omitempty"`
} // @name ErrorResponse

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string          `json:"status" example:"healthy"`
	Store    string          `json:"store" example:"postgres"`
	Cache    string          `json:"cache" example:"redis"`
	Prover   string          `json:"prover" example:"http://localhost:5000"`
	Error    string          `json:"error,omitempty"`
	Counters logger.Counters `json:"counters"`
} // @name HealthResponse
