// Package service wires the compilers, linter, prover, cache and relation
// store together for the HTTP API and the CLI.
package service

import (
	"errors"
	"fmt"

	"github.com/liamcoop/logicgraph/cache"
	"github.com/liamcoop/logicgraph/graph"
	"github.com/liamcoop/logicgraph/logic"
	"github.com/liamcoop/logicgraph/prover"
	"github.com/liamcoop/logicgraph/scriptcheck"
	"github.com/liamcoop/logicgraph/store"
)

var (
	ErrNotCompiled     = errors.New("no logical structure could be derived from the input")
	ErrNoProver        = errors.New("no prover configured")
	ErrUnknownExample  = errors.New("unknown example")
	ErrEmptyExpression = errors.New("please enter a relation expression")
	ErrEmptyQuery      = errors.New("query parameter is required")
)

// LintError rejects a script before it reaches the prover
type LintError struct {
	Report scriptcheck.Report
}

func (e *LintError) Error() string {
	switch n := len(e.Report.Issues); n {
	case 0:
		return "script failed lint"
	case 1:
		return fmt.Sprintf("script failed lint: %s", e.Report.Issues[0])
	default:
		return fmt.Sprintf("script failed lint: %s (and %d more)", e.Report.Issues[0], n-1)
	}
}

// Service is safe for concurrent use when its collaborators are
type Service struct {
	compiler  *logic.Compiler
	checker   *scriptcheck.Checker
	prover    prover.Prover
	cache     cache.ResultCache
	relations store.RelationStore
	layout    *graph.Engine
}

type Option func(*Service)

func WithProver(p prover.Prover) Option {
	return func(s *Service) { s.prover = p }
}

func WithCache(c cache.ResultCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithRelationStore(r store.RelationStore) Option {
	return func(s *Service) { s.relations = r }
}

// WithNormalizer replaces the default Normalizer used by Compile
func WithNormalizer(n *logic.Normalizer) Option {
	return func(s *Service) { s.compiler = logic.NewCompiler(n) }
}

func WithLayoutEngine(e *graph.Engine) Option {
	return func(s *Service) { s.layout = e }
}

// New builds a Service. Without options it uses an in-memory cache and
// relation store and has no prover.
func New(opts ...Option) (*Service, error) {
	checker, err := scriptcheck.NewChecker()
	if err != nil {
		return nil, fmt.Errorf("failed to create script checker: %w", err)
	}

	s := &Service{
		compiler:  logic.NewCompiler(nil),
		checker:   checker,
		cache:     cache.NewInMemoryResultCache(cache.DefaultConfig()),
		relations: store.NewInMemoryRelationStore(),
		layout:    graph.NewEngine(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
