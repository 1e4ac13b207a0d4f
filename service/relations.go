package service

import (
	"context"
	"errors"
	"strings"

	"github.com/liamcoop/logicgraph/graph"
	"github.com/liamcoop/logicgraph/internal/logger"
	"github.com/liamcoop/logicgraph/relation"
	"github.com/liamcoop/logicgraph/store"
)

// GraphRequest describes a relation expression to draw
type GraphRequest struct {
	Expression        string  `json:"expression"`
	Layout            string  `json:"layout"`
	NodeSize          float64 `json:"nodeSize"`
	SizeByConnections bool    `json:"sizeByConnections"`
}

// Graph parses, sizes and lays out a relation expression. Clauses the
// parser does not recognise are skipped, so the graph may be empty.
func (s *Service) Graph(_ context.Context, req GraphRequest) (*graph.Graph, error) {
	if strings.TrimSpace(req.Expression) == "" {
		return nil, ErrEmptyExpression
	}

	size := req.NodeSize
	if size <= 0 {
		size = graph.DefaultNodeSize
	}

	edges := relation.Parse(req.Expression)
	g := graph.Build(edges, size)
	graph.Size(g, size, req.SizeByConnections)
	s.layout.Layout(g, graph.ParseKind(req.Layout))

	logger.Debug("Built relation graph", "edges", len(edges), "nodes", g.Order(), "layout", req.Layout)
	return g, nil
}

// DefaultRelationType labels edges saved from an expression with no type
const DefaultRelationType = "RELATED_TO"

// RelationsFromExpression turns each directed edge of a relation
// expression into a saveable triple. Bidirectional edges give two triples.
func RelationsFromExpression(expression, relationType string) []store.Relation {
	if strings.TrimSpace(relationType) == "" {
		relationType = DefaultRelationType
	}

	var out []store.Relation
	for _, e := range relation.Parse(expression) {
		out = append(out, store.Relation{Source: e.From, RelationType: relationType, Target: e.To})
		if e.Bidirectional {
			out = append(out, store.Relation{Source: e.To, RelationType: relationType, Target: e.From})
		}
	}
	return out
}

// FailedRelation is a relation that could not be saved
type FailedRelation struct {
	Relation store.Relation `json:"relation"`
	Error    string         `json:"error"`
}

// SaveReport counts saved and rejected relations
type SaveReport struct {
	SuccessCount    int              `json:"success_count"`
	FailedCount     int              `json:"failed_count"`
	Saved           []store.Relation `json:"saved"`
	FailedRelations []FailedRelation `json:"failed_relations,omitempty"`
}

// SaveRelations saves each relation independently; one failure does not
// stop the rest. The error is non-nil only when the context ends.
func (s *Service) SaveRelations(ctx context.Context, rels []store.Relation) (SaveReport, error) {
	report := SaveReport{Saved: []store.Relation{}}
	for _, r := range rels {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		rel := r
		if err := s.relations.Save(ctx, &rel); err != nil {
			report.FailedCount++
			report.FailedRelations = append(report.FailedRelations, FailedRelation{Relation: r, Error: err.Error()})
			if !errors.Is(err, store.ErrInvalidRelation) {
				logger.Error("Failed to save relation", "source", r.Source, "target", r.Target, "error", err)
			}
			continue
		}
		report.SuccessCount++
		report.Saved = append(report.Saved, rel)
	}

	logger.Info("Saved relations", "success", report.SuccessCount, "failed", report.FailedCount)
	return report, nil
}

// FindRelations searches saved relations
func (s *Service) FindRelations(ctx context.Context, query string, limit int) ([]*store.Relation, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	found, err := s.relations.Find(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, err
	}
	if found == nil {
		found = []*store.Relation{}
	}
	return found, nil
}

// GetRelation returns one saved relation
func (s *Service) GetRelation(ctx context.Context, id string) (*store.Relation, error) {
	return s.relations.Get(ctx, id)
}

// DeleteRelation removes one saved relation
func (s *Service) DeleteRelation(ctx context.Context, id string) error {
	if err := s.relations.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Deleted relation", "id", id)
	return nil
}
