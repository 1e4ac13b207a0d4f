// Package store persists saved relations, the (source, type, target)
// triples users keep from relation graphs.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultFindLimit caps Find results when the caller passes no limit
const DefaultFindLimit = 50

var (
	ErrNotFound        = errors.New("relation not found")
	ErrInvalidRelation = errors.New("source, target and relation type are required")
)

// Relation is one saved edge
type Relation struct {
	ID           string            `json:"id"`
	Source       string            `json:"source"`
	RelationType string            `json:"relation_type"`
	Target       string            `json:"target"`
	Properties   map[string]string `json:"properties,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// RelationStore manages saved relation persistence and lookup
type RelationStore interface {
	// Save stores rel, or returns the ID of the identical triple already saved
	Save(ctx context.Context, rel *Relation) error

	// Get a relation by ID
	Get(ctx context.Context, id string) (*Relation, error)

	// Find relations whose source or target contains query, or whose type
	// contains its normalized form, oldest first
	Find(ctx context.Context, query string, limit int) ([]*Relation, error)

	// Delete a relation
	Delete(ctx context.Context, id string) error
}

var typeSeparators = regexp.MustCompile(`[^A-Za-z0-9]+`)

// NormalizeType upper-cases a relation type and joins words with underscores,
// so "works for" and "WORKS_FOR" are the same type.
func NormalizeType(t string) string {
	t = typeSeparators.ReplaceAllString(strings.TrimSpace(t), "_")
	return strings.ToUpper(strings.Trim(t, "_"))
}

// prepare validates rel and fills the ID and normalized type
func prepare(rel *Relation) error {
	rel.Source = strings.TrimSpace(rel.Source)
	rel.Target = strings.TrimSpace(rel.Target)
	rel.RelationType = NormalizeType(rel.RelationType)
	if rel.Source == "" || rel.Target == "" || rel.RelationType == "" {
		return ErrInvalidRelation
	}
	if rel.ID == "" {
		rel.ID = uuid.New().String()
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > DefaultFindLimit {
		return DefaultFindLimit
	}
	return limit
}

type tripleKey struct {
	source, relType, target string
}

// InMemoryRelationStore implements RelationStore using in-memory maps.
// Thread-safe with RWMutex.
type InMemoryRelationStore struct {
	relations map[string]*Relation
	triples   map[tripleKey]string
	order     map[string]uint64
	next      uint64
	mu        sync.RWMutex
}

// NewInMemoryRelationStore creates a new in-memory relation store
func NewInMemoryRelationStore() *InMemoryRelationStore {
	return &InMemoryRelationStore{
		relations: make(map[string]*Relation),
		triples:   make(map[tripleKey]string),
		order:     make(map[string]uint64),
	}
}

func (s *InMemoryRelationStore) Save(_ context.Context, rel *Relation) error {
	if err := prepare(rel); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := tripleKey{rel.Source, rel.RelationType, rel.Target}
	if id, exists := s.triples[key]; exists {
		existing := s.relations[id]
		rel.ID, rel.CreatedAt = existing.ID, existing.CreatedAt
		if rel.Properties != nil {
			existing.Properties = copyProps(rel.Properties)
		}
		return nil
	}
	if _, exists := s.relations[rel.ID]; exists {
		return fmt.Errorf("relation with ID %s already exists", rel.ID)
	}

	rel.CreatedAt = time.Now()
	stored := *rel
	stored.Properties = copyProps(rel.Properties)
	s.relations[rel.ID] = &stored
	s.triples[key] = rel.ID
	s.next++
	s.order[rel.ID] = s.next
	return nil
}

func (s *InMemoryRelationStore) Get(_ context.Context, id string) (*Relation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rel, exists := s.relations[id]
	if !exists {
		return nil, fmt.Errorf("relation %s: %w", id, ErrNotFound)
	}
	out := *rel
	out.Properties = copyProps(rel.Properties)
	return &out, nil
}

func (s *InMemoryRelationStore) Find(_ context.Context, query string, limit int) ([]*Relation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	typeQuery := NormalizeType(query)
	var found []*Relation
	for _, rel := range s.relations {
		if strings.Contains(rel.Source, query) || strings.Contains(rel.Target, query) ||
			(typeQuery != "" && strings.Contains(rel.RelationType, typeQuery)) {
			out := *rel
			out.Properties = copyProps(rel.Properties)
			found = append(found, &out)
		}
	}

	sort.Slice(found, func(i, j int) bool {
		return s.order[found[i].ID] < s.order[found[j].ID]
	})

	if limit = clampLimit(limit); len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (s *InMemoryRelationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rel, exists := s.relations[id]
	if !exists {
		return fmt.Errorf("relation %s: %w", id, ErrNotFound)
	}
	delete(s.triples, tripleKey{rel.Source, rel.RelationType, rel.Target})
	delete(s.relations, id)
	delete(s.order, id)
	return nil
}

func copyProps(p map[string]string) map[string]string {
	if p == nil {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
