package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresRelationStore implements RelationStore backed by PostgreSQL.
// The schema lives in migrations/.
type PostgresRelationStore struct {
	db *sql.DB
}

// NewPostgresRelationStore creates a new PostgreSQL-backed RelationStore
func NewPostgresRelationStore(db *sql.DB) *PostgresRelationStore {
	return &PostgresRelationStore{db: db}
}

// Save inserts rel. Saving an existing triple keeps its ID and creation
// time and replaces its properties when new ones are given.
func (s *PostgresRelationStore) Save(ctx context.Context, rel *Relation) error {
	if err := prepare(rel); err != nil {
		return err
	}

	props, err := encodeProps(rel.Properties)
	if err != nil {
		return err
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO relations (id, source, relation_type, target, properties)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (source, relation_type, target)
		DO UPDATE SET properties = COALESCE(EXCLUDED.properties, relations.properties)
		RETURNING id, created_at
	`, rel.ID, rel.Source, rel.RelationType, rel.Target, props).Scan(&rel.ID, &rel.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save relation: %w", err)
	}

	return nil
}

// Get retrieves a relation by ID
func (s *PostgresRelationStore) Get(ctx context.Context, id string) (*Relation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("relation %s: %w", id, ErrNotFound)
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, relation_type, target, properties, created_at
		FROM relations
		WHERE id = $1
	`, id)

	rel, err := scanRelation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("relation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get relation: %w", err)
	}
	return rel, nil
}

// Find matches substrings of source and target, and of the type against the
// normalized query
func (s *PostgresRelationStore) Find(ctx context.Context, query string, limit int) ([]*Relation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, relation_type, target, properties, created_at
		FROM relations
		WHERE strpos(source, $1) > 0
		   OR strpos(target, $1) > 0
		   OR ($2::text <> '' AND strpos(relation_type, $2) > 0)
		ORDER BY created_at ASC, id ASC
		LIMIT $3
	`, query, NormalizeType(query), clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to find relations: %w", err)
	}
	defer rows.Close()

	var found []*Relation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relation: %w", err)
		}
		found = append(found, rel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating relations: %w", err)
	}

	return found, nil
}

// Delete removes a relation from the database
func (s *PostgresRelationStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("relation %s: %w", id, ErrNotFound)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM relations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete relation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("relation %s: %w", id, ErrNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRelation(row scanner) (*Relation, error) {
	var (
		rel   Relation
		props []byte
	)
	if err := row.Scan(&rel.ID, &rel.Source, &rel.RelationType, &rel.Target, &props, &rel.CreatedAt); err != nil {
		return nil, err
	}
	if len(props) > 0 {
		if err := json.Unmarshal(props, &rel.Properties); err != nil {
			return nil, fmt.Errorf("failed to decode properties: %w", err)
		}
	}
	return &rel, nil
}

func encodeProps(p map[string]string) (any, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode properties: %w", err)
	}
	return string(data), nil
}
