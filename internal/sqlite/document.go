package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/repository"
)

// DocumentRepository implements docstore.Backend for SQLite
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// List returns every document of a collection in insertion order
func (r *DocumentRepository) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	query := `
		SELECT id, data
		FROM documents
		WHERE collection = ?
		ORDER BY rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []docstore.Document{}
	for rows.Next() {
		var id string
		var data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		var fields map[string]any
		if err := json.Unmarshal([]byte(data), &fields); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
		docs = append(docs, docstore.Document{ID: id, Fields: fields})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, nil
}

// Insert stores a new document
func (r *DocumentRepository) Insert(ctx context.Context, collection string, doc docstore.Document) error {
	data, err := encodeFields(doc.Fields)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (collection, id, data, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?)
	`

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query, collection, doc.ID, data, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

// Replace overwrites a document, creating it when missing. The row keeps its
// position so snapshot order does not change on edit.
func (r *DocumentRepository) Replace(ctx context.Context, collection string, doc docstore.Document) error {
	data, err := encodeFields(doc.Fields)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (collection, id, data, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = excluded.data,
			modified_at = excluded.modified_at
	`

	now := time.Now()
	if _, err := r.db.ExecContext(ctx, query, collection, doc.ID, data, now, now); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}

	return nil
}

func encodeFields(fields map[string]any) (string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}
