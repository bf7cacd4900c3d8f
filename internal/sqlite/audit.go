package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/caredesk/internal/domain/audit"
)

// AuditRepository implements audit.Repository for SQLite
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Log inserts a new audit entry
func (r *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO audit_log (
			collection, record_id, actor, from_status, to_status, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.Collection,
		entry.RecordID,
		entry.Actor,
		entry.From,
		entry.To,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log audit entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = id
	}
	entry.CreatedAt = createdAt

	return nil
}

// List returns audit entries matching the given filters
func (r *AuditRepository) List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	query := `
		SELECT id, collection, record_id, actor, from_status, to_status, created_at
		FROM audit_log
	`

	args := []any{}
	conditions := []string{}

	if opts.Collection != "" {
		conditions = append(conditions, "collection = ?")
		args = append(args, opts.Collection)
	}
	if opts.RecordID != nil {
		conditions = append(conditions, "record_id = ?")
		args = append(args, *opts.RecordID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	} else if opts.Offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.Collection,
			&entry.RecordID,
			&entry.Actor,
			&entry.From,
			&entry.To,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}

	return entries, nil
}
