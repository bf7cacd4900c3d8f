package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rpggio/caredesk/internal/repository"
)

// SessionRepository maps bearer tokens to signed-in users
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a session for userID under the hash of token
func (r *SessionRepository) Create(ctx context.Context, token, userID string) error {
	query := `
		INSERT INTO user_sessions (token_hash, user_id, created_at)
		VALUES (?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, HashToken(token), userID, time.Now()); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// CurrentUser returns the user id signed in with token
func (r *SessionRepository) CurrentUser(ctx context.Context, token string) (string, error) {
	hash := HashToken(token)

	var userID string
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM user_sessions WHERE token_hash = ?`, hash).Scan(&userID)
	if err == sql.ErrNoRows || (err == nil && userID == "") {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE user_sessions SET last_used = ? WHERE token_hash = ?`, time.Now(), hash); err != nil {
		return "", fmt.Errorf("failed to touch session: %w", err)
	}

	return userID, nil
}

// HashToken returns the stored form of a bearer token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
