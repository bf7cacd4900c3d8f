package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/caredesk/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_CreateResolve(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "token-1", "u1"))

	userID, err := repo.CurrentUser(ctx, "token-1")
	require.NoError(t, err)
	require.Equal(t, "u1", userID)

	_, err = repo.CurrentUser(ctx, "other")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Create(ctx, "token-1", "u2")
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestHashToken(t *testing.T) {
	require.Len(t, HashToken("abc"), 64)
	require.NotEqual(t, HashToken("abc"), HashToken("abd"))
	require.Equal(t, HashToken("abc"), HashToken("abc"))
}
