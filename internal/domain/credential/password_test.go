package credential

import (
	"testing"

	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	Cost = bcrypt.MinCost
}

func TestHashmatches(t *testing.T) {
	hashed, err := Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hashed)
	require.True(t, matches(hashed, "s3cret"))
	require.False(t, matches(hashed, "guess"))
}

func TestApplyHashesNewPassword(t *testing.T) {
	fields := map[string]any{"name": "Ann", "password": "s3cret"}
	require.NoError(t, Apply(fields, nil))

	hashed, ok := fields["password"].(string)
	require.True(t, ok)
	require.True(t, matches(hashed, "s3cret"))
}

func TestApplyKeepsStoredHash(t *testing.T) {
	stored := &docstore.Document{ID: "u1", Fields: map[string]any{"password": "$2a$stored"}}
	fields := map[string]any{"name": "Ann", "password": ""}
	require.NoError(t, Apply(fields, stored))
	require.Equal(t, "$2a$stored", fields["password"])
}

func TestApplyWithoutPasswordOrStoredHash(t *testing.T) {
	fields := map[string]any{"name": "Ann", "password": ""}
	require.NoError(t, Apply(fields, &docstore.Document{ID: "u1", Fields: map[string]any{}}))
	require.NotContains(t, fields, "password")
}

func matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
