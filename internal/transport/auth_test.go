package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpggio/caredesk/internal/domain/audit"
	"github.com/rpggio/caredesk/internal/repository"
	"github.com/rpggio/caredesk/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func actorOf(t *testing.T, resolver SessionResolver, header string) string {
	t.Helper()
	var actor string
	handler := CurrentUserMiddleware(resolver, slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = audit.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return actor
}

func TestCurrentUserMiddleware(t *testing.T) {
	resolver := &mocks.SessionResolver{}
	resolver.On("CurrentUser", mock.Anything, "token").Return("u1", nil)

	require.Equal(t, "u1", actorOf(t, resolver, "Bearer token"))
	resolver.AssertExpectations(t)
}

func TestCurrentUserMiddleware_Anonymous(t *testing.T) {
	resolver := &mocks.SessionResolver{}
	resolver.On("CurrentUser", mock.Anything, "stale").Return("", repository.ErrNotFound)
	resolver.On("CurrentUser", mock.Anything, "broken").Return("", errors.New("db closed"))

	require.Equal(t, audit.Anonymous, actorOf(t, resolver, ""))
	require.Equal(t, audit.Anonymous, actorOf(t, resolver, "Bearer "))
	require.Equal(t, audit.Anonymous, actorOf(t, resolver, "Bearer stale"))
	require.Equal(t, audit.Anonymous, actorOf(t, resolver, "Bearer broken"))
	require.Equal(t, audit.Anonymous, actorOf(t, nil, "Bearer token"))
}

func TestBearerToken(t *testing.T) {
	require.Equal(t, "abc", BearerToken("Bearer abc"))
	require.Equal(t, "abc", BearerToken("Bearer abc "))
	require.Equal(t, "", BearerToken(""))
}

func TestSessionMiddleware(t *testing.T) {
	var got string
	handler := SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Mcp-Session-Id", "sess1")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "sess1", got)
}
