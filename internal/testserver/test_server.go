package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/caredesk/internal/app"
	"github.com/rpggio/caredesk/internal/cache"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/audit"
	"github.com/rpggio/caredesk/internal/domain/credential"
	"github.com/rpggio/caredesk/internal/mcp"
	"github.com/rpggio/caredesk/internal/sqlite"
	"github.com/rpggio/caredesk/internal/transport"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestServer is the full HTTP stack over an in-memory SQLite database.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Store    *docstore.Store
	Caches   *cache.Manager
	Services *app.Services
	Sessions *sqlite.SessionRepository
}

// New starts a server whose snapshot cache is fed by live subscriptions,
// as in production.
func New(t *testing.T) *TestServer {
	t.Helper()
	credential.Cost = bcrypt.MinCost

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	store := docstore.New(sqlite.NewDocumentRepository(db), nil)
	caches, err := cache.NewManager(cache.DefaultCapacity, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	wait, err := caches.Watch(ctx, store, app.Kinds...)
	require.NoError(t, err)

	auditSvc := audit.NewService(sqlite.NewAuditRepository(db), nil)
	services := app.New(store, caches, auditSvc, nil)
	sessions := sqlite.NewSessionRepository(db)

	mcpServer := mcp.NewServer(mcp.Config{
		Resources: services.Resources(),
		Rates:     services.Rates,
		Resolver:  sessions,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Resources:  services.Resources(),
		Rates:      services.Rates,
		Audit:      auditSvc,
		Subscriber: store,
		Resolver:   sessions,
		MCP:        mcpHandler,
	}))

	t.Cleanup(func() {
		server.Close()
		cancel()
		wait()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Store:    store,
		Caches:   caches,
		Services: services,
		Sessions: sessions,
	}
}

// SignIn stores a session for userID and returns its bearer token.
func (ts *TestServer) SignIn(t *testing.T, userID string) string {
	t.Helper()
	token := "token-" + userID
	require.NoError(t, ts.Sessions.Create(context.Background(), token, userID))
	return token
}

// Seed writes fields as document id of collection, bypassing validation,
// and drops the cached snapshot so the next request sees the write.
func (ts *TestServer) Seed(t *testing.T, collection, id string, fields map[string]any) {
	t.Helper()
	require.NoError(t, ts.Store.Set(context.Background(), collection, id, fields))
	ts.Caches.Drop(collection)
}
