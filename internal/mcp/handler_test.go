package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rpggio/caredesk/internal/apierror"
	"github.com/rpggio/caredesk/internal/app"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/audit"
	"github.com/rpggio/caredesk/internal/domain/client"
	"github.com/rpggio/caredesk/internal/domain/rate"
	"github.com/rpggio/caredesk/internal/listview"
	"github.com/stretchr/testify/require"
)

type rateStub struct {
	quoteFn func(context.Context, float64, float64) (float64, error)
}

func (r rateStub) Quote(ctx context.Context, hours, distance float64) (float64, error) {
	return r.quoteFn(ctx, hours, distance)
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func seededServices(t *testing.T) *app.Services {
	t.Helper()
	store := docstore.New(docstore.NewMemory(), nil)
	ctx := context.Background()
	for id, name := range map[string]string{"c1": "Ann Lee", "c2": "Bo Chen", "c3": "Cy Diaz"} {
		require.NoError(t, store.Set(ctx, docstore.Clients, id, map[string]any{"name": name, "status": "active"}))
	}
	return app.New(store, nil, nil, nil)
}

func TestHandlerList(t *testing.T) {
	svcs := seededServices(t)
	h := NewHandler(svcs.Resources(), nil)

	out, err := h.Handle(context.Background(), "list_clients", mustJSON(t, map[string]any{
		"sort": "name", "order": "desc", "rowsPerPage": 5,
	}))
	require.NoError(t, err)
	res := out.(listview.Result[client.Client])
	require.Equal(t, 3, res.TotalCount)
	require.Equal(t, "Cy Diaz", res.Rows[0].Name)
	require.Zero(t, res.EmptyRowCount)
}

func TestHandlerListRejectsPageSize(t *testing.T) {
	h := NewHandler(seededServices(t).Resources(), nil)

	_, err := h.Handle(context.Background(), "list_clients", mustJSON(t, map[string]any{"rowsPerPage": 7}))
	require.ErrorIs(t, err, listview.ErrInvalidPageSize)
}

func TestHandlerDelete(t *testing.T) {
	svcs := seededServices(t)
	h := NewHandler(svcs.Resources(), nil)
	ctx := audit.WithActor(context.Background(), "u1")

	out, err := h.Handle(ctx, "delete_clients", mustJSON(t, DeleteParams{ID: "c2"}))
	require.NoError(t, err)
	require.Equal(t, DeleteResponse{ID: "c2", From: "active", To: "non-active"}, out)

	snap, err := svcs.Store.Snapshot(ctx, docstore.Clients)
	require.NoError(t, err)
	doc, _ := snap.Find("c2")
	require.Equal(t, map[string]any{"name": "Bo Chen", "status": "non-active"}, doc.Fields)
}

func TestHandlerDeleteUnsupportedCollection(t *testing.T) {
	h := NewHandler(seededServices(t).Resources(), nil)

	_, err := h.Handle(context.Background(), "delete_ndis", mustJSON(t, DeleteParams{ID: "n1"}))
	require.ErrorIs(t, err, ErrUnknownTool)
}

func TestHandlerQuote(t *testing.T) {
	var gotHours, gotDistance float64
	h := NewHandler(nil, rateStub{quoteFn: func(_ context.Context, hours, distance float64) (float64, error) {
		gotHours, gotDistance = hours, distance
		return 21, nil
	}})

	out, err := h.Handle(context.Background(), quoteTool, mustJSON(t, QuoteParams{Hours: 3, Distance: 10}))
	require.NoError(t, err)
	require.Equal(t, QuoteResponse{Hours: 3, Distance: 10, DriverPaid: 21}, out)
	require.Equal(t, 3.0, gotHours)
	require.Equal(t, 10.0, gotDistance)
}

func TestHandlerQuoteErrors(t *testing.T) {
	h := NewHandler(nil, rateStub{quoteFn: func(context.Context, float64, float64) (float64, error) {
		return 0, rate.ErrNotConfigured
	}})
	ctx := context.Background()

	_, err := h.Handle(ctx, quoteTool, mustJSON(t, QuoteParams{Hours: 1}))
	require.ErrorIs(t, err, rate.ErrNotConfigured)

	_, err = h.Handle(ctx, quoteTool, mustJSON(t, QuoteParams{Hours: -1}))
	require.ErrorIs(t, err, apierror.ErrBadRequest)

	_, err = h.Handle(ctx, quoteTool, json.RawMessage(`{"hours":"one"}`))
	require.ErrorIs(t, err, apierror.ErrBadRequest)
}

func TestHandlerUnknownTool(t *testing.T) {
	h := NewHandler(seededServices(t).Resources(), nil)

	for _, name := range []string{"list_variable", "create_project", ""} {
		_, err := h.Handle(context.Background(), name, nil)
		require.ErrorIs(t, err, ErrUnknownTool, name)
	}
}

func TestToolCatalog(t *testing.T) {
	catalog := buildToolCatalog(seededServices(t).Resources())

	names := map[string]bool{}
	for _, tool := range catalog {
		names[tool.Name] = true
		require.Equal(t, "object", tool.InputSchema["type"])
	}
	for _, want := range []string{
		"list_clients", "list_drivers", "list_jobs", "list_users", "list_ndis", "list_refferedby",
		"delete_clients", "delete_drivers", "delete_users", quoteTool,
	} {
		require.True(t, names[want], want)
	}
	require.False(t, names["delete_ndis"])
	require.False(t, names["delete_jobs"])
	require.Len(t, catalog, 10)
}
