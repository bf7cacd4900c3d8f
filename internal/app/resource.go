package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpggio/caredesk/internal/apierror"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/domain/status"
	"github.com/rpggio/caredesk/internal/listview"
)

// Entity is what a collection service offers a table. T is the stored
// record, R the rendered row and F the form state.
type Entity[T, R, F any] interface {
	Name() string
	ParseQuery(p listview.QueryParams) (listview.Query, error)
	List(ctx context.Context, p listview.QueryParams) (listview.Result[R], error)
	RenderSnapshot(ctx context.Context, snap docstore.Snapshot, q listview.Query) (listview.Result[R], error)
	Form(ctx context.Context, act, id string) (F, error)
	Submit(ctx context.Context, act collection.Action, id string, input T) (string, error)
	CanSoftDelete() bool
	SoftDelete(ctx context.Context, id string) (status.Mutation, error)
}

// Resource is one collection with its record type erased, so transports
// can mount every table the same way.
type Resource struct {
	Name       string
	List       func(ctx context.Context, p listview.QueryParams) (any, error)
	ParseQuery func(p listview.QueryParams) (listview.Query, error)
	Render     func(ctx context.Context, snap docstore.Snapshot, q listview.Query) (any, error)
	Form       func(ctx context.Context, act, id string) (any, error)
	// Submit decodes a JSON record and writes it. It is nil for read-only
	// collections.
	Submit func(ctx context.Context, act collection.Action, id string, body []byte) (string, error)
	// SoftDelete is nil for collections without soft delete.
	SoftDelete func(ctx context.Context, id string) (status.Mutation, error)
}

// NewResource erases the types of e.
func NewResource[T, R, F any](e Entity[T, R, F]) Resource {
	res := Resource{
		Name:       e.Name(),
		ParseQuery: e.ParseQuery,
		List: func(ctx context.Context, p listview.QueryParams) (any, error) {
			return e.List(ctx, p)
		},
		Render: func(ctx context.Context, snap docstore.Snapshot, q listview.Query) (any, error) {
			return e.RenderSnapshot(ctx, snap, q)
		},
		Form: func(ctx context.Context, act, id string) (any, error) {
			return e.Form(ctx, act, id)
		},
		Submit: func(ctx context.Context, act collection.Action, id string, body []byte) (string, error) {
			var input T
			if err := json.Unmarshal(body, &input); err != nil {
				return "", fmt.Errorf("%w: decoding %s: %w", apierror.ErrBadRequest, e.Name(), err)
			}
			return e.Submit(ctx, act, id, input)
		},
	}
	if e.CanSoftDelete() {
		res.SoftDelete = e.SoftDelete
	}
	return res
}

// Find returns the resource named name.
func Find(resources []Resource, name string) (Resource, bool) {
	for _, res := range resources {
		if res.Name == name {
			return res, true
		}
	}
	return Resource{}, false
}
