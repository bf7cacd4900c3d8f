// Package collection is the list, form, submit and soft-delete workflow
// every dashboard entity shares. Entities supply a Definition; the Service
// does the rest.
package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/status"
	"github.com/rpggio/caredesk/internal/listview"
	"github.com/rpggio/caredesk/internal/validation"
)

// Action is the mode a form is opened in.
type Action string

const (
	Add  Action = "Add"
	Edit Action = "Edit"
)

// ParseAction accepts exactly Add or Edit.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case Add, Edit:
		return Action(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Write is one pending submission. Hooks may rewrite Fields before it is
// persisted.
type Write[T any] struct {
	Action Action
	// ID is empty on Add until the store assigns one.
	ID     string
	Input  T
	Fields map[string]any
	// Stored is the document being edited. Nil on Add.
	Stored *docstore.Document
	Now    time.Time
}

// Definition configures one entity collection.
type Definition[T any] struct {
	Collection string
	List       listview.Config[T]
	// Reads lists other collections the entity's service reads through the
	// cache.
	Reads []string
	// DeleteStatus is the status a soft delete moves a record to. Empty for
	// collections that cannot be soft-deleted.
	DeleteStatus status.Status
	// Retire adjusts the replacement document of a soft delete beyond its
	// status.
	Retire func(fields map[string]any)
	// TracksStatus stamps active on Add and preserves the stored status on
	// Edit.
	TracksStatus bool
	// Blank returns the default form values.
	Blank func() T
	// Validate adds checks the struct tags cannot express.
	Validate func(act Action, input T, errs validation.Errors)
	// Prepare runs after validation and before the write.
	Prepare func(ctx context.Context, w *Write[T]) error
	// AfterWrite runs once the write has been persisted.
	AfterWrite func(ctx context.Context, w *Write[T])
	// Present strips values that must not leave the server from rendered
	// rows and form values.
	Present func(T) T
}

func (d Definition[T]) present(v T) T {
	if d.Present != nil {
		return d.Present(v)
	}
	return v
}

func (d Definition[T]) blank() T {
	if d.Blank != nil {
		return d.Blank()
	}
	var zero T
	return zero
}
