// Package status models the soft-delete lifecycle shared by clients,
// drivers and users.
package status

import (
	"errors"
	"fmt"
	"maps"

	"github.com/rpggio/caredesk/internal/docstore"
)

// Status is the lifecycle flag stored in a record's status field.
type Status string

const (
	Active    Status = "active"
	NonActive Status = "non-active"
	Banned    Status = "banned"
)

// Field is the document field holding the status.
const Field = "status"

var (
	// ErrNotFound indicates no record carries the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidTransition indicates a status change the dashboard does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case Active, NonActive, Banned:
		return true
	}
	return false
}

// ValidateTransition allows only active → non-active and active → banned.
// Nothing restores a record once it has left active.
func ValidateTransition(from, to Status) error {
	if from == Active && (to == NonActive || to == Banned) {
		return nil
	}
	return fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, from, to)
}

// Of reads the status of a document.
func Of(doc docstore.Document) Status {
	s, _ := doc.Fields[Field].(string)
	return Status(s)
}

// Mutation is a full-document replacement the caller sends to the store.
type Mutation struct {
	Document docstore.Document
	From     Status
	To       Status
}

// SoftDelete builds the replacement for the record id in docs with every
// field preserved except status, which becomes to. The store is not touched.
func SoftDelete(docs []docstore.Document, id string, to Status) (Mutation, error) {
	for _, doc := range docs {
		if doc.ID != id {
			continue
		}
		from := Of(doc)
		if err := ValidateTransition(from, to); err != nil {
			return Mutation{}, err
		}
		fields := maps.Clone(doc.Fields)
		if fields == nil {
			fields = map[string]any{}
		}
		fields[Field] = string(to)
		return Mutation{
			Document: docstore.Document{ID: doc.ID, Fields: fields},
			From:     from,
			To:       to,
		}, nil
	}
	return Mutation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Stamp returns a copy of fields with status set to s.
func Stamp(fields map[string]any, s Status) map[string]any {
	out := maps.Clone(fields)
	if out == nil {
		out = map[string]any{}
	}
	out[Field] = string(s)
	return out
}
