package docstore

import (
	"encoding/json"
	"fmt"
	"time"
)

// Collection names used by the dashboard.
const (
	Clients      = "clients"
	Drivers      = "drivers"
	Jobs         = "jobs"
	Users        = "users"
	Ndis         = "ndis"
	Variable     = "variable"
	Coordinators = "refferedby"
)

// Document is one stored record: an id plus its fields.
type Document struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Snapshot is a consistent, point-in-time copy of a collection.
type Snapshot struct {
	Collection string     `json:"collection"`
	Documents  []Document `json:"documents"`
	At         time.Time  `json:"at"`
}

// Find returns the document with id.
func (s Snapshot) Find(id string) (Document, bool) {
	return Find(s.Documents, id)
}

// Find returns the document with id from docs.
func Find(docs []Document, id string) (Document, bool) {
	for _, doc := range docs {
		if doc.ID == id {
			return doc, true
		}
	}
	return Document{}, false
}

// Decode turns a document into T as {id, ...fields}.
func Decode[T any](doc Document) (T, error) {
	var out T
	merged := make(map[string]any, len(doc.Fields)+1)
	for k, v := range doc.Fields {
		merged[k] = v
	}
	merged["id"] = doc.ID

	data, err := json.Marshal(merged)
	if err != nil {
		return out, fmt.Errorf("encoding document %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding document %s: %w", doc.ID, err)
	}
	return out, nil
}

// DecodeAll decodes every document in docs, keeping their order.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := Decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Encode turns v into document fields. The id is carried separately and is
// dropped from the fields.
func Encode(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}
