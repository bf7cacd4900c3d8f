package collection

import "github.com/rpggio/caredesk/internal/docstore"

// Option is one choice of a reference select box.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Options lists docs as choices labelled by field, in snapshot order.
func Options(docs []docstore.Document, field string) []Option {
	out := make([]Option, 0, len(docs))
	for _, doc := range docs {
		name, _ := doc.Fields[field].(string)
		out = append(out, Option{ID: doc.ID, Name: name})
	}
	return out
}

// Names indexes docs by id, labelled by field.
func Names(docs []docstore.Document, field string) map[string]string {
	out := make(map[string]string, len(docs))
	for _, doc := range docs {
		name, _ := doc.Fields[field].(string)
		out[doc.ID] = name
	}
	return out
}
