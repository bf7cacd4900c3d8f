// Package coordinator is the read-only list of support coordinators a
// client can be referred by.
package coordinator

import (
	"log/slog"

	"github.com/rpggio/caredesk/internal/cache"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/listview"
)

// Coordinator is one entry of the refferedby collection.
type Coordinator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NameField labels coordinator options.
const NameField = "name"

// Definition configures the coordinator collection.
func Definition() collection.Definition[Coordinator] {
	return collection.Definition[Coordinator]{
		Collection: docstore.Coordinators,
		List: listview.Config[Coordinator]{
			Fields: map[string]listview.Accessor[Coordinator]{
				"name": func(c Coordinator) any { return c.Name },
			},
			FilterField: func(c Coordinator) string { return c.Name },
			DefaultSort: listview.SortKey{Field: "name", Direction: listview.Asc},
			DefaultSize: 25,
		},
	}
}

// NewService creates the list service. Only its reads are routed.
func NewService(store collection.Store, caches *cache.Manager, logger *slog.Logger) *collection.Service[Coordinator] {
	return collection.NewService(Definition(), store, caches, nil, logger)
}
