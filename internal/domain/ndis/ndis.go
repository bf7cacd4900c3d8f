// Package ndis manages the NDIS billing line items claimed for clients.
package ndis

import (
	"log/slog"

	"github.com/rpggio/caredesk/internal/cache"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/listview"
)

// Item is one billing line item.
type Item struct {
	ID         string  `json:"id"`
	Client     string  `json:"client" validate:"required,notblank"`
	ItemNumber string  `json:"itemNumber" validate:"required,notblank"`
	Rate       float64 `json:"rate" validate:"gte=0"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	Date       string  `json:"date"`
	Hours      float64 `json:"hours" validate:"gte=0"`
	// PlanManagementDetail is 0 for NDIS managed, 1 for plan managed.
	PlanManagementDetail int     `json:"planManagementDetail" validate:"oneof=0 1"`
	Tax                  float64 `json:"tax" validate:"gte=0"`
}

// Definition configures the ndis collection. Line items have no status and
// are never soft-deleted.
func Definition() collection.Definition[Item] {
	return collection.Definition[Item]{
		Collection: docstore.Ndis,
		List: listview.Config[Item]{
			Fields: map[string]listview.Accessor[Item]{
				"client":      func(i Item) any { return i.Client },
				"itemNumber":  func(i Item) any { return i.ItemNumber },
				"rate":        func(i Item) any { return i.Rate },
				"amount":      func(i Item) any { return i.Amount },
				"date":        func(i Item) any { return i.Date },
				"hours":       func(i Item) any { return i.Hours },
				"planManager": func(i Item) any { return i.PlanManagementDetail },
				"tax":         func(i Item) any { return i.Tax },
			},
			FilterField: func(i Item) string { return i.ItemNumber },
			DefaultSort: listview.SortKey{Field: "itemNumber", Direction: listview.Asc},
			DefaultSize: 5,
		},
	}
}

// NewService creates the ndis service.
func NewService(store collection.Store, caches *cache.Manager, logger *slog.Logger) *collection.Service[Item] {
	return collection.NewService(Definition(), store, caches, nil, logger)
}
