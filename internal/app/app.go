// Package app wires the dashboard services over one document store.
package app

import (
	"log/slog"

	"github.com/rpggio/caredesk/internal/cache"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/audit"
	"github.com/rpggio/caredesk/internal/domain/booking"
	"github.com/rpggio/caredesk/internal/domain/client"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/domain/coordinator"
	"github.com/rpggio/caredesk/internal/domain/driver"
	"github.com/rpggio/caredesk/internal/domain/ndis"
	"github.com/rpggio/caredesk/internal/domain/rate"
	"github.com/rpggio/caredesk/internal/domain/user"
)

// Kinds lists every collection the dashboard reads.
var Kinds = []string{
	docstore.Clients,
	docstore.Drivers,
	docstore.Jobs,
	docstore.Users,
	docstore.Ndis,
	docstore.Variable,
	docstore.Coordinators,
}

// Services contains all domain services.
type Services struct {
	Store        *docstore.Store
	Clients      *client.Service
	Drivers      *driver.Service
	Bookings     *booking.Service
	Users        *user.Service
	Ndis         *collection.Service[ndis.Item]
	Coordinators *collection.Service[coordinator.Coordinator]
	Rates        *rate.Service
	Audit        *audit.Service
}

// New builds every service over store. caches may be nil; auditSvc may be
// nil, which leaves soft deletes unrecorded.
func New(store *docstore.Store, caches *cache.Manager, auditSvc *audit.Service, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}
	var recorder collection.Recorder
	if auditSvc != nil {
		recorder = auditSvc
	}
	rates := rate.NewService(store, caches, logger)
	return &Services{
		Store:        store,
		Clients:      client.NewService(store, caches, recorder, logger),
		Drivers:      driver.NewService(store, caches, recorder, logger),
		Bookings:     booking.NewService(store, rates, caches, logger),
		Users:        user.NewService(store, caches, recorder, logger),
		Ndis:         ndis.NewService(store, caches, logger),
		Coordinators: coordinator.NewService(store, caches, logger),
		Rates:        rates,
		Audit:        auditSvc,
	}
}

// Resources returns the collections exposed as tables, in menu order.
func (s *Services) Resources() []Resource {
	// The coordinator list is maintained outside the dashboard.
	coordinators := NewResource[coordinator.Coordinator, coordinator.Coordinator, collection.Form[coordinator.Coordinator]](s.Coordinators)
	coordinators.Submit = nil

	return []Resource{
		NewResource[client.Client, client.Client, client.Form](s.Clients),
		NewResource[driver.Driver, driver.Driver, collection.Form[driver.Driver]](s.Drivers),
		NewResource[booking.Booking, booking.Row, booking.Form](s.Bookings),
		NewResource[user.User, user.User, collection.Form[user.User]](s.Users),
		NewResource[ndis.Item, ndis.Item, collection.Form[ndis.Item]](s.Ndis),
		coordinators,
	}
}
