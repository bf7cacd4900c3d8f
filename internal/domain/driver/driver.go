// Package driver manages the employees who drive bookings.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/rpggio/caredesk/internal/cache"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/domain/credential"
	"github.com/rpggio/caredesk/internal/domain/status"
	"github.com/rpggio/caredesk/internal/listview"
	"github.com/rpggio/caredesk/internal/validation"
)

// OnWorkField marks a driver as assigned to a booking.
const OnWorkField = "onWork"

// Driver is one document of the drivers collection.
type Driver struct {
	ID            string `json:"id"`
	Name          string `json:"name" validate:"required,notblank"`
	Password      string `json:"password,omitempty" validate:"omitempty,max=72"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,notblank"`
	DOBNumber     string `json:"dobNumber"`
	LicenseNumber string `json:"licenseNumber" validate:"required,notblank"`
	RegoNumber    string `json:"regoNumber" validate:"required,notblank"`
	EmployeeType  string `json:"employeeType" validate:"required,notblank"`
	OnWork        bool   `json:"onWork"`
	Status        string `json:"status,omitempty"`
}

// Definition configures the drivers collection.
func Definition() collection.Definition[Driver] {
	return collection.Definition[Driver]{
		Collection: docstore.Drivers,
		List: listview.Config[Driver]{
			Fields: map[string]listview.Accessor[Driver]{
				"name":          func(d Driver) any { return d.Name },
				"email":         func(d Driver) any { return d.Email },
				"dobNumber":     func(d Driver) any { return d.DOBNumber },
				"phone":         func(d Driver) any { return d.Phone },
				"regoNumber":    func(d Driver) any { return d.RegoNumber },
				"licenseNumber": func(d Driver) any { return d.LicenseNumber },
				"employeeType":  func(d Driver) any { return d.EmployeeType },
				"status":        func(d Driver) any { return d.Status },
			},
			FilterField: func(d Driver) string { return d.Name },
			Status:      func(d Driver) string { return d.Status },
			DefaultSort: listview.SortKey{Field: "name", Direction: listview.Asc},
			DefaultSize: 25,
		},
		DeleteStatus: status.NonActive,
		TracksStatus: true,
		Validate: func(act collection.Action, in Driver, errs validation.Errors) {
			if act == collection.Add && in.Password == "" {
				errs.Add(credential.Field, validation.MsgRequired)
			}
		},
		Prepare: func(_ context.Context, w *collection.Write[Driver]) error {
			return credential.Apply(w.Fields, w.Stored)
		},
		Retire: func(fields map[string]any) {
			fields[OnWorkField] = false
		},
		Present: func(d Driver) Driver {
			d.Password = ""
			return d
		},
	}
}

// Service manages drivers.
type Service struct {
	*collection.Service[Driver]
}

// NewService creates a driver Service.
func NewService(store collection.Store, caches *cache.Manager, recorder collection.Recorder, logger *slog.Logger) *Service {
	return &Service{Service: collection.NewService(Definition(), store, caches, recorder, logger)}
}

// Assign rewrites the driver doc with every field kept and onWork set.
// The driver's status is left alone so an assignment never restores a
// retired driver.
func Assign(ctx context.Context, store collection.Store, doc docstore.Document) error {
	fields := maps.Clone(doc.Fields)
	if fields == nil {
		fields = map[string]any{}
	}
	fields[OnWorkField] = true
	if err := store.Set(ctx, docstore.Drivers, doc.ID, fields); err != nil {
		return fmt.Errorf("%w: assigning driver %s: %w", collection.ErrPersistence, doc.ID, err)
	}
	return nil
}
