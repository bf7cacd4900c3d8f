// Package rate holds the pay rates bookings are priced with.
package rate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/caredesk/internal/cache"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/listview"
	"github.com/shopspring/decimal"
)

// ErrNotConfigured indicates the rate collection is empty.
var ErrNotConfigured = errors.New("rates not configured")

// Rates is the rate configuration document.
type Rates struct {
	ID string `json:"id,omitempty"`
	// EmpRate is paid per hour of work.
	EmpRate float64 `json:"emp_rate" validate:"gte=0"`
	// DriverKmsM is paid per kilometre driven.
	DriverKmsM float64 `json:"driver_kms_m" validate:"gte=0"`
}

// DriverPay is EmpRate*hours + DriverKmsM*distance, computed in decimal so
// cents do not drift.
func DriverPay(r Rates, hours, distance float64) float64 {
	perHour := decimal.NewFromFloat(r.EmpRate).Mul(decimal.NewFromFloat(hours))
	perKm := decimal.NewFromFloat(r.DriverKmsM).Mul(decimal.NewFromFloat(distance))
	return perHour.Add(perKm).InexactFloat64()
}

// Definition configures the rate collection.
func Definition() collection.Definition[Rates] {
	return collection.Definition[Rates]{
		Collection: docstore.Variable,
		List: listview.Config[Rates]{
			DefaultSize: listview.PageSizes[0],
		},
	}
}

// Service reads and writes the authoritative rate document.
type Service struct {
	records *collection.Service[Rates]
	logger  *slog.Logger
}

// NewService creates a rate Service.
func NewService(store collection.Store, caches *cache.Manager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		records: collection.NewService(Definition(), store, caches, nil, logger),
		logger:  logger,
	}
}

// Current returns the first rate document, which is authoritative.
func (s *Service) Current(ctx context.Context) (Rates, error) {
	all, err := s.records.Records(ctx)
	if err != nil {
		return Rates{}, err
	}
	if len(all) == 0 {
		return Rates{}, ErrNotConfigured
	}
	return all[0], nil
}

// Set overwrites the authoritative document, creating it when the
// collection is empty.
func (s *Service) Set(ctx context.Context, r Rates) (Rates, error) {
	current, err := s.Current(ctx)
	switch {
	case errors.Is(err, ErrNotConfigured):
		id, err := s.records.Submit(ctx, collection.Add, "", r)
		if err != nil {
			return Rates{}, err
		}
		r.ID = id
	case err != nil:
		return Rates{}, err
	default:
		if _, err := s.records.Submit(ctx, collection.Edit, current.ID, r); err != nil {
			return Rates{}, err
		}
		r.ID = current.ID
	}
	s.logger.Info("rates updated", "emp_rate", r.EmpRate, "driver_kms_m", r.DriverKmsM)
	return r, nil
}

// Quote prices a trip with the current rates.
func (s *Service) Quote(ctx context.Context, hours, distance float64) (float64, error) {
	r, err := s.Current(ctx)
	if err != nil {
		return 0, fmt.Errorf("quoting driver pay: %w", err)
	}
	return DriverPay(r, hours, distance), nil
}
