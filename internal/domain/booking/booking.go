// Package booking manages jobs: a driver taking a client from pick-up to
// drop-off, priced with the current rates.
package booking

import (
	"context"
	"time"

	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/domain/rate"
	"github.com/rpggio/caredesk/internal/listview"
)

// Defaults every submitted booking is stored with.
const (
	DefaultExpenseReason = "none"
	DefaultJobStat       = 0
)

// Booking is one document of the jobs collection. Required numbers are
// pointers so that zero is a valid answer and missing is not.
type Booking struct {
	ID            string    `json:"id"`
	Customer      string    `json:"customer" validate:"required,notblank"`
	Driver        string    `json:"driver" validate:"required,notblank"`
	Notes         string    `json:"notes"`
	PickUp        string    `json:"pickUp" validate:"required,notblank"`
	DropOff       string    `json:"dropOff" validate:"required,notblank"`
	Price         *float64  `json:"price" validate:"required"`
	Profit        *float64  `json:"profit" validate:"required"`
	DriverPaid    float64   `json:"driverPaid"`
	BookingDate   time.Time `json:"bookingDate" validate:"required"`
	Date          time.Time `json:"date"`
	ExpensePrice  float64   `json:"expensePrice"`
	ExpenseReason string    `json:"expenseReason"`
	Hour          *float64  `json:"hour" validate:"required,gte=0"`
	Distance      *float64  `json:"distance" validate:"required,gte=0"`
	Duplicate     bool      `json:"duplicate"`
	Paid          bool      `json:"paid"`
	JobStat       int       `json:"jobStat"`
}

// Row is a booking with its client and driver names resolved. A name is
// empty when its id no longer resolves.
type Row struct {
	Booking
	CustomerName string `json:"customerName"`
	DriverName   string `json:"driverName"`
}

// RateSource provides the rates driver pay is computed with.
type RateSource interface {
	Current(ctx context.Context) (rate.Rates, error)
}

func value(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func blank() Booking {
	var hour, distance float64
	return Booking{Hour: &hour, Distance: &distance}
}

// RowConfig configures the bookings table.
func RowConfig() listview.Config[Row] {
	return listview.Config[Row]{
		Fields: map[string]listview.Accessor[Row]{
			"customer":    func(r Row) any { return r.CustomerName },
			"driver":      func(r Row) any { return r.DriverName },
			"pickUp":      func(r Row) any { return r.PickUp },
			"dropOff":     func(r Row) any { return r.DropOff },
			"price":       func(r Row) any { return value(r.Price) },
			"profit":      func(r Row) any { return value(r.Profit) },
			"driverPaid":  func(r Row) any { return r.DriverPaid },
			"bookingDate": func(r Row) any { return r.BookingDate },
			"hour":        func(r Row) any { return value(r.Hour) },
			"distance":    func(r Row) any { return value(r.Distance) },
			"paid":        func(r Row) any { return r.Paid },
		},
		FilterField: func(r Row) string { return r.CustomerName },
		DefaultSort: listview.SortKey{Field: "bookingDate", Direction: listview.Asc},
		DefaultSize: 25,
	}
}

// Definition configures the jobs collection. The hooks that price and
// assign a booking are wired by NewService.
func Definition() collection.Definition[Booking] {
	return collection.Definition[Booking]{
		Collection: docstore.Jobs,
		Reads:      []string{docstore.Clients, docstore.Drivers},
		List: listview.Config[Booking]{
			Fields: map[string]listview.Accessor[Booking]{
				"bookingDate": func(b Booking) any { return b.BookingDate },
				"price":       func(b Booking) any { return value(b.Price) },
			},
			FilterField: func(b Booking) string { return b.Customer },
			DefaultSort: listview.SortKey{Field: "bookingDate", Direction: listview.Asc},
			DefaultSize: 25,
		},
		Blank: blank,
	}
}

// applyDefaults fills the fields a submission always writes. Edit overwrites
// expense and payment state too.
func applyDefaults(fields map[string]any, driverPaid float64, now time.Time) {
	fields["driverPaid"] = driverPaid
	fields["date"] = now
	fields["expensePrice"] = 0
	fields["expenseReason"] = DefaultExpenseReason
	fields["duplicate"] = true
	fields["paid"] = false
	fields["jobStat"] = DefaultJobStat
}
