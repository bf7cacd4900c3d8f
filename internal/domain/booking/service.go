package booking

import (
	"context"
	"log/slog"

	"github.com/rpggio/caredesk/internal/cache"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/domain/driver"
	"github.com/rpggio/caredesk/internal/domain/rate"
	"github.com/rpggio/caredesk/internal/listview"
)

// nameField labels client and driver options.
const nameField = "name"

// Form is the booking form plus the clients and drivers it can pick from.
type Form struct {
	collection.Form[Booking]
	Clients []collection.Option `json:"clients"`
	Drivers []collection.Option `json:"drivers"`
}

// Service handles booking operations.
type Service struct {
	*collection.Service[Booking]
	rates  RateSource
	store  collection.Store
	rows   listview.Config[Row]
	logger *slog.Logger
}

// NewService creates a new booking service.
func NewService(
	store collection.Store,
	rates RateSource,
	caches *cache.Manager,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		rates:  rates,
		store:  store,
		rows:   RowConfig(),
		logger: logger.With("collection", docstore.Jobs),
	}
	def := Definition()
	def.Prepare = s.price
	def.AfterWrite = s.assignDriver
	s.Service = collection.NewService(def, store, caches, nil, logger)
	return s
}

// RowConfig returns the bookings table configuration.
func (s *Service) RowConfig() listview.Config[Row] {
	return s.rows
}

// ParseQuery resolves raw query params against the bookings table.
func (s *Service) ParseQuery(p listview.QueryParams) (listview.Query, error) {
	return s.rows.ParseQuery(p)
}

// List renders bookings with client and driver names resolved.
func (s *Service) List(ctx context.Context, p listview.QueryParams) (listview.Result[Row], error) {
	q, err := s.ParseQuery(p)
	if err != nil {
		return listview.Result[Row]{}, err
	}
	snap, err := s.Snapshot(ctx, docstore.Jobs)
	if err != nil {
		return listview.Result[Row]{}, err
	}
	return s.RenderSnapshot(ctx, snap, q)
}

// RenderSnapshot renders a jobs snapshot, joined with the cached clients and
// drivers, under q.
func (s *Service) RenderSnapshot(ctx context.Context, snap docstore.Snapshot, q listview.Query) (listview.Result[Row], error) {
	rows, err := s.join(ctx, snap)
	if err != nil {
		return listview.Result[Row]{}, err
	}
	return s.rows.Render(rows, q), nil
}

func (s *Service) join(ctx context.Context, jobs docstore.Snapshot) ([]Row, error) {
	bookings, err := docstore.DecodeAll[Booking](jobs.Documents)
	if err != nil {
		return nil, err
	}
	clients, err := s.Snapshot(ctx, docstore.Clients)
	if err != nil {
		return nil, err
	}
	drivers, err := s.Snapshot(ctx, docstore.Drivers)
	if err != nil {
		return nil, err
	}
	return Join(bookings, clients.Documents, drivers.Documents), nil
}

// Join resolves the client and driver names of bookings, keeping order.
func Join(bookings []Booking, clients, drivers []docstore.Document) []Row {
	clientNames := collection.Names(clients, nameField)
	driverNames := collection.Names(drivers, nameField)
	rows := make([]Row, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, Row{
			Booking:      b,
			CustomerName: clientNames[b.Customer],
			DriverName:   driverNames[b.Driver],
		})
	}
	return rows
}

// Form resolves the booking form with its client and driver options.
func (s *Service) Form(ctx context.Context, act, id string) (Form, error) {
	form, err := s.Service.Form(ctx, act, id)
	if err != nil {
		return Form{}, err
	}
	clients, err := s.Snapshot(ctx, docstore.Clients)
	if err != nil {
		return Form{}, err
	}
	drivers, err := s.Snapshot(ctx, docstore.Drivers)
	if err != nil {
		return Form{}, err
	}
	return Form{
		Form:    form,
		Clients: collection.Options(clients.Documents, nameField),
		Drivers: collection.Options(drivers.Documents, nameField),
	}, nil
}

// price computes driver pay and stamps the submission defaults. Without
// rates nothing is written.
func (s *Service) price(ctx context.Context, w *collection.Write[Booking]) error {
	rates, err := s.rates.Current(ctx)
	if err != nil {
		return err
	}
	pay := rate.DriverPay(rates, deref(w.Input.Hour), deref(w.Input.Distance))
	applyDefaults(w.Fields, pay, w.Now)
	return nil
}

// assignDriver marks the booked driver as on work. The booking is already
// persisted, so failures are logged and skipped.
func (s *Service) assignDriver(ctx context.Context, w *collection.Write[Booking]) {
	snap, err := s.store.Snapshot(ctx, docstore.Drivers)
	if err != nil {
		s.logger.Error("reading drivers for assignment", "booking", w.ID, "error", err)
		return
	}
	doc, ok := snap.Find(w.Input.Driver)
	if !ok {
		s.logger.Warn("booked driver not found", "booking", w.ID, "driver", w.Input.Driver)
		return
	}
	if err := driver.Assign(ctx, s.store, doc); err != nil {
		s.logger.Error("assigning driver", "booking", w.ID, "driver", doc.ID, "error", err)
		return
	}
	s.Invalidate(docstore.Drivers)
}
