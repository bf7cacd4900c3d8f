package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/caredesk/internal/cache"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/audit"
	"github.com/rpggio/caredesk/internal/domain/status"
	"github.com/rpggio/caredesk/internal/listview"
	"github.com/rpggio/caredesk/internal/validation"
)

// Store is the part of the document store services use.
type Store interface {
	Snapshot(ctx context.Context, collection string) (docstore.Snapshot, error)
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	Set(ctx context.Context, collection, id string, fields map[string]any) error
}

// Recorder persists status transitions.
type Recorder interface {
	Record(ctx context.Context, entry *audit.Entry) error
}

// Form is the state an add or edit form opens with.
type Form[T any] struct {
	Action Action `json:"action"`
	ID     string `json:"id,omitempty"`
	// Found is false when Edit named a record that does not exist and the
	// form fell back to blank values.
	Found  bool `json:"found"`
	Values T    `json:"values"`
}

// Service runs the shared workflow for one collection.
type Service[T any] struct {
	def      Definition[T]
	store    Store
	scope    *cache.Scope
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a Service. caches and recorder may be nil.
func NewService[T any](def Definition[T], store Store, caches *cache.Manager, recorder Recorder, logger *slog.Logger) *Service[T] {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service[T]{
		def:      def,
		store:    store,
		recorder: recorder,
		logger:   logger.With("collection", def.Collection),
		now:      time.Now,
	}
	if caches != nil {
		s.scope = caches.Scope(append([]string{def.Collection}, def.Reads...)...)
	}
	return s
}

// Name returns the collection name.
func (s *Service[T]) Name() string {
	return s.def.Collection
}

// Config returns the list configuration.
func (s *Service[T]) Config() listview.Config[T] {
	return s.def.List
}

// CanSoftDelete reports whether the collection offers soft delete.
func (s *Service[T]) CanSoftDelete() bool {
	return s.def.DeleteStatus != ""
}

// Snapshot reads kind through the cache when one is configured.
func (s *Service[T]) Snapshot(ctx context.Context, kind string) (docstore.Snapshot, error) {
	load := func(ctx context.Context) (docstore.Snapshot, error) {
		return s.store.Snapshot(ctx, kind)
	}
	var (
		snap docstore.Snapshot
		err  error
	)
	if s.scope != nil {
		snap, err = s.scope.Load(ctx, kind, load)
	} else {
		snap, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, cache.ErrUndeclared) {
			return docstore.Snapshot{}, err
		}
		return docstore.Snapshot{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return snap, nil
}

// Invalidate drops a cached kind after a write made through another path.
func (s *Service[T]) Invalidate(kind string) {
	if s.scope != nil {
		s.scope.Drop(kind)
	}
}

// Records decodes the current snapshot in store order.
func (s *Service[T]) Records(ctx context.Context) ([]T, error) {
	snap, err := s.Snapshot(ctx, s.def.Collection)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[T](snap.Documents)
}

// ParseQuery resolves raw query params against the list defaults.
func (s *Service[T]) ParseQuery(p listview.QueryParams) (listview.Query, error) {
	return s.def.List.ParseQuery(p)
}

// List parses raw query params and renders the current snapshot.
func (s *Service[T]) List(ctx context.Context, p listview.QueryParams) (listview.Result[T], error) {
	q, err := s.ParseQuery(p)
	if err != nil {
		return listview.Result[T]{}, err
	}
	return s.Render(ctx, q)
}

// Render renders the current snapshot under q.
func (s *Service[T]) Render(ctx context.Context, q listview.Query) (listview.Result[T], error) {
	snap, err := s.Snapshot(ctx, s.def.Collection)
	if err != nil {
		return listview.Result[T]{}, err
	}
	return s.RenderSnapshot(ctx, snap, q)
}

// RenderSnapshot renders snap, typically one pushed by a subscription,
// under q without reading the store.
func (s *Service[T]) RenderSnapshot(_ context.Context, snap docstore.Snapshot, q listview.Query) (listview.Result[T], error) {
	records, err := docstore.DecodeAll[T](snap.Documents)
	if err != nil {
		return listview.Result[T]{}, err
	}
	res := s.def.List.Render(records, q)
	for i, row := range res.Rows {
		res.Rows[i] = s.def.present(row)
	}
	return res, nil
}

// Get returns the record id.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	snap, err := s.Snapshot(ctx, s.def.Collection)
	if err != nil {
		return zero, err
	}
	doc, ok := snap.Find(id)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return docstore.Decode[T](doc)
}

// Form resolves the values an add or edit form opens with. Edit of an id
// that is not in the snapshot opens with blank values.
func (s *Service[T]) Form(ctx context.Context, act, id string) (Form[T], error) {
	action, err := ParseAction(act)
	if err != nil {
		return Form[T]{}, err
	}
	form := Form[T]{Action: action, Values: s.def.blank()}
	if action == Add {
		return form, nil
	}

	form.ID = id
	rec, err := s.Get(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		s.logger.Debug("edit form for missing record", "id", id)
		return form, nil
	case err != nil:
		return Form[T]{}, err
	}
	form.Found = true
	form.Values = s.def.present(rec)
	return form, nil
}

// Submit validates input and writes it as a full document. Add returns the
// id the store assigned.
func (s *Service[T]) Submit(ctx context.Context, act Action, id string, input T) (string, error) {
	if _, err := ParseAction(string(act)); err != nil {
		return "", err
	}

	errs := validation.Check(input)
	if s.def.Validate != nil {
		s.def.Validate(act, input, errs)
	}
	if err := errs.Err(); err != nil {
		return "", err
	}

	fields, err := docstore.Encode(input)
	if err != nil {
		return "", err
	}
	w := &Write[T]{Action: act, Input: input, Fields: fields, Now: s.now()}

	if act == Edit {
		doc, err := s.stored(ctx, id)
		if err != nil {
			return "", err
		}
		w.ID = id
		w.Stored = &doc
	}

	if s.def.Prepare != nil {
		if err := s.def.Prepare(ctx, w); err != nil {
			return "", err
		}
	}
	if s.def.TracksStatus {
		stampStatus(w)
	}

	if err := s.persist(ctx, w); err != nil {
		return "", err
	}
	s.Invalidate(s.def.Collection)
	s.logger.Info("record saved", "id", w.ID, "action", act)

	if s.def.AfterWrite != nil {
		s.def.AfterWrite(ctx, w)
	}
	return w.ID, nil
}

// SoftDelete moves the record id to the collection's delete status and
// records the transition with the actor attached to ctx.
func (s *Service[T]) SoftDelete(ctx context.Context, id string) (status.Mutation, error) {
	if !s.CanSoftDelete() {
		return status.Mutation{}, fmt.Errorf("%w: soft delete on %s", ErrNotSupported, s.def.Collection)
	}

	snap, err := s.store.Snapshot(ctx, s.def.Collection)
	if err != nil {
		return status.Mutation{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	m, err := status.SoftDelete(snap.Documents, id, s.def.DeleteStatus)
	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			return status.Mutation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return status.Mutation{}, err
	}
	if s.def.Retire != nil {
		s.def.Retire(m.Document.Fields)
	}

	if err := s.store.Set(ctx, s.def.Collection, m.Document.ID, m.Document.Fields); err != nil {
		return status.Mutation{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.Invalidate(s.def.Collection)

	actor := audit.ActorFromContext(ctx)
	s.logger.Info("record soft-deleted", "id", id, "from", m.From, "to", m.To, "actor", actor)
	if s.recorder != nil {
		entry := &audit.Entry{
			Collection: s.def.Collection,
			RecordID:   id,
			Actor:      actor,
			From:       m.From,
			To:         m.To,
			CreatedAt:  s.now(),
		}
		if err := s.recorder.Record(ctx, entry); err != nil {
			s.logger.Warn("audit record failed", "id", id, "error", err)
		}
	}
	return m, nil
}

func (s *Service[T]) stored(ctx context.Context, id string) (docstore.Document, error) {
	if strings.TrimSpace(id) == "" {
		return docstore.Document{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	snap, err := s.store.Snapshot(ctx, s.def.Collection)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	doc, ok := snap.Find(id)
	if !ok {
		return docstore.Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return doc, nil
}

func (s *Service[T]) persist(ctx context.Context, w *Write[T]) error {
	if w.Action == Add {
		id, err := s.store.Add(ctx, s.def.Collection, w.Fields)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		w.ID = id
		return nil
	}
	if err := s.store.Set(ctx, s.def.Collection, w.ID, w.Fields); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// stampStatus never lets a form restore a record: Add starts active and
// Edit keeps whatever the stored document had.
func stampStatus[T any](w *Write[T]) {
	if w.Action == Add {
		w.Fields = status.Stamp(w.Fields, status.Active)
		return
	}
	delete(w.Fields, status.Field)
	if w.Stored == nil {
		return
	}
	if v, ok := w.Stored.Fields[status.Field]; ok {
		w.Fields[status.Field] = v
	}
}
