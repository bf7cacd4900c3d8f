// Package docstore is the document store the dashboard reads and writes:
// named collections of documents, full-document writes and push-based
// snapshot subscriptions.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCollection indicates an empty collection name.
	ErrInvalidCollection = errors.New("invalid collection")
	// ErrInvalidID indicates an empty document id.
	ErrInvalidID = errors.New("invalid document id")
)

// Backend persists documents.
type Backend interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Insert(ctx context.Context, collection string, doc Document) error
	Replace(ctx context.Context, collection string, doc Document) error
}

// Store serialises writes to a Backend and pushes a fresh snapshot of the
// written collection to its subscribers after every write.
type Store struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time

	writeMu sync.Mutex

	mu   sync.Mutex
	subs map[string]map[*subscription]struct{}
}

type subscription struct {
	ch chan Snapshot
}

// New creates a Store over backend.
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		now:     time.Now,
		subs:    make(map[string]map[*subscription]struct{}),
	}
}

// Snapshot reads the current state of collection.
func (s *Store) Snapshot(ctx context.Context, collection string) (Snapshot, error) {
	if strings.TrimSpace(collection) == "" {
		return Snapshot{}, ErrInvalidCollection
	}
	docs, err := s.backend.List(ctx, collection)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing %s: %w", collection, err)
	}
	if docs == nil {
		docs = []Document{}
	}
	return Snapshot{Collection: collection, Documents: docs, At: s.now()}, nil
}

// Add stores fields as a new document and returns its generated id.
func (s *Store) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if strings.TrimSpace(collection) == "" {
		return "", ErrInvalidCollection
	}
	doc := Document{ID: uuid.NewString(), Fields: fields}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.backend.Insert(ctx, collection, doc); err != nil {
		return "", fmt.Errorf("adding to %s: %w", collection, err)
	}
	s.publish(ctx, collection)
	return doc.ID, nil
}

// Set overwrites the document id with fields, creating it when missing.
func (s *Store) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	if strings.TrimSpace(collection) == "" {
		return ErrInvalidCollection
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.backend.Replace(ctx, collection, Document{ID: id, Fields: fields}); err != nil {
		return fmt.Errorf("setting %s/%s: %w", collection, id, err)
	}
	s.publish(ctx, collection)
	return nil
}

// Subscribe delivers the current snapshot of collection and then a new one
// after every write. The channel keeps only the newest undelivered snapshot
// and is closed once ctx is done.
func (s *Store) Subscribe(ctx context.Context, collection string) (<-chan Snapshot, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrInvalidCollection
	}

	sub := &subscription{ch: make(chan Snapshot, 1)}

	// Holding writeMu keeps a concurrent write from publishing a newer
	// snapshot before the initial one is queued.
	s.writeMu.Lock()
	initial, err := s.Snapshot(ctx, collection)
	if err != nil {
		s.writeMu.Unlock()
		return nil, err
	}
	sub.ch <- initial
	s.mu.Lock()
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[*subscription]struct{})
	}
	s.subs[collection][sub] = struct{}{}
	s.mu.Unlock()
	s.writeMu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs[collection], sub)
		if len(s.subs[collection]) == 0 {
			delete(s.subs, collection)
		}
		close(sub.ch)
		s.mu.Unlock()
	}()

	return sub.ch, nil
}

// publish must be called with writeMu held.
func (s *Store) publish(ctx context.Context, collection string) {
	s.mu.Lock()
	n := len(s.subs[collection])
	s.mu.Unlock()
	if n == 0 {
		return
	}

	snap, err := s.Snapshot(context.WithoutCancel(ctx), collection)
	if err != nil {
		s.logger.Warn("snapshot after write failed", "collection", collection, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs[collection] {
		sub.offer(snap)
	}
}

// offer replaces any undelivered snapshot with snap. Callers hold Store.mu,
// which is also held while the channel is closed.
func (sub *subscription) offer(snap Snapshot) {
	select {
	case sub.ch <- snap:
		return
	default:
	}
	select {
	case <-sub.ch:
	default:
	}
	select {
	case sub.ch <- snap:
	default:
	}
}
