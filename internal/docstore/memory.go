package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Backend. Documents are stored as JSON so callers
// never share field maps with the backend.
type Memory struct {
	mu    sync.Mutex
	order map[string][]string
	data  map[string]map[string][]byte

	// FailWrites makes Insert and Replace fail with the given error.
	FailWrites error
}

// NewMemory creates an empty Memory backend.
func NewMemory() *Memory {
	return &Memory{
		order: make(map[string][]string),
		data:  make(map[string]map[string][]byte),
	}
}

// List returns documents in insertion order.
func (m *Memory) List(_ context.Context, collection string) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := make([]Document, 0, len(m.order[collection]))
	for _, id := range m.order[collection] {
		var fields map[string]any
		if err := json.Unmarshal(m.data[collection][id], &fields); err != nil {
			return nil, fmt.Errorf("decoding %s/%s: %w", collection, id, err)
		}
		docs = append(docs, Document{ID: id, Fields: fields})
	}
	return docs, nil
}

// Insert adds a new document.
func (m *Memory) Insert(_ context.Context, collection string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}
	if _, ok := m.data[collection][doc.ID]; ok {
		return fmt.Errorf("document %s/%s already exists", collection, doc.ID)
	}
	return m.put(collection, doc)
}

// Replace overwrites a document, creating it when missing.
func (m *Memory) Replace(_ context.Context, collection string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}
	return m.put(collection, doc)
}

func (m *Memory) put(collection string, doc Document) error {
	data, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", collection, doc.ID, err)
	}
	if m.data[collection] == nil {
		m.data[collection] = make(map[string][]byte)
	}
	if _, ok := m.data[collection][doc.ID]; !ok {
		m.order[collection] = append(m.order[collection], doc.ID)
	}
	m.data[collection][doc.ID] = data
	return nil
}
