package mocks

import (
	"context"

	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/audit"
	"github.com/stretchr/testify/mock"
)

// DocumentStore is a mock for the document store services write through.
type DocumentStore struct {
	mock.Mock
}

func (m *DocumentStore) Snapshot(ctx context.Context, collection string) (docstore.Snapshot, error) {
	args := m.Called(ctx, collection)
	if snap, ok := args.Get(0).(docstore.Snapshot); ok {
		return snap, args.Error(1)
	}
	return docstore.Snapshot{}, args.Error(1)
}

func (m *DocumentStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

func (m *DocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	args := m.Called(ctx, collection, id, fields)
	return args.Error(0)
}

// AuditRepository is a mock for audit.Repository.
type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditRepository) List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]audit.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// AuditRecorder is a mock for the recorder soft deletes report to.
type AuditRecorder struct {
	mock.Mock
}

func (m *AuditRecorder) Record(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// SessionResolver is a mock for the bearer token lookup.
type SessionResolver struct {
	mock.Mock
}

func (m *SessionResolver) CurrentUser(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}
