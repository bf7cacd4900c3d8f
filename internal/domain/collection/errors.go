package collection

import "errors"

var (
	// ErrNotFound indicates the record does not exist in the collection.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidAction indicates a form action other than Add or Edit.
	ErrInvalidAction = errors.New("invalid form action")
	// ErrNotSupported indicates the collection does not offer the operation.
	ErrNotSupported = errors.New("operation not supported")
	// ErrPersistence indicates the document store rejected a write.
	ErrPersistence = errors.New("persistence failure")
)
