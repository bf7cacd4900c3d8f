package audit

import "errors"

// ErrInvalidInput indicates an incomplete audit entry.
var ErrInvalidInput = errors.New("invalid audit input")
