package audit

import (
	"time"

	"github.com/rpggio/caredesk/internal/domain/status"
)

// Entry records one status transition of one document.
type Entry struct {
	ID         int64         `json:"id"`
	Collection string        `json:"collection"`
	RecordID   string        `json:"record_id"`
	Actor      string        `json:"actor,omitempty"`
	From       status.Status `json:"from"`
	To         status.Status `json:"to"`
	CreatedAt  time.Time     `json:"created_at"`
}
