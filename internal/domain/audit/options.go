package audit

// ListOptions provides filtering options for listing audit entries.
type ListOptions struct {
	Collection string
	RecordID   *string
	Limit      int
	Offset     int
}
