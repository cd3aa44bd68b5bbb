package history

import "github.com/kailas-cloud/navegador/internal/domain/triage"

// Item is one completed triage kept in the history list.
type Item struct {
	id            string
	timestamp     int64 // unix millis
	originalQuery string
	result        triage.Result
}

// New creates a history item.
func New(id string, timestamp int64, originalQuery string, result triage.Result) Item {
	return Item{id: id, timestamp: timestamp, originalQuery: originalQuery, result: result}
}

// ID returns the item identifier.
func (i Item) ID() string { return i.id }

// Timestamp returns the creation time (unix millis).
func (i Item) Timestamp() int64 { return i.timestamp }

// OriginalQuery returns the report text as submitted.
func (i Item) OriginalQuery() string { return i.originalQuery }

// Result returns the recommendation.
func (i Item) Result() triage.Result { return i.result }
