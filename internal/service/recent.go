package service

import (
	"sync"

	"github.com/vadimbarashkov/lilurl-web/internal/models"
)

// DefaultRecentLimit is the number of records a RecentList keeps by default.
const DefaultRecentLimit = 5

// RecentList keeps the most recently created records, newest first.
// Pushing past the limit drops the oldest record.
type RecentList struct {
	mu      sync.RWMutex
	limit   int
	records []models.DisplayRecord
}

// NewRecentList creates a RecentList holding at most limit records.
// A non-positive limit falls back to DefaultRecentLimit.
func NewRecentList(limit int) *RecentList {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	return &RecentList{
		limit:   limit,
		records: make([]models.DisplayRecord, 0, limit),
	}
}

// Push prepends rec.
func (l *RecentList) Push(rec models.DisplayRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := min(len(l.records)+1, l.limit)
	records := make([]models.DisplayRecord, n, l.limit)
	records[0] = rec
	copy(records[1:], l.records)

	l.records = records
}

// Items returns a copy of the records, newest first.
func (l *RecentList) Items() []models.DisplayRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	items := make([]models.DisplayRecord, len(l.records))
	copy(items, l.records)

	return items
}

// Len returns the number of records held.
func (l *RecentList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.records)
}
