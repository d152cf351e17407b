// Package ledger implements the in-memory Activity Ledger: one append-only
// log shared by all requests, indexed by related entity ID.
package ledger

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

// Ledger is an append-only, in-memory activity log.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string][]domain.ActivityLogItem
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[string][]domain.ActivityLogItem)}
}

// Append stores items and returns them with their assigned IDs. Every item
// is validated first; if any item is invalid none is stored.
func (l *Ledger) Append(_ context.Context, items ...domain.ActivityLogItem) ([]domain.ActivityLogItem, error) {
	if len(items) == 0 {
		return nil, nil
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("activity item %d: %w", i, err)
		}
	}

	now := time.Now().UTC()

	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.ActivityLogItem, len(items))
	for i, item := range items {
		item = cloneItem(item)
		// Ordinals derive from the entity's length; entries are never removed,
		// so an ordinal is never handed out twice.
		item.ID = domain.FormatActivityID(item.RelatedEntityID, len(l.entries[item.RelatedEntityID])+1)
		if item.Timestamp.IsZero() {
			item.Timestamp = now
		}
		l.entries[item.RelatedEntityID] = append(l.entries[item.RelatedEntityID], item)
		out[i] = cloneItem(item)
	}

	return out, nil
}

// ListFor returns every entry of an entity. SortDesc yields newest first
// (timeline); anything else yields append order (compliance export).
func (l *Ledger) ListFor(_ context.Context, relatedEntityID string, order domain.SortOrder) ([]domain.ActivityLogItem, error) {
	l.mu.RLock()
	stored := l.entries[relatedEntityID]
	out := make([]domain.ActivityLogItem, len(stored))
	for i, item := range stored {
		out[i] = cloneItem(item)
	}
	l.mu.RUnlock()

	if order == domain.SortDesc {
		slices.Reverse(out)
	}
	return out, nil
}

func cloneItem(item domain.ActivityLogItem) domain.ActivityLogItem {
	item.Description = cloneString(item.Description)
	item.UserID = cloneString(item.UserID)
	item.UserName = cloneString(item.UserName)
	return item
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
