// Package request implements the in-memory Request Store.
// Each record sits in its own lock cell so mutations of one request are
// serialized while different requests proceed independently.
package request

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

type cell struct {
	mu sync.Mutex
	sr domain.ServiceRequest
}

// Store holds the authoritative set of service requests in memory.
type Store struct {
	createMu sync.Mutex // serializes creates so sequence numbers stay gapless

	mu    sync.RWMutex // guards cells, order and seq; never held while waiting on a cell
	cells map[string]*cell
	order []string
	seq   int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{cells: make(map[string]*cell)}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns a copy of the request with the given ID.
func (s *Store) Get(_ context.Context, id string) (*domain.ServiceRequest, error) {
	c, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	out := c.sr.Clone()
	c.mu.Unlock()

	return &out, nil
}

// List returns copies of all requests matching filter, in creation order.
func (s *Store) List(_ context.Context, filter domain.RequestFilter) ([]domain.ServiceRequest, error) {
	s.mu.RLock()
	cells := make([]*cell, 0, len(s.order))
	for _, id := range s.order {
		cells = append(cells, s.cells[id])
	}
	s.mu.RUnlock()

	result := make([]domain.ServiceRequest, 0, len(cells))
	for _, c := range cells {
		c.mu.Lock()
		if filter.Matches(&c.sr) {
			result = append(result, c.sr.Clone())
		}
		c.mu.Unlock()
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create assigns the next SR-#### ID, initializes workflow fields and runs fn
// on the new record before it becomes visible. If fn fails nothing is stored
// and the sequence number is not consumed. Reads and mutations of existing
// records are not blocked while fn runs.
func (s *Store) Create(ctx context.Context, draft domain.ServiceRequestDraft, fn func(ctx context.Context, sr *domain.ServiceRequest) error) (*domain.ServiceRequest, error) {
	s.createMu.Lock()
	defer s.createMu.Unlock()

	s.mu.RLock()
	seq := s.seq + 1
	s.mu.RUnlock()

	sr := domain.ServiceRequest{
		ID:          domain.FormatRequestID(seq),
		Title:       draft.Title,
		Description: draft.Description,
		TenantID:    draft.TenantID,
		BuildingID:  draft.BuildingID,
		UnitID:      draft.UnitID,
		Status:      domain.RequestStatusPending,
		Priority:    draft.Priority,
		RequestDate: time.Now().UTC(),
		Comments:    []domain.Comment{},
		Media:       []domain.Media{},
	}
	sr = sr.Clone()

	if fn != nil {
		if err := fn(ctx, &sr); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.seq = seq
	s.cells[sr.ID] = &cell{sr: sr.Clone()}
	s.order = append(s.order, sr.ID)
	s.mu.Unlock()

	return &sr, nil
}

// Mutate applies fn to a working copy of the record under the record lock.
// The copy replaces the stored record only when fn returns nil.
func (s *Store) Mutate(ctx context.Context, id string, fn func(ctx context.Context, sr *domain.ServiceRequest) error) (*domain.ServiceRequest, error) {
	c, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	work := c.sr.Clone()
	if err := fn(ctx, &work); err != nil {
		return nil, err
	}
	c.sr = work

	out := work.Clone()
	return &out, nil
}

func (s *Store) lookup(id string) (*cell, error) {
	s.mu.RLock()
	c, ok := s.cells[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("service_request %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}
