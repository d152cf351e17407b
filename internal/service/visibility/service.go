// Package visibility projects the shared request store into per-viewer views.
// All role branching lives here.
package visibility

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

type requestReader interface {
	Get(ctx context.Context, id string) (*domain.ServiceRequest, error)
	List(ctx context.Context, filter domain.RequestFilter) ([]domain.ServiceRequest, error)
}

type residenceLookup interface {
	Residence(ctx context.Context, tenantID string) (*domain.Residence, error)
}

// Service answers read queries on behalf of a viewer. It never mutates.
type Service struct {
	requests   requestReader
	residences residenceLookup
	log        *slog.Logger
}

// NewService creates a new Visibility service.
func NewService(log *slog.Logger, requests requestReader, residences residenceLookup) *Service {
	return &Service{
		requests:   requests,
		residences: residences,
		log:        log.With("service", "visibility"),
	}
}

// Resolve builds the viewer's scope. Tenants are placed through the tenant
// directory, falling back to their identity claims.
func (s *Service) Resolve(ctx context.Context, identity domain.Identity) (Scope, error) {
	if identity.UserID == "" {
		return Scope{}, domain.ErrUnauthorized
	}
	if !identity.Role.IsValid() {
		return Scope{}, fmt.Errorf("role %q: %w", identity.Role, domain.ErrForbidden)
	}
	if identity.Role.IsLandlord() {
		return NewScope(identity, nil), nil
	}

	res, err := s.residences.Residence(ctx, identity.UserID)
	switch {
	case err == nil:
		return NewScope(identity, res), nil
	case errors.Is(err, domain.ErrNotFound):
		if claimed, ok := identity.ClaimedResidence(); ok {
			return NewScope(identity, &claimed), nil
		}
		return NewScope(identity, nil), nil
	default:
		return Scope{}, fmt.Errorf("resolve residence: %w", err)
	}
}

// ListForTenant returns everything the tenant may see, newest first.
func (s *Service) ListForTenant(ctx context.Context, tenantID string) ([]View, error) {
	return s.ListForViewer(ctx, domain.Identity{UserID: tenantID, Role: domain.UserRoleTenant})
}

// ListForLandlord returns full records of the managed buildings, newest first.
func (s *Service) ListForLandlord(ctx context.Context, buildingIDs []string) ([]domain.ServiceRequest, error) {
	if len(buildingIDs) == 0 {
		return []domain.ServiceRequest{}, nil
	}
	list, err := s.requests.List(ctx, domain.RequestFilter{BuildingIDs: buildingIDs})
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	sortNewestFirst(list)
	return list, nil
}

// ListForViewer resolves the identity and lists its visible requests.
func (s *Service) ListForViewer(ctx context.Context, identity domain.Identity) ([]View, error) {
	scope, err := s.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	filter, ok := scope.Filter()
	if !ok {
		return []View{}, nil
	}
	list, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	sortNewestFirst(list)

	views := make([]View, 0, len(list))
	for i := range list {
		access := scope.Access(&list[i])
		if access == domain.AccessNone {
			continue
		}
		views = append(views, project(list[i], access))
	}
	return views, nil
}

// Get returns one request as the viewer may see it. ErrForbidden means the
// request exists but is outside the viewer's scope.
func (s *Service) Get(ctx context.Context, id string, identity domain.Identity) (*View, error) {
	sr, access, err := s.load(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	if access == domain.AccessNone {
		return nil, s.forbidden(ctx, id, identity)
	}
	v := project(*sr, access)
	return &v, nil
}

// Authorize checks that the viewer holds at least need on the request.
func (s *Service) Authorize(ctx context.Context, id string, identity domain.Identity, need domain.Access) error {
	_, access, err := s.load(ctx, id, identity)
	if err != nil {
		return err
	}
	if access < need {
		return s.forbidden(ctx, id, identity)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id string, identity domain.Identity) (*domain.ServiceRequest, domain.Access, error) {
	scope, err := s.Resolve(ctx, identity)
	if err != nil {
		return nil, domain.AccessNone, err
	}
	sr, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, domain.AccessNone, err
	}
	return sr, scope.Access(sr), nil
}

func (s *Service) forbidden(ctx context.Context, id string, identity domain.Identity) error {
	s.log.DebugContext(ctx, "access denied",
		slog.String("request_id", id),
		slog.String("user_id", identity.UserID),
		slog.String("role", identity.Role.String()),
	)
	return fmt.Errorf("service_request %s: %w", id, domain.ErrForbidden)
}

// sortNewestFirst orders by request date descending, then by ID descending.
// IDs compare by length first so SR-10000 sorts after SR-9999.
func sortNewestFirst(list []domain.ServiceRequest) {
	slices.SortStableFunc(list, func(a, b domain.ServiceRequest) int {
		if c := b.RequestDate.Compare(a.RequestDate); c != 0 {
			return c
		}
		if c := cmp.Compare(len(b.ID), len(a.ID)); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
