package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

// CreateRequest files a new request on behalf of the authenticated tenant.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (*domain.ServiceRequest, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.UserRoleTenant {
		return nil, fmt.Errorf("only tenants file requests: %w", domain.ErrForbidden)
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	buildingID, unitID, err := s.resolveTarget(ctx, actor, input)
	if err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	draft := domain.ServiceRequestDraft{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		TenantID:    actor.UserID,
		BuildingID:  buildingID,
		UnitID:      unitID,
		Priority:    priority,
	}

	sr, err := s.requests.Create(ctx, draft, func(ctx context.Context, sr *domain.ServiceRequest) error {
		return s.record(ctx, sr,
			entry(sr, domain.ActivityCreated, "Service request created", ptr(sr.Title), actor.Actor(), sr.RequestDate),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("create service request: %w", err)
	}

	s.log.InfoContext(ctx, "service request created",
		slog.String("request_id", sr.ID),
		slog.String("tenant_id", sr.TenantID),
		slog.String("building_id", sr.BuildingID),
		slog.Bool("common_area", sr.IsCommonArea()),
	)

	return sr, nil
}
