package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

// AssignContractor snapshots an active contractor onto the request and
// moves it to IN_PROGRESS, whatever its current status.
func (s *Service) AssignContractor(ctx context.Context, input AssignContractorInput) (*domain.ServiceRequest, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireLandlord(actor); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	contractorID := strings.TrimSpace(input.ContractorID)
	c, err := s.contractors.Contractor(ctx, contractorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("contractor %s: %w", contractorID, domain.ErrInvalidContractor)
	}
	if err != nil {
		return nil, fmt.Errorf("get contractor: %w", err)
	}
	if !c.IsActive {
		return nil, fmt.Errorf("contractor %s is inactive: %w", contractorID, domain.ErrInvalidContractor)
	}
	snapshot := c.Snapshot()

	now := s.now()
	var previous domain.RequestStatus
	sr, err := s.requests.Mutate(ctx, input.RequestID, func(ctx context.Context, sr *domain.ServiceRequest) error {
		previous = sr.Status
		sr.AssignedContractor = &snapshot
		sr.Status = domain.RequestStatusInProgress
		sr.CompletionDate = nil

		return s.record(ctx, sr,
			entry(sr, domain.ActivityContractorAssigned, "Contractor assigned", ptr(snapshot.Name+" assigned"), actor.Actor(), now),
			entry(sr, domain.ActivityStatusChanged, "Status changed", ptr(statusChange(previous, sr.Status)), actor.Actor(), now),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("assign contractor: %w", err)
	}

	s.log.InfoContext(ctx, "contractor assigned",
		slog.String("request_id", sr.ID),
		slog.String("contractor_id", snapshot.ID),
		slog.String("previous_status", previous.String()),
	)

	return sr, nil
}

func requireLandlord(actor domain.Identity) error {
	if !actor.Role.IsLandlord() {
		return fmt.Errorf("landlord role required: %w", domain.ErrForbidden)
	}
	return nil
}

func statusChange(from, to domain.RequestStatus) string {
	return fmt.Sprintf("%s to %s", from.Label(), to.Label())
}
