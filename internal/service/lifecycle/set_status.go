package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

// SetStatus changes the status manually. Entering COMPLETE stamps the
// completion date and adds a COMPLETED entry; leaving it clears the date.
// Backward moves are not guarded.
func (s *Service) SetStatus(ctx context.Context, input SetStatusInput) (*domain.ServiceRequest, error) {
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

	now := s.now()
	var previous domain.RequestStatus
	sr, err := s.requests.Mutate(ctx, input.RequestID, func(ctx context.Context, sr *domain.ServiceRequest) error {
		if sr.Status == input.Status {
			return fmt.Errorf("service_request %s already %s: %w", sr.ID, sr.Status, domain.ErrConflict)
		}

		previous = sr.Status
		sr.Status = input.Status

		items := []domain.ActivityLogItem{
			entry(sr, domain.ActivityStatusChanged, "Status changed", ptr(statusChange(previous, sr.Status)), actor.Actor(), now),
		}
		switch {
		case sr.Status == domain.RequestStatusComplete:
			sr.CompletionDate = &now
			items = append(items, entry(sr, domain.ActivityCompleted, "Request completed", nil, actor.Actor(), now))
		case previous == domain.RequestStatusComplete:
			sr.CompletionDate = nil
		}

		return s.record(ctx, sr, items...)
	})
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	s.log.InfoContext(ctx, "status changed",
		slog.String("request_id", sr.ID),
		slog.String("from", previous.String()),
		slog.String("to", sr.Status.String()),
	)

	return sr, nil
}
