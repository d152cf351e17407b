package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

// MarkViewed records the first landlord view of a request. Later calls are
// no-ops and append nothing. The check happens under the record lock, so
// concurrent callers produce exactly one VIEWED entry.
func (s *Service) MarkViewed(ctx context.Context, input MarkViewedInput) (*domain.ServiceRequest, error) {
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
	var transitioned bool
	sr, err := s.requests.Mutate(ctx, input.RequestID, func(ctx context.Context, sr *domain.ServiceRequest) error {
		if sr.ViewedByLandlord {
			return nil
		}
		sr.ViewedByLandlord = true
		sr.ViewedAt = &now
		transitioned = true

		return s.record(ctx, sr,
			entry(sr, domain.ActivityViewed, "Viewed by landlord", nil, actor.Actor(), now),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("mark viewed: %w", err)
	}

	if transitioned {
		s.log.InfoContext(ctx, "service request viewed",
			slog.String("request_id", sr.ID),
			slog.String("user_id", actor.UserID),
		)
	}

	return sr, nil
}
