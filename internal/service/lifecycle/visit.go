package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

const visitTimeLayout = "2006-01-02 15:04 MST"

// ScheduleVisit sets when the assigned contractor will come on site.
func (s *Service) ScheduleVisit(ctx context.Context, input ScheduleVisitInput) (*domain.ServiceRequest, error) {
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

	at := input.At.UTC()
	now := s.now()
	sr, err := s.requests.Mutate(ctx, input.RequestID, func(ctx context.Context, sr *domain.ServiceRequest) error {
		if sr.AssignedContractor == nil {
			return fmt.Errorf("service_request %s has no contractor: %w", sr.ID, domain.ErrConflict)
		}
		sr.ScheduledFor = &at

		desc := fmt.Sprintf("%s visit on %s", sr.AssignedContractor.Name, at.Format(visitTimeLayout))
		return s.record(ctx, sr,
			entry(sr, domain.ActivityScheduled, "Visit scheduled", &desc, actor.Actor(), now),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule visit: %w", err)
	}

	s.log.InfoContext(ctx, "visit scheduled",
		slog.String("request_id", sr.ID),
		slog.Time("at", at),
	)

	return sr, nil
}

// RecordArrival stamps the moment the assigned contractor arrived.
func (s *Service) RecordArrival(ctx context.Context, input RecordArrivalInput) (*domain.ServiceRequest, error) {
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
	sr, err := s.requests.Mutate(ctx, input.RequestID, func(ctx context.Context, sr *domain.ServiceRequest) error {
		if sr.AssignedContractor == nil {
			return fmt.Errorf("service_request %s has no contractor: %w", sr.ID, domain.ErrConflict)
		}
		sr.ContractorArrivedAt = &now

		return s.record(ctx, sr,
			entry(sr, domain.ActivityArrived, "Contractor arrived", ptr(sr.AssignedContractor.Name+" arrived on site"), actor.Actor(), now),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("record arrival: %w", err)
	}

	s.log.InfoContext(ctx, "contractor arrived",
		slog.String("request_id", sr.ID),
		slog.Time("at", now),
	)

	return sr, nil
}

