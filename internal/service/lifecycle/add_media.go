package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

// AddMedia attaches every item of the batch to the request in one step.
func (s *Service) AddMedia(ctx context.Context, input AddMediaInput) (*domain.ServiceRequest, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	media := make([]domain.Media, 0, len(input.Items))
	for _, item := range input.Items {
		m := domain.Media{
			Type:       item.Type,
			URL:        strings.TrimSpace(item.URL),
			UploadedAt: now,
		}
		if item.Filename != nil {
			m.Filename = ptr(*item.Filename)
		}
		media = append(media, m)
	}

	sr, err := s.requests.Mutate(ctx, input.RequestID, func(ctx context.Context, sr *domain.ServiceRequest) error {
		sr.Media = append(sr.Media, media...)
		return s.record(ctx, sr,
			entry(sr, domain.ActivityMediaUploaded, "Media uploaded", ptr(mediaSummary(len(media))), actor.Actor(), now),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("add media: %w", err)
	}

	s.log.InfoContext(ctx, "media uploaded",
		slog.String("request_id", sr.ID),
		slog.String("user_id", actor.UserID),
		slog.Int("count", len(media)),
	)

	return sr, nil
}

func mediaSummary(n int) string {
	if n == 1 {
		return "1 file uploaded"
	}
	return fmt.Sprintf("%d files uploaded", n)
}
