package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

const commentPreviewLen = 140

// AddComment appends a comment by the authenticated user.
func (s *Service) AddComment(ctx context.Context, input AddCommentInput) (*domain.ServiceRequest, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	comment := domain.Comment{
		ID:          uuid.NewString(),
		UserID:      actor.UserID,
		UserName:    actor.Name,
		UserAvatar:  actor.Avatar,
		UserRole:    actor.Role,
		Message:     strings.TrimSpace(input.Message),
		Timestamp:   now,
		Attachments: slices.Clone(input.Attachments),
	}

	sr, err := s.requests.Mutate(ctx, input.RequestID, func(ctx context.Context, sr *domain.ServiceRequest) error {
		sr.Comments = append(sr.Comments, comment)
		return s.record(ctx, sr,
			entry(sr, domain.ActivityCommentAdded, "Comment added", ptr(preview(comment.Message)), actor.Actor(), now),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment added",
		slog.String("request_id", sr.ID),
		slog.String("user_id", actor.UserID),
		slog.String("comment_id", comment.ID),
	)

	return sr, nil
}

func preview(msg string) string {
	r := []rune(msg)
	if len(r) <= commentPreviewLen {
		return msg
	}
	return string(r[:commentPreviewLen]) + "..."
}
