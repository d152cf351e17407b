// Package activity serves the read side of the Activity Ledger: the
// per-request timeline and the compliance export.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

type ledgerReader interface {
	ListFor(ctx context.Context, relatedEntityID string, order domain.SortOrder) ([]domain.ActivityLogItem, error)
}

type authorizer interface {
	Authorize(ctx context.Context, id string, identity domain.Identity, need domain.Access) error
}

//go:generate moq -out authorizer_mock_test.go -pkg activity . authorizer

// Service provides timeline and export operations.
type Service struct {
	ledger ledgerReader
	access authorizer
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new Activity service.
func NewService(log *slog.Logger, ledger ledgerReader, access authorizer) *Service {
	return &Service{
		ledger: ledger,
		access: access,
		log:    log.With("service", "activity"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Timeline returns the request's ledger entries, newest first. Only viewers
// with full access to the request may read it.
func (s *Service) Timeline(ctx context.Context, requestID string, identity domain.Identity) ([]domain.ActivityLogItem, error) {
	if err := s.access.Authorize(ctx, requestID, identity, domain.AccessFull); err != nil {
		return nil, err
	}

	items, err := s.ledger.ListFor(ctx, requestID, domain.SortDesc)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return items, nil
}

// Export renders the request's ledger in chronological order for compliance
// purposes. Landlords only.
func (s *Service) Export(ctx context.Context, requestID string, identity domain.Identity, format Format) (*Document, error) {
	if !identity.Role.IsLandlord() {
		return nil, fmt.Errorf("export requires landlord role: %w", domain.ErrForbidden)
	}
	if !format.IsValid() {
		return nil, domain.NewValidationError("format", "must be json or xlsx")
	}
	if err := s.access.Authorize(ctx, requestID, identity, domain.AccessFull); err != nil {
		return nil, err
	}

	items, err := s.ledger.ListFor(ctx, requestID, domain.SortAsc)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	exportedAt := s.now()
	var body []byte
	switch format {
	case FormatXLSX:
		body, err = renderXLSX(requestID, items)
	default:
		body, err = renderJSON(requestID, exportedAt, items)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", format, err)
	}

	s.log.InfoContext(ctx, "activity exported",
		slog.String("request_id", requestID),
		slog.String("user_id", identity.UserID),
		slog.String("format", format.String()),
		slog.Int("entries", len(items)),
	)

	return &Document{
		Filename:    fmt.Sprintf("%s-activity-%s.%s", requestID, exportedAt.Format("20060102T150405Z"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}
