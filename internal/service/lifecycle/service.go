package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"github.com/heartmarshall/tenantdesk-backend/pkg/ctxutil"
)

// mutateFunc runs under the record lock on a working copy of the request.
type mutateFunc = func(ctx context.Context, sr *domain.ServiceRequest) error

type requestStore interface {
	Get(ctx context.Context, id string) (*domain.ServiceRequest, error)
	Create(ctx context.Context, draft domain.ServiceRequestDraft, fn mutateFunc) (*domain.ServiceRequest, error)
	Mutate(ctx context.Context, id string, fn mutateFunc) (*domain.ServiceRequest, error)
}

type activityLedger interface {
	Append(ctx context.Context, items ...domain.ActivityLogItem) ([]domain.ActivityLogItem, error)
}

type tenantDirectory interface {
	Residence(ctx context.Context, tenantID string) (*domain.Residence, error)
	UnitBuilding(ctx context.Context, unitID string) (string, error)
	BuildingExists(ctx context.Context, buildingID string) (bool, error)
}

type contractorDirectory interface {
	Contractor(ctx context.Context, id string) (*domain.Contractor, error)
}

//go:generate moq -out activity_ledger_mock_test.go -pkg lifecycle . activityLedger
//go:generate moq -out tenant_directory_mock_test.go -pkg lifecycle . tenantDirectory
//go:generate moq -out contractor_directory_mock_test.go -pkg lifecycle . contractorDirectory

// Service is the Lifecycle Engine: every command mutates one request and
// appends its ledger entries as a single unit.
type Service struct {
	requests    requestStore
	ledger      activityLedger
	tenants     tenantDirectory
	contractors contractorDirectory
	log         *slog.Logger
	now         func() time.Time
}

// NewService creates a new Lifecycle service.
func NewService(
	log *slog.Logger,
	requests requestStore,
	ledger activityLedger,
	tenants tenantDirectory,
	contractors contractorDirectory,
) *Service {
	return &Service{
		requests:    requests,
		ledger:      ledger,
		tenants:     tenants,
		contractors: contractors,
		log:         log.With("service", "lifecycle"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// record checks the mutated request and appends its ledger entries.
// It must be the last step of every mutate callback: a failure here discards
// the working copy, so the record and the ledger never diverge.
func (s *Service) record(ctx context.Context, sr *domain.ServiceRequest, items ...domain.ActivityLogItem) error {
	if err := sr.CheckInvariants(); err != nil {
		return err
	}
	if _, err := s.ledger.Append(ctx, items...); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

// actorFromCtx returns the authenticated identity or ErrUnauthorized.
func actorFromCtx(ctx context.Context) (domain.Identity, error) {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

func entry(sr *domain.ServiceRequest, typ domain.ActivityType, title string, description *string, actor domain.Actor, at time.Time) domain.ActivityLogItem {
	item := domain.ActivityLogItem{
		Type:              typ,
		Title:             title,
		Timestamp:         at,
		Description:       description,
		RelatedEntityID:   sr.ID,
		RelatedEntityType: domain.EntityTypeServiceRequest,
	}
	if !actor.IsZero() {
		item.UserID = ptr(actor.UserID)
		item.UserName = ptr(actor.UserName)
	}
	return item
}

func ptr(s string) *string {
	return &s
}
