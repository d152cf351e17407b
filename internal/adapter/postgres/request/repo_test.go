package request_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tenantdesk-backend/internal/adapter/directory"
	pgledger "github.com/heartmarshall/tenantdesk-backend/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/tenantdesk-backend/internal/adapter/postgres/request"
	"github.com/heartmarshall/tenantdesk-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"github.com/heartmarshall/tenantdesk-backend/internal/service/lifecycle"
	"github.com/heartmarshall/tenantdesk-backend/pkg/ctxutil"
)

func strPtr(s string) *string { return &s }

func draft(tenant, unit string) domain.ServiceRequestDraft {
	d := domain.ServiceRequestDraft{
		Title:      "Leaking tap",
		TenantID:   tenant,
		BuildingID: "bldg-1",
		Priority:   domain.PriorityMedium,
	}
	if unit != "" {
		d.UnitID = strPtr(unit)
	}
	return d
}

func TestRepo_CreateAndGet(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Reset(t, pool)
	repo := request.New(pool)
	ctx := context.Background()

	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	created, err := repo.Create(ctx, draft("tenant-1", "unit-101"), func(_ context.Context, sr *domain.ServiceRequest) error {
		sr.Comments = append(sr.Comments, domain.Comment{
			ID: "c-1", UserID: "tenant-1", UserName: "Tina", UserRole: domain.UserRoleTenant,
			Message: "first", Timestamp: at, Attachments: []string{"a.png"},
		})
		sr.Media = append(sr.Media, domain.Media{Type: domain.MediaTypeImage, URL: "https://x/1.png", UploadedAt: at})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "SR-0001", created.ID)
	assert.Equal(t, domain.RequestStatusPending, created.Status)

	got, err := repo.Get(ctx, "SR-0001")
	require.NoError(t, err)
	assert.Equal(t, "unit-101", *got.UnitID)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, []string{"a.png"}, got.Comments[0].Attachments)
	assert.True(t, got.Comments[0].Timestamp.Equal(at))
	require.Len(t, got.Media, 1)
	assert.Nil(t, got.Media[0].Filename)
	assert.True(t, got.RequestDate.Equal(created.RequestDate))

	_, err = repo.Get(ctx, "SR-0404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_FailedCreateConsumesNoID(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Reset(t, pool)
	repo := request.New(pool)
	ctx := context.Background()

	boom := errors.New("boom")
	_, err := repo.Create(ctx, draft("tenant-1", ""), func(context.Context, *domain.ServiceRequest) error { return boom })
	require.ErrorIs(t, err, boom)

	sr, err := repo.Create(ctx, draft("tenant-1", ""), nil)
	require.NoError(t, err)
	assert.Equal(t, "SR-0001", sr.ID)
	assert.Equal(t, 1, testhelper.CountRows(t, pool, "service_requests"))
}

func TestRepo_MutateRollsBackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Reset(t, pool)
	repo := request.New(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, draft("tenant-1", "unit-101"), nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.Mutate(ctx, "SR-0001", func(_ context.Context, sr *domain.ServiceRequest) error {
		sr.Status = domain.RequestStatusInProgress
		sr.AssignedContractor = &domain.ContractorSnapshot{ID: "c-1", Name: "Ace"}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.Get(ctx, "SR-0001")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, got.Status)
	assert.Nil(t, got.AssignedContractor)

	_, err = repo.Mutate(ctx, "SR-0404", func(context.Context, *domain.ServiceRequest) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_ConcurrentMutationsLoseNothing(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Reset(t, pool)
	repo := request.New(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, draft("tenant-1", "unit-101"), nil)
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Mutate(ctx, "SR-0001", func(_ context.Context, sr *domain.ServiceRequest) error {
				sr.Comments = append(sr.Comments, domain.Comment{
					ID: fmt.Sprintf("c-%d", i), UserID: "tenant-1", UserRole: domain.UserRoleTenant,
					Message: "hi", Timestamp: time.Now().UTC(), Attachments: []string{},
				})
				return nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.Get(ctx, "SR-0001")
	require.NoError(t, err)
	assert.Len(t, got.Comments, n)
}

func TestRepo_ListFilter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Reset(t, pool)
	repo := request.New(pool)
	ctx := context.Background()

	for _, d := range []domain.ServiceRequestDraft{
		draft("tenant-1", "unit-101"),
		draft("tenant-2", "unit-102"),
		draft("tenant-2", ""),
		{Title: "Gate", TenantID: "tenant-3", BuildingID: "bldg-2", Priority: domain.PriorityLow},
	} {
		_, err := repo.Create(ctx, d, nil)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter domain.RequestFilter
		want   []string
	}{
		{"empty selects all", domain.RequestFilter{}, []string{"SR-0001", "SR-0002", "SR-0003", "SR-0004"}},
		{"building", domain.RequestFilter{BuildingIDs: []string{"bldg-2"}}, []string{"SR-0004"}},
		{"unit or common area", domain.RequestFilter{UnitID: "unit-101", CommonAreaOf: "bldg-1"}, []string{"SR-0001", "SR-0003"}},
		{"tenant", domain.RequestFilter{TenantID: "tenant-2"}, []string{"SR-0002", "SR-0003"}},
		{"nothing matches", domain.RequestFilter{TenantID: "ghost"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(list))
			for _, sr := range list {
				ids = append(ids, sr.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

// TestLifecycle_Postgres drives the lifecycle engine against both postgres
// adapters so a request and its ledger entries commit or roll back together.
func TestLifecycle_Postgres(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Reset(t, pool)

	dir, err := directory.New(directory.Seed{
		Buildings:   []directory.BuildingSeed{{ID: "bldg-1", Name: "Elm Court", Units: []string{"unit-101"}}},
		Tenants:     []directory.TenantSeed{{ID: "tenant-1", BuildingID: "bldg-1", UnitID: strPtr("unit-101")}},
		Contractors: []directory.ContractorSeed{{ID: "c-1", Name: "Ace Plumbing", Rating: 4.8}},
	})
	require.NoError(t, err)

	requests := request.New(pool)
	ledger := pgledger.New(pool)
	svc := lifecycle.NewService(slog.Default(), requests, ledger, dir, dir)

	tenantCtx := ctxutil.WithIdentity(context.Background(), domain.Identity{
		UserID: "tenant-1", Name: "Tina", Role: domain.UserRoleTenant,
	})
	landlordCtx := ctxutil.WithIdentity(context.Background(), domain.Identity{
		UserID: "landlord-1", Name: "Lou", Role: domain.UserRoleLandlord, BuildingIDs: []string{"bldg-1"},
	})

	sr, err := svc.CreateRequest(tenantCtx, lifecycle.CreateRequestInput{Title: "No hot water"})
	require.NoError(t, err)
	require.Equal(t, "SR-0001", sr.ID)

	_, err = svc.AddComment(tenantCtx, lifecycle.AddCommentInput{RequestID: sr.ID, Message: "Since Monday"})
	require.NoError(t, err)

	_, err = svc.AssignContractor(landlordCtx, lifecycle.AssignContractorInput{RequestID: sr.ID, ContractorID: "c-1"})
	require.NoError(t, err)

	_, err = svc.AssignContractor(landlordCtx, lifecycle.AssignContractorInput{RequestID: sr.ID, ContractorID: "c-404"})
	require.Error(t, err)

	got, err := requests.Get(context.Background(), sr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusInProgress, got.Status)
	require.NotNil(t, got.AssignedContractor)
	assert.Equal(t, "Ace Plumbing", got.AssignedContractor.Name)
	assert.Len(t, got.Comments, 1)

	items, err := ledger.ListFor(context.Background(), sr.ID, domain.SortAsc)
	require.NoError(t, err)
	types := make([]domain.ActivityType, len(items))
	for i, it := range items {
		types[i] = it.Type
	}
	assert.Equal(t, []domain.ActivityType{
		domain.ActivityCreated,
		domain.ActivityCommentAdded,
		domain.ActivityContractorAssigned,
		domain.ActivityStatusChanged,
	}, types)
}
