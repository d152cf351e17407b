package request_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tenantdesk-backend/internal/adapter/memory/request"
	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

func draft(tenant string, unit *string) domain.ServiceRequestDraft {
	return domain.ServiceRequestDraft{
		Title:      "Broken heater",
		TenantID:   tenant,
		BuildingID: "bldg-1",
		UnitID:     unit,
		Priority:   domain.PriorityMedium,
	}
}

func strPtr(s string) *string { return &s }

func TestStore_Create_AssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	s := request.New()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		sr, err := s.Create(ctx, draft("tenant-1", nil), nil)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SR-%04d", i), sr.ID)
		assert.Equal(t, domain.RequestStatusPending, sr.Status)
		assert.False(t, sr.ViewedByLandlord)
		assert.Nil(t, sr.ViewedAt)
		assert.False(t, sr.RequestDate.IsZero())
		assert.NotNil(t, sr.Comments)
		assert.Empty(t, sr.Comments)
		assert.Empty(t, sr.Media)
	}
}

func TestStore_Create_FailedCallbackConsumesNoID(t *testing.T) {
	t.Parallel()

	s := request.New()
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := s.Create(ctx, draft("tenant-1", nil), func(context.Context, *domain.ServiceRequest) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	sr, err := s.Create(ctx, draft("tenant-1", nil), nil)
	require.NoError(t, err)
	assert.Equal(t, "SR-0001", sr.ID)

	all, err := s.List(ctx, domain.RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_Create_ConcurrentIDsAreUnique(t *testing.T) {
	t.Parallel()

	s := request.New()
	ctx := context.Background()

	const n = 100
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sr, err := s.Create(ctx, draft("tenant-1", nil), nil)
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			ids <- sr.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, seen["SR-0100"], "expected dense sequence up to SR-0100")
}

func TestStore_Get_NotFound(t *testing.T) {
	t.Parallel()

	_, err := request.New().Get(context.Background(), "SR-9999")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Get_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := request.New()
	ctx := context.Background()
	created, err := s.Create(ctx, draft("tenant-1", strPtr("unit-1")), nil)
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	got.Title = "tampered"
	*got.UnitID = "unit-2"

	again, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Broken heater", again.Title)
	assert.Equal(t, "unit-1", *again.UnitID)
}

func TestStore_Mutate_NotFound(t *testing.T) {
	t.Parallel()

	_, err := request.New().Mutate(context.Background(), "SR-0001", func(context.Context, *domain.ServiceRequest) error {
		t.Fatal("fn must not run for unknown id")
		return nil
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Mutate_ErrorLeavesRecordUntouched(t *testing.T) {
	t.Parallel()

	s := request.New()
	ctx := context.Background()
	created, err := s.Create(ctx, draft("tenant-1", nil), nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = s.Mutate(ctx, created.ID, func(_ context.Context, sr *domain.ServiceRequest) error {
		sr.Status = domain.RequestStatusComplete
		sr.Comments = append(sr.Comments, domain.Comment{ID: "c1"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, got.Status)
	assert.Empty(t, got.Comments)
}

func TestStore_Mutate_SerializesSameRecord(t *testing.T) {
	t.Parallel()

	s := request.New()
	ctx := context.Background()
	created, err := s.Create(ctx, draft("tenant-1", nil), nil)
	require.NoError(t, err)

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Mutate(ctx, created.ID, func(_ context.Context, sr *domain.ServiceRequest) error {
				sr.Comments = append(sr.Comments, domain.Comment{ID: fmt.Sprintf("c%d", i)})
				return nil
			})
			if err != nil {
				t.Errorf("mutate: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Comments, n, "lost updates detected")
}

func TestStore_Mutate_DifferentRecordsDoNotBlock(t *testing.T) {
	t.Parallel()

	s := request.New()
	ctx := context.Background()
	a, err := s.Create(ctx, draft("tenant-1", nil), nil)
	require.NoError(t, err)
	b, err := s.Create(ctx, draft("tenant-2", nil), nil)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = s.Mutate(ctx, a.ID, func(context.Context, *domain.ServiceRequest) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	// a is locked; b must still be mutable and readable.
	_, err = s.Mutate(ctx, b.ID, func(_ context.Context, sr *domain.ServiceRequest) error {
		sr.Title = "updated"
		return nil
	})
	require.NoError(t, err)
	got, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Title)

	close(release)
	<-done
}

func TestStore_Create_DoesNotBlockOtherRecords(t *testing.T) {
	t.Parallel()

	s := request.New()
	ctx := context.Background()
	existing, err := s.Create(ctx, draft("tenant-1", nil), nil)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = s.Create(ctx, draft("tenant-2", nil), func(context.Context, *domain.ServiceRequest) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	// The create callback is parked; the existing record must stay usable
	// and the pending record must not be visible yet.
	_, err = s.Mutate(ctx, existing.ID, func(_ context.Context, sr *domain.ServiceRequest) error {
		sr.Title = "updated"
		return nil
	})
	require.NoError(t, err)
	got, err := s.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Title)

	_, err = s.Get(ctx, "SR-0002")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	close(release)
	<-done

	created, err := s.Get(ctx, "SR-0002")
	require.NoError(t, err)
	assert.Equal(t, "tenant-2", created.TenantID)
}

func TestStore_List_FiltersInCreationOrder(t *testing.T) {
	t.Parallel()

	s := request.New()
	ctx := context.Background()
	_, err := s.Create(ctx, draft("tenant-1", strPtr("unit-1")), nil)
	require.NoError(t, err)
	_, err = s.Create(ctx, draft("tenant-2", strPtr("unit-2")), nil)
	require.NoError(t, err)
	_, err = s.Create(ctx, draft("tenant-3", nil), nil)
	require.NoError(t, err)

	got, err := s.List(ctx, domain.RequestFilter{TenantID: "tenant-1", CommonAreaOf: "bldg-1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "SR-0001", got[0].ID)
	assert.Equal(t, "SR-0003", got[1].ID)
}
