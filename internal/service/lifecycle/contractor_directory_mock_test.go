package lifecycle

import (
	"context"
	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"sync"
)

var _ contractorDirectory = &contractorDirectoryMock{}

type contractorDirectoryMock struct {
	ContractorFunc func(ctx context.Context, id string) (*domain.Contractor, error)

	calls struct {
		Contractor []struct {
			Ctx context.Context
			ID  string
		}
	}
	lockContractor sync.RWMutex
}

func (mock *contractorDirectoryMock) Contractor(ctx context.Context, id string) (*domain.Contractor, error) {
	if mock.ContractorFunc == nil {
		panic("contractorDirectoryMock.ContractorFunc: method is nil but contractorDirectory.Contractor was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockContractor.Lock()
	mock.calls.Contractor = append(mock.calls.Contractor, callInfo)
	mock.lockContractor.Unlock()
	return mock.ContractorFunc(ctx, id)
}

func (mock *contractorDirectoryMock) ContractorCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockContractor.RLock()
	calls := mock.calls.Contractor
	mock.lockContractor.RUnlock()
	return calls
}
