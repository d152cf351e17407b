package lifecycle

import (
	"context"
	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"sync"
)

var _ activityLedger = &activityLedgerMock{}

type activityLedgerMock struct {
	AppendFunc func(ctx context.Context, items ...domain.ActivityLogItem) ([]domain.ActivityLogItem, error)

	calls struct {
		Append []struct {
			Ctx   context.Context
			Items []domain.ActivityLogItem
		}
	}
	lockAppend sync.RWMutex
}

func (mock *activityLedgerMock) Append(ctx context.Context, items ...domain.ActivityLogItem) ([]domain.ActivityLogItem, error) {
	if mock.AppendFunc == nil {
		panic("activityLedgerMock.AppendFunc: method is nil but activityLedger.Append was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Items []domain.ActivityLogItem
	}{Ctx: ctx, Items: items}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, items...)
}

func (mock *activityLedgerMock) AppendCalls() []struct {
	Ctx   context.Context
	Items []domain.ActivityLogItem
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}
