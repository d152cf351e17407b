package activity

import (
	"context"
	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"sync"
)

var _ authorizer = &authorizerMock{}

type authorizerMock struct {
	AuthorizeFunc func(ctx context.Context, id string, identity domain.Identity, need domain.Access) error

	calls struct {
		Authorize []struct {
			Ctx      context.Context
			ID       string
			Identity domain.Identity
			Need     domain.Access
		}
	}
	lockAuthorize sync.RWMutex
}

func (mock *authorizerMock) Authorize(ctx context.Context, id string, identity domain.Identity, need domain.Access) error {
	if mock.AuthorizeFunc == nil {
		panic("authorizerMock.AuthorizeFunc: method is nil but authorizer.Authorize was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       string
		Identity domain.Identity
		Need     domain.Access
	}{Ctx: ctx, ID: id, Identity: identity, Need: need}
	mock.lockAuthorize.Lock()
	mock.calls.Authorize = append(mock.calls.Authorize, callInfo)
	mock.lockAuthorize.Unlock()
	return mock.AuthorizeFunc(ctx, id, identity, need)
}

func (mock *authorizerMock) AuthorizeCalls() []struct {
	Ctx      context.Context
	ID       string
	Identity domain.Identity
	Need     domain.Access
} {
	mock.lockAuthorize.RLock()
	calls := mock.calls.Authorize
	mock.lockAuthorize.RUnlock()
	return calls
}
