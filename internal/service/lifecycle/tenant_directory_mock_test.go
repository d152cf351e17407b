package lifecycle

import (
	"context"
	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"sync"
)

var _ tenantDirectory = &tenantDirectoryMock{}

type tenantDirectoryMock struct {
	BuildingExistsFunc func(ctx context.Context, buildingID string) (bool, error)
	ResidenceFunc      func(ctx context.Context, tenantID string) (*domain.Residence, error)
	UnitBuildingFunc   func(ctx context.Context, unitID string) (string, error)

	calls struct {
		BuildingExists []struct {
			Ctx        context.Context
			BuildingID string
		}
		Residence []struct {
			Ctx      context.Context
			TenantID string
		}
		UnitBuilding []struct {
			Ctx    context.Context
			UnitID string
		}
	}
	lockBuildingExists sync.RWMutex
	lockResidence      sync.RWMutex
	lockUnitBuilding   sync.RWMutex
}

func (mock *tenantDirectoryMock) BuildingExists(ctx context.Context, buildingID string) (bool, error) {
	if mock.BuildingExistsFunc == nil {
		panic("tenantDirectoryMock.BuildingExistsFunc: method is nil but tenantDirectory.BuildingExists was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		BuildingID string
	}{Ctx: ctx, BuildingID: buildingID}
	mock.lockBuildingExists.Lock()
	mock.calls.BuildingExists = append(mock.calls.BuildingExists, callInfo)
	mock.lockBuildingExists.Unlock()
	return mock.BuildingExistsFunc(ctx, buildingID)
}

func (mock *tenantDirectoryMock) BuildingExistsCalls() []struct {
	Ctx        context.Context
	BuildingID string
} {
	mock.lockBuildingExists.RLock()
	calls := mock.calls.BuildingExists
	mock.lockBuildingExists.RUnlock()
	return calls
}

func (mock *tenantDirectoryMock) Residence(ctx context.Context, tenantID string) (*domain.Residence, error) {
	if mock.ResidenceFunc == nil {
		panic("tenantDirectoryMock.ResidenceFunc: method is nil but tenantDirectory.Residence was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		TenantID string
	}{Ctx: ctx, TenantID: tenantID}
	mock.lockResidence.Lock()
	mock.calls.Residence = append(mock.calls.Residence, callInfo)
	mock.lockResidence.Unlock()
	return mock.ResidenceFunc(ctx, tenantID)
}

func (mock *tenantDirectoryMock) ResidenceCalls() []struct {
	Ctx      context.Context
	TenantID string
} {
	mock.lockResidence.RLock()
	calls := mock.calls.Residence
	mock.lockResidence.RUnlock()
	return calls
}

func (mock *tenantDirectoryMock) UnitBuilding(ctx context.Context, unitID string) (string, error) {
	if mock.UnitBuildingFunc == nil {
		panic("tenantDirectoryMock.UnitBuildingFunc: method is nil but tenantDirectory.UnitBuilding was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UnitID string
	}{Ctx: ctx, UnitID: unitID}
	mock.lockUnitBuilding.Lock()
	mock.calls.UnitBuilding = append(mock.calls.UnitBuilding, callInfo)
	mock.lockUnitBuilding.Unlock()
	return mock.UnitBuildingFunc(ctx, unitID)
}

func (mock *tenantDirectoryMock) UnitBuildingCalls() []struct {
	Ctx    context.Context
	UnitID string
} {
	mock.lockUnitBuilding.RLock()
	calls := mock.calls.UnitBuilding
	mock.lockUnitBuilding.RUnlock()
	return calls
}
