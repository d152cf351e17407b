package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

// residence looks the tenant up in the directory and falls back to the
// identity claims. A nil residence means the tenant cannot be placed.
func (s *Service) residence(ctx context.Context, actor domain.Identity) (*domain.Residence, error) {
	res, err := s.tenants.Residence(ctx, actor.UserID)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolve residence: %w", err)
	}
	if claimed, ok := actor.ClaimedResidence(); ok {
		return &claimed, nil
	}
	return nil, nil
}

// resolveTarget validates where a new request is filed. Tenants may file for
// their own unit or for the common area of their own building.
func (s *Service) resolveTarget(ctx context.Context, actor domain.Identity, input CreateRequestInput) (string, *string, error) {
	home, err := s.residence(ctx, actor)
	if err != nil {
		return "", nil, err
	}
	if home == nil {
		return "", nil, fmt.Errorf("tenant %s has no residence: %w", actor.UserID, domain.ErrInvalidTarget)
	}

	buildingID := strings.TrimSpace(input.BuildingID)
	var unitID *string
	if input.UnitID != nil {
		u := strings.TrimSpace(*input.UnitID)
		unitID = &u
	}

	if unitID == nil && buildingID == "" {
		if home.UnitID == nil {
			return home.BuildingID, nil, nil
		}
		u := *home.UnitID
		return home.BuildingID, &u, nil
	}

	if unitID != nil {
		unitBuilding, err := s.tenants.UnitBuilding(ctx, *unitID)
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("unit %s: %w", *unitID, domain.ErrInvalidTarget)
		}
		if err != nil {
			return "", nil, fmt.Errorf("resolve unit: %w", err)
		}
		if buildingID != "" && buildingID != unitBuilding {
			return "", nil, fmt.Errorf("unit %s is not in building %s: %w", *unitID, buildingID, domain.ErrInvalidTarget)
		}
		if home.UnitID == nil || *home.UnitID != *unitID {
			return "", nil, fmt.Errorf("unit %s is not the tenant's unit: %w", *unitID, domain.ErrInvalidTarget)
		}
		buildingID = unitBuilding
	} else {
		exists, err := s.tenants.BuildingExists(ctx, buildingID)
		if err != nil {
			return "", nil, fmt.Errorf("resolve building: %w", err)
		}
		if !exists {
			return "", nil, fmt.Errorf("building %s: %w", buildingID, domain.ErrInvalidTarget)
		}
	}

	if buildingID != home.BuildingID {
		return "", nil, fmt.Errorf("tenant %s does not live in building %s: %w", actor.UserID, buildingID, domain.ErrInvalidTarget)
	}
	return buildingID, unitID, nil
}
