package auth

import (
	"fmt"
	"slices"

	"github.com/golang-jwt/jwt/v5"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

// identityClaims carries the caller identity alongside the standard claims.
// Tenants carry unit_id and their building; landlords carry the buildings
// they manage.
type identityClaims struct {
	jwt.RegisteredClaims
	Role        string   `json:"role"`
	Name        string   `json:"name,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	UnitID      *string  `json:"unit_id,omitempty"`
	BuildingIDs []string `json:"building_ids,omitempty"`
}

func (c *identityClaims) toIdentity() (domain.Identity, error) {
	if c.Subject == "" {
		return domain.Identity{}, fmt.Errorf("missing subject")
	}
	role := domain.UserRole(c.Role)
	if !role.IsValid() {
		return domain.Identity{}, fmt.Errorf("invalid role %q", c.Role)
	}

	id := domain.Identity{
		UserID:      c.Subject,
		Name:        c.Name,
		Avatar:      c.Avatar,
		Role:        role,
		BuildingIDs: slices.Clone(c.BuildingIDs),
	}
	if c.UnitID != nil {
		u := *c.UnitID
		id.UnitID = &u
	}
	return id, nil
}
