package domain

import "slices"

// Identity is the resolved "current user" supplied by the identity provider.
type Identity struct {
	UserID      string
	Name        string
	Avatar      string
	Role        UserRole
	UnitID      *string
	BuildingIDs []string
}

// Actor returns the ledger actor for this identity.
func (i Identity) Actor() Actor {
	return Actor{UserID: i.UserID, UserName: i.Name, Avatar: i.Avatar, Role: i.Role}
}

// ManagesBuilding reports whether a landlord identity manages buildingID.
func (i Identity) ManagesBuilding(buildingID string) bool {
	return i.Role.IsLandlord() && slices.Contains(i.BuildingIDs, buildingID)
}

// Residence is where a tenant currently lives, as reported by the tenant directory.
type Residence struct {
	TenantID   string
	BuildingID string
	// UnitID is nil when the tenant is not attached to a specific unit.
	UnitID *string
}

// Actor is who performed a command, as recorded on ledger entries.
type Actor struct {
	UserID   string
	UserName string
	Avatar   string
	Role     UserRole
}

// IsZero reports whether no actor was supplied.
func (a Actor) IsZero() bool {
	return a.UserID == ""
}

// ClaimedResidence derives a residence from the identity's own claims. It is
// used when the tenant directory has no entry for the user.
func (i Identity) ClaimedResidence() (Residence, bool) {
	if i.Role != UserRoleTenant || len(i.BuildingIDs) == 0 {
		return Residence{}, false
	}
	return Residence{
		TenantID:   i.UserID,
		BuildingID: i.BuildingIDs[0],
		UnitID:     clonePtr(i.UnitID),
	}, true
}
