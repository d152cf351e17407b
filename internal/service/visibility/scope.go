package visibility

import "github.com/heartmarshall/tenantdesk-backend/internal/domain"

// Scope is the visibility predicate of one resolved viewer.
type Scope struct {
	identity domain.Identity
	// residence is set for tenants placed in a building.
	residence *domain.Residence
}

// NewScope builds a scope from an identity and, for tenants, their residence.
func NewScope(identity domain.Identity, residence *domain.Residence) Scope {
	return Scope{identity: identity, residence: residence}
}

// Identity returns the viewer the scope was resolved for.
func (s Scope) Identity() domain.Identity {
	return s.identity
}

// Access returns how much of sr the viewer may see.
//
// Landlords see managed buildings in full. Tenants see their own requests
// and requests of their unit in full, common-area requests of their
// building redacted, and nothing else.
func (s Scope) Access(sr *domain.ServiceRequest) domain.Access {
	if s.identity.Role.IsLandlord() {
		if s.identity.ManagesBuilding(sr.BuildingID) {
			return domain.AccessFull
		}
		return domain.AccessNone
	}

	if sr.TenantID == s.identity.UserID {
		return domain.AccessFull
	}
	if s.residence == nil {
		return domain.AccessNone
	}
	if sr.UnitID != nil && s.residence.UnitID != nil && *sr.UnitID == *s.residence.UnitID {
		return domain.AccessFull
	}
	if sr.UnitID == nil && sr.BuildingID == s.residence.BuildingID {
		return domain.AccessRedacted
	}
	return domain.AccessNone
}

// Filter returns a store filter that selects a superset of what Access
// admits. ok is false when the viewer can see nothing at all.
func (s Scope) Filter() (filter domain.RequestFilter, ok bool) {
	if s.identity.Role.IsLandlord() {
		if len(s.identity.BuildingIDs) == 0 {
			return domain.RequestFilter{}, false
		}
		return domain.RequestFilter{BuildingIDs: s.identity.BuildingIDs}, true
	}

	filter.TenantID = s.identity.UserID
	if s.residence != nil {
		filter.CommonAreaOf = s.residence.BuildingID
		if s.residence.UnitID != nil {
			filter.UnitID = *s.residence.UnitID
		}
	}
	return filter, filter.TenantID != ""
}
