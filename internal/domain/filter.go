package domain

import "slices"

// RequestFilter narrows a store listing. Empty fields do not filter.
type RequestFilter struct {
	BuildingIDs []string
	TenantID    string
	UnitID      string
	// CommonAreaOf selects common-area requests of the given building.
	CommonAreaOf string
}

// IsEmpty reports whether the filter selects every request.
func (f RequestFilter) IsEmpty() bool {
	return len(f.BuildingIDs) == 0 && f.TenantID == "" && f.UnitID == "" && f.CommonAreaOf == ""
}

// Matches reports whether sr satisfies the filter. Criteria are OR-ed;
// an empty filter matches everything.
func (f RequestFilter) Matches(sr *ServiceRequest) bool {
	if f.IsEmpty() {
		return true
	}
	if len(f.BuildingIDs) > 0 && slices.Contains(f.BuildingIDs, sr.BuildingID) {
		return true
	}
	if f.TenantID != "" && sr.TenantID == f.TenantID {
		return true
	}
	if f.UnitID != "" && sr.UnitID != nil && *sr.UnitID == f.UnitID {
		return true
	}
	if f.CommonAreaOf != "" && sr.UnitID == nil && sr.BuildingID == f.CommonAreaOf {
		return true
	}
	return false
}
