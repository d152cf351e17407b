package visibility

import "github.com/heartmarshall/tenantdesk-backend/internal/domain"

// View is a request as shown to one viewer.
type View struct {
	Request domain.ServiceRequest
	// Redacted is true when the viewer only has common-area visibility.
	Redacted bool
}

// project applies the redaction rules for the given access level. A
// redacted view reports PENDING as IN_PROGRESS and drops the author and the
// landlord-viewed marker, so another tenant's triage state stays private.
func project(sr domain.ServiceRequest, access domain.Access) View {
	if access != domain.AccessRedacted {
		return View{Request: sr}
	}
	if sr.Status == domain.RequestStatusPending {
		sr.Status = domain.RequestStatusInProgress
	}
	sr.TenantID = ""
	sr.ViewedByLandlord = false
	sr.ViewedAt = nil
	return View{Request: sr, Redacted: true}
}
