package domain

import (
	"fmt"
	"slices"
	"time"
)

// RequestIDPrefix is prepended to the zero-padded request sequence number.
const RequestIDPrefix = "SR-"

// FormatRequestID renders a sequence number as a request ID, e.g. 1 -> "SR-0001".
func FormatRequestID(seq int64) string {
	return fmt.Sprintf("%s%04d", RequestIDPrefix, seq)
}

// ServiceRequest is one maintenance issue filed by a tenant.
type ServiceRequest struct {
	ID          string
	Title       string
	Description string

	TenantID   string
	BuildingID string
	// UnitID is nil for common-area requests.
	UnitID *string

	Status             RequestStatus
	Priority           Priority
	AssignedContractor *ContractorSnapshot
	RequestDate        time.Time
	CompletionDate     *time.Time

	ViewedByLandlord bool
	ViewedAt         *time.Time

	ScheduledFor        *time.Time
	ContractorArrivedAt *time.Time

	Comments []Comment
	Media    []Media
}

// IsCommonArea reports whether the request targets the whole building.
func (sr *ServiceRequest) IsCommonArea() bool {
	return sr.UnitID == nil
}

// Clone returns a deep copy. Stores hand out clones so callers never share
// memory with the authoritative record.
func (sr ServiceRequest) Clone() ServiceRequest {
	out := sr
	out.UnitID = clonePtr(sr.UnitID)
	out.CompletionDate = clonePtr(sr.CompletionDate)
	out.ViewedAt = clonePtr(sr.ViewedAt)
	out.ScheduledFor = clonePtr(sr.ScheduledFor)
	out.ContractorArrivedAt = clonePtr(sr.ContractorArrivedAt)
	if sr.AssignedContractor != nil {
		c := *sr.AssignedContractor
		out.AssignedContractor = &c
	}
	if sr.Comments != nil {
		out.Comments = make([]Comment, len(sr.Comments))
		for i, c := range sr.Comments {
			c.Attachments = slices.Clone(c.Attachments)
			out.Comments[i] = c
		}
	}
	if sr.Media != nil {
		out.Media = make([]Media, len(sr.Media))
		for i, m := range sr.Media {
			m.Filename = clonePtr(m.Filename)
			out.Media[i] = m
		}
	}
	return out
}

// CheckInvariants returns an error describing the first broken record invariant.
func (sr *ServiceRequest) CheckInvariants() error {
	if (sr.CompletionDate != nil) != (sr.Status == RequestStatusComplete) {
		return fmt.Errorf("service request %s: completion date must be set exactly when status is %s", sr.ID, RequestStatusComplete)
	}
	if (sr.ViewedAt != nil) != sr.ViewedByLandlord {
		return fmt.Errorf("service request %s: viewed_at must be set exactly when viewed by landlord", sr.ID)
	}
	if sr.TenantID == "" || sr.BuildingID == "" {
		return fmt.Errorf("service request %s: tenant and building are required", sr.ID)
	}
	return nil
}

// ContractorSnapshot is a by-value copy of the directory entry taken at
// assignment time. Later directory changes do not propagate into it.
type ContractorSnapshot struct {
	ID     string
	Name   string
	Avatar string
	Rating float64
}

// Comment is an immutable message on a request.
type Comment struct {
	ID          string
	UserID      string
	UserName    string
	UserAvatar  string
	UserRole    UserRole
	Message     string
	Timestamp   time.Time
	Attachments []string
}

// Media is an immutable photo or video attached to a request.
type Media struct {
	Type       MediaType
	URL        string
	Filename   *string
	UploadedAt time.Time
}

// ServiceRequestDraft holds the caller-supplied fields of a new request.
// The store fills in ID, status, request date and the viewed flags.
type ServiceRequestDraft struct {
	Title       string
	Description string
	TenantID    string
	BuildingID  string
	UnitID      *string
	Priority    Priority
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
