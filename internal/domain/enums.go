package domain

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "PENDING"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusComplete   RequestStatus = "COMPLETE"
)

func (s RequestStatus) String() string { return string(s) }

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusComplete:
		return true
	}
	return false
}

// Label returns the human-readable status used in ledger titles.
func (s RequestStatus) Label() string {
	switch s {
	case RequestStatusPending:
		return "Pending"
	case RequestStatusInProgress:
		return "In Progress"
	case RequestStatusComplete:
		return "Complete"
	}
	return string(s)
}

// Priority is the urgency a tenant assigns to a request.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// MediaType is the kind of file attached to a request.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

func (m MediaType) String() string { return string(m) }

func (m MediaType) IsValid() bool {
	switch m {
	case MediaTypeImage, MediaTypeVideo:
		return true
	}
	return false
}

// ActivityType identifies the kind of event recorded in the activity ledger.
type ActivityType string

const (
	ActivityCreated            ActivityType = "CREATED"
	ActivityViewed             ActivityType = "VIEWED"
	ActivityContractorAssigned ActivityType = "CONTRACTOR_ASSIGNED"
	ActivityStatusChanged      ActivityType = "STATUS_CHANGED"
	ActivityCommentAdded       ActivityType = "COMMENT_ADDED"
	ActivityMediaUploaded      ActivityType = "MEDIA_UPLOADED"
	ActivityScheduled          ActivityType = "SCHEDULED"
	ActivityArrived            ActivityType = "ARRIVED"
	ActivityCompleted          ActivityType = "COMPLETED"
)

func (a ActivityType) String() string { return string(a) }

func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityCreated, ActivityViewed, ActivityContractorAssigned, ActivityStatusChanged,
		ActivityCommentAdded, ActivityMediaUploaded, ActivityScheduled, ActivityArrived,
		ActivityCompleted:
		return true
	}
	return false
}

// EntityType identifies the kind of entity a ledger item relates to.
type EntityType string

const (
	EntityTypeServiceRequest EntityType = "SERVICE_REQUEST"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	return e == EntityTypeServiceRequest
}

// UserRole represents the authorization level of the acting user.
type UserRole string

const (
	UserRoleTenant   UserRole = "tenant"
	UserRoleLandlord UserRole = "landlord"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleTenant, UserRoleLandlord:
		return true
	}
	return false
}

func (r UserRole) IsLandlord() bool {
	return r == UserRoleLandlord
}

// SortOrder controls the ordering of ledger reads.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Access is the visibility level an actor has on a single request.
type Access int

const (
	AccessNone Access = iota
	AccessRedacted
	AccessFull
)

func (a Access) String() string {
	switch a {
	case AccessRedacted:
		return "redacted"
	case AccessFull:
		return "full"
	}
	return "none"
}
