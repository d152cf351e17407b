package lifecycle

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000
	maxMessageLen     = 5000
	maxAttachments    = 10
	maxMediaItems     = 20
)

// CreateRequestInput holds the parameters for filing a new request.
// When both BuildingID and UnitID are empty the tenant's own unit is used;
// BuildingID without UnitID files a common-area request.
type CreateRequestInput struct {
	Title       string
	Description string
	BuildingID  string
	UnitID      *string
	Priority    domain.Priority
}

// Validate checks all fields and collects all errors.
func (i CreateRequestInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	if utf8.RuneCountInString(i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 5000 characters"})
	}
	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be LOW, MEDIUM or HIGH"})
	}
	if i.UnitID != nil && strings.TrimSpace(*i.UnitID) == "" {
		errs = append(errs, domain.FieldError{Field: "unit_id", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddCommentInput holds the parameters for commenting on a request.
type AddCommentInput struct {
	RequestID   string
	Message     string
	Attachments []string
}

// Validate checks all fields and collects all errors.
func (i AddCommentInput) Validate() error {
	var errs []domain.FieldError

	if i.RequestID == "" {
		errs = append(errs, domain.FieldError{Field: "request_id", Message: "required"})
	}
	msg := strings.TrimSpace(i.Message)
	if msg == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if utf8.RuneCountInString(msg) > maxMessageLen {
		errs = append(errs, domain.FieldError{Field: "message", Message: "max 5000 characters"})
	}
	if len(i.Attachments) > maxAttachments {
		errs = append(errs, domain.FieldError{Field: "attachments", Message: "max 10 attachments"})
	}
	for _, a := range i.Attachments {
		if strings.TrimSpace(a) == "" {
			errs = append(errs, domain.FieldError{Field: "attachments", Message: "must not contain empty values"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MediaItem is one upload in an AddMediaInput.
type MediaItem struct {
	Type     domain.MediaType
	URL      string
	Filename *string
}

// AddMediaInput holds the parameters for attaching media to a request.
type AddMediaInput struct {
	RequestID string
	Items     []MediaItem
}

// Validate checks all fields and collects all errors.
func (i AddMediaInput) Validate() error {
	var errs []domain.FieldError

	if i.RequestID == "" {
		errs = append(errs, domain.FieldError{Field: "request_id", Message: "required"})
	}
	if len(i.Items) == 0 {
		errs = append(errs, domain.FieldError{Field: "items", Message: "at least one item required"})
	}
	if len(i.Items) > maxMediaItems {
		errs = append(errs, domain.FieldError{Field: "items", Message: "max 20 items"})
	}
	for _, item := range i.Items {
		if !item.Type.IsValid() {
			errs = append(errs, domain.FieldError{Field: "items.type", Message: "must be image or video"})
			break
		}
	}
	for _, item := range i.Items {
		if strings.TrimSpace(item.URL) == "" {
			errs = append(errs, domain.FieldError{Field: "items.url", Message: "required"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AssignContractorInput holds the parameters for assigning a contractor.
type AssignContractorInput struct {
	RequestID    string
	ContractorID string
}

// Validate checks all fields and collects all errors.
func (i AssignContractorInput) Validate() error {
	var errs []domain.FieldError

	if i.RequestID == "" {
		errs = append(errs, domain.FieldError{Field: "request_id", Message: "required"})
	}
	if strings.TrimSpace(i.ContractorID) == "" {
		errs = append(errs, domain.FieldError{Field: "contractor_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MarkViewedInput holds the parameters for marking a request as viewed.
type MarkViewedInput struct {
	RequestID string
}

// Validate checks all fields and collects all errors.
func (i MarkViewedInput) Validate() error {
	if i.RequestID == "" {
		return domain.NewValidationError("request_id", "required")
	}
	return nil
}

// SetStatusInput holds the parameters for a manual status change.
type SetStatusInput struct {
	RequestID string
	Status    domain.RequestStatus
}

// Validate checks all fields and collects all errors.
func (i SetStatusInput) Validate() error {
	var errs []domain.FieldError

	if i.RequestID == "" {
		errs = append(errs, domain.FieldError{Field: "request_id", Message: "required"})
	}
	switch {
	case !i.Status.IsValid():
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be IN_PROGRESS or COMPLETE"})
	case i.Status == domain.RequestStatusPending:
		errs = append(errs, domain.FieldError{Field: "status", Message: "requests cannot return to PENDING"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ScheduleVisitInput holds the parameters for scheduling a contractor visit.
type ScheduleVisitInput struct {
	RequestID string
	At        time.Time
}

// Validate checks all fields and collects all errors.
func (i ScheduleVisitInput) Validate() error {
	var errs []domain.FieldError

	if i.RequestID == "" {
		errs = append(errs, domain.FieldError{Field: "request_id", Message: "required"})
	}
	if i.At.IsZero() {
		errs = append(errs, domain.FieldError{Field: "at", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RecordArrivalInput holds the parameters for recording a contractor arrival.
type RecordArrivalInput struct {
	RequestID string
}

// Validate checks all fields and collects all errors.
func (i RecordArrivalInput) Validate() error {
	if i.RequestID == "" {
		return domain.NewValidationError("request_id", "required")
	}
	return nil
}
