package domain

import (
	"fmt"
	"time"
)

// ActivityLogItem is one immutable ledger entry.
type ActivityLogItem struct {
	ID                string
	Type              ActivityType
	Title             string
	Timestamp         time.Time
	Description       *string
	UserID            *string
	UserName          *string
	RelatedEntityID   string
	RelatedEntityType EntityType
}

// FormatActivityID builds the ledger ID for the n-th entry of an entity.
func FormatActivityID(relatedEntityID string, ordinal int) string {
	return fmt.Sprintf("AL-%s-%04d", relatedEntityID, ordinal)
}

// Validate checks the caller-supplied fields of an item before append.
func (a ActivityLogItem) Validate() error {
	var errs []FieldError
	if a.RelatedEntityID == "" {
		errs = append(errs, FieldError{Field: "related_entity_id", Message: "required"})
	}
	if !a.RelatedEntityType.IsValid() {
		errs = append(errs, FieldError{Field: "related_entity_type", Message: "invalid value"})
	}
	if !a.Type.IsValid() {
		errs = append(errs, FieldError{Field: "type", Message: "invalid value"})
	}
	if a.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
