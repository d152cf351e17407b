package request

import (
	"time"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

type requestRow struct {
	ID                  string     `db:"id"`
	Title               string     `db:"title"`
	Description         string     `db:"description"`
	TenantID            string     `db:"tenant_id"`
	BuildingID          string     `db:"building_id"`
	UnitID              *string    `db:"unit_id"`
	Status              string     `db:"status"`
	Priority            string     `db:"priority"`
	ContractorID        *string    `db:"contractor_id"`
	ContractorName      *string    `db:"contractor_name"`
	ContractorAvatar    *string    `db:"contractor_avatar"`
	ContractorRating    *float64   `db:"contractor_rating"`
	RequestDate         time.Time  `db:"request_date"`
	CompletionDate      *time.Time `db:"completion_date"`
	ViewedByLandlord    bool       `db:"viewed_by_landlord"`
	ViewedAt            *time.Time `db:"viewed_at"`
	ScheduledFor        *time.Time `db:"scheduled_for"`
	ContractorArrivedAt *time.Time `db:"contractor_arrived_at"`
}

func (r requestRow) toDomain(comments []domain.Comment, media []domain.Media) domain.ServiceRequest {
	if comments == nil {
		comments = []domain.Comment{}
	}
	if media == nil {
		media = []domain.Media{}
	}

	sr := domain.ServiceRequest{
		ID:                  r.ID,
		Title:               r.Title,
		Description:         r.Description,
		TenantID:            r.TenantID,
		BuildingID:          r.BuildingID,
		UnitID:              r.UnitID,
		Status:              domain.RequestStatus(r.Status),
		Priority:            domain.Priority(r.Priority),
		RequestDate:         r.RequestDate.UTC(),
		CompletionDate:      utcPtr(r.CompletionDate),
		ViewedByLandlord:    r.ViewedByLandlord,
		ViewedAt:            utcPtr(r.ViewedAt),
		ScheduledFor:        utcPtr(r.ScheduledFor),
		ContractorArrivedAt: utcPtr(r.ContractorArrivedAt),
		Comments:            comments,
		Media:               media,
	}

	if r.ContractorID != nil {
		c := domain.ContractorSnapshot{ID: *r.ContractorID}
		if r.ContractorName != nil {
			c.Name = *r.ContractorName
		}
		if r.ContractorAvatar != nil {
			c.Avatar = *r.ContractorAvatar
		}
		if r.ContractorRating != nil {
			c.Rating = *r.ContractorRating
		}
		sr.AssignedContractor = &c
	}

	return sr
}

type commentRow struct {
	RequestID  string    `db:"request_id"`
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	UserName   string    `db:"user_name"`
	UserAvatar string    `db:"user_avatar"`
	UserRole   string    `db:"user_role"`
	Message    string    `db:"message"`
	Attach     []string  `db:"attachments"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r commentRow) toDomain() domain.Comment {
	attachments := r.Attach
	if attachments == nil {
		attachments = []string{}
	}
	return domain.Comment{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		UserAvatar:  r.UserAvatar,
		UserRole:    domain.UserRole(r.UserRole),
		Message:     r.Message,
		Timestamp:   r.CreatedAt.UTC(),
		Attachments: attachments,
	}
}

type mediaRow struct {
	RequestID  string    `db:"request_id"`
	Type       string    `db:"type"`
	URL        string    `db:"url"`
	Filename   *string   `db:"filename"`
	UploadedAt time.Time `db:"uploaded_at"`
}

func (r mediaRow) toDomain() domain.Media {
	return domain.Media{
		Type:       domain.MediaType(r.Type),
		URL:        r.URL,
		Filename:   r.Filename,
		UploadedAt: r.UploadedAt.UTC(),
	}
}

// contractorRow holds the nullable snapshot columns of an assignment.
type contractorRow struct {
	id, name, avatar *string
	rating           *float64
}

func contractorColumns(c *domain.ContractorSnapshot) contractorRow {
	if c == nil {
		return contractorRow{}
	}
	return contractorRow{id: &c.ID, name: &c.Name, avatar: &c.Avatar, rating: &c.Rating}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
