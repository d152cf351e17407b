package rest

import (
	"time"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"github.com/heartmarshall/tenantdesk-backend/internal/service/visibility"
)

type listResponse struct {
	Items []requestResponse `json:"items"`
	Count int               `json:"count"`
}

type requestResponse struct {
	ID                  string              `json:"id"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	TenantID            string              `json:"tenantId,omitempty"`
	BuildingID          string              `json:"buildingId"`
	UnitID              *string             `json:"unitId"`
	Status              string              `json:"status"`
	Priority            string              `json:"priority"`
	AssignedContractor  *contractorResponse `json:"assignedContractor"`
	RequestDate         time.Time           `json:"requestDate"`
	CompletionDate      *time.Time          `json:"completionDate"`
	ViewedByLandlord    bool                `json:"viewedByLandlord"`
	ViewedAt            *time.Time          `json:"viewedAt"`
	ScheduledFor        *time.Time          `json:"scheduledFor"`
	ContractorArrivedAt *time.Time          `json:"contractorArrivedAt"`
	Comments            []commentResponse   `json:"comments"`
	Media               []mediaResponse     `json:"media"`
	Redacted            bool                `json:"redacted,omitempty"`
}

type contractorResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar string  `json:"avatar"`
	Rating float64 `json:"rating"`
}

type commentResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	UserAvatar  string    `json:"userAvatar"`
	UserRole    string    `json:"userRole"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Attachments []string  `json:"attachments"`
}

type mediaResponse struct {
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	Filename   *string   `json:"filename,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type activityResponse struct {
	ID                string    `json:"id"`
	Type              string    `json:"type"`
	Title             string    `json:"title"`
	Timestamp         time.Time `json:"timestamp"`
	Description       *string   `json:"description,omitempty"`
	UserID            *string   `json:"userId,omitempty"`
	UserName          *string   `json:"userName,omitempty"`
	RelatedEntityID   string    `json:"relatedEntityId"`
	RelatedEntityType string    `json:"relatedEntityType"`
}

type directoryContractorResponse struct {
	contractorResponse
	Phone       string   `json:"phone,omitempty"`
	Email       string   `json:"email,omitempty"`
	Specialties []string `json:"specialties"`
	IsActive    bool     `json:"isActive"`
}

func toRequestResponse(v visibility.View) requestResponse {
	sr := v.Request
	out := requestResponse{
		ID:                  sr.ID,
		Title:               sr.Title,
		Description:         sr.Description,
		TenantID:            sr.TenantID,
		BuildingID:          sr.BuildingID,
		UnitID:              sr.UnitID,
		Status:              sr.Status.String(),
		Priority:            sr.Priority.String(),
		RequestDate:         sr.RequestDate,
		CompletionDate:      sr.CompletionDate,
		ViewedByLandlord:    sr.ViewedByLandlord,
		ViewedAt:            sr.ViewedAt,
		ScheduledFor:        sr.ScheduledFor,
		ContractorArrivedAt: sr.ContractorArrivedAt,
		Comments:            make([]commentResponse, len(sr.Comments)),
		Media:               make([]mediaResponse, len(sr.Media)),
		Redacted:            v.Redacted,
	}
	if c := sr.AssignedContractor; c != nil {
		out.AssignedContractor = &contractorResponse{ID: c.ID, Name: c.Name, Avatar: c.Avatar, Rating: c.Rating}
	}
	for i, c := range sr.Comments {
		attachments := c.Attachments
		if attachments == nil {
			attachments = []string{}
		}
		out.Comments[i] = commentResponse{
			ID:          c.ID,
			UserID:      c.UserID,
			UserName:    c.UserName,
			UserAvatar:  c.UserAvatar,
			UserRole:    c.UserRole.String(),
			Message:     c.Message,
			Timestamp:   c.Timestamp,
			Attachments: attachments,
		}
	}
	for i, m := range sr.Media {
		out.Media[i] = mediaResponse{Type: m.Type.String(), URL: m.URL, Filename: m.Filename, UploadedAt: m.UploadedAt}
	}
	return out
}

func toActivityResponse(it domain.ActivityLogItem) activityResponse {
	return activityResponse{
		ID:                it.ID,
		Type:              it.Type.String(),
		Title:             it.Title,
		Timestamp:         it.Timestamp,
		Description:       it.Description,
		UserID:            it.UserID,
		UserName:          it.UserName,
		RelatedEntityID:   it.RelatedEntityID,
		RelatedEntityType: it.RelatedEntityType.String(),
	}
}

func toDirectoryContractorResponse(c domain.Contractor) directoryContractorResponse {
	specialties := c.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return directoryContractorResponse{
		contractorResponse: contractorResponse{ID: c.ID, Name: c.Name, Avatar: c.Avatar, Rating: c.Rating},
		Phone:              c.Phone,
		Email:              c.Email,
		Specialties:        specialties,
		IsActive:           c.IsActive,
	}
}
