package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"github.com/heartmarshall/tenantdesk-backend/internal/service/lifecycle"
	"github.com/heartmarshall/tenantdesk-backend/internal/service/visibility"
	"github.com/heartmarshall/tenantdesk-backend/pkg/ctxutil"
)

// lifecycleService defines the commands ServiceRequestHandler needs.
type lifecycleService interface {
	CreateRequest(ctx context.Context, input lifecycle.CreateRequestInput) (*domain.ServiceRequest, error)
	AddComment(ctx context.Context, input lifecycle.AddCommentInput) (*domain.ServiceRequest, error)
	AddMedia(ctx context.Context, input lifecycle.AddMediaInput) (*domain.ServiceRequest, error)
	AssignContractor(ctx context.Context, input lifecycle.AssignContractorInput) (*domain.ServiceRequest, error)
	MarkViewed(ctx context.Context, input lifecycle.MarkViewedInput) (*domain.ServiceRequest, error)
	SetStatus(ctx context.Context, input lifecycle.SetStatusInput) (*domain.ServiceRequest, error)
	ScheduleVisit(ctx context.Context, input lifecycle.ScheduleVisitInput) (*domain.ServiceRequest, error)
	RecordArrival(ctx context.Context, input lifecycle.RecordArrivalInput) (*domain.ServiceRequest, error)
}

// visibilityService defines the queries ServiceRequestHandler needs.
type visibilityService interface {
	ListForViewer(ctx context.Context, identity domain.Identity) ([]visibility.View, error)
	Get(ctx context.Context, id string, identity domain.Identity) (*visibility.View, error)
	Authorize(ctx context.Context, id string, identity domain.Identity, need domain.Access) error
}

// ServiceRequestHandler serves the service request REST endpoints.
type ServiceRequestHandler struct {
	lifecycle  lifecycleService
	visibility visibilityService
	log        *slog.Logger
}

// NewServiceRequestHandler creates a ServiceRequestHandler.
func NewServiceRequestHandler(lc lifecycleService, vis visibilityService, logger *slog.Logger) *ServiceRequestHandler {
	return &ServiceRequestHandler{lifecycle: lc, visibility: vis, log: logger.With("handler", "service_requests")}
}

type createRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	BuildingID  string  `json:"buildingId"`
	UnitID      *string `json:"unitId"`
	Priority    string  `json:"priority"`
}

type commentRequest struct {
	Message     string   `json:"message"`
	Attachments []string `json:"attachments"`
}

type mediaItemRequest struct {
	Type     string  `json:"type"`
	URL      string  `json:"url"`
	Filename *string `json:"filename"`
}

type mediaRequest struct {
	Items []mediaItemRequest `json:"items"`
}

type contractorRequest struct {
	ContractorID string `json:"contractorId"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type scheduleRequest struct {
	At time.Time `json:"at"`
}

// Create handles POST /api/service-requests.
func (h *ServiceRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sr, err := h.lifecycle.CreateRequest(r.Context(), lifecycle.CreateRequestInput{
		Title:       req.Title,
		Description: req.Description,
		BuildingID:  req.BuildingID,
		UnitID:      req.UnitID,
		Priority:    domain.Priority(req.Priority),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRequestResponse(visibility.View{Request: *sr}))
}

// List handles GET /api/service-requests.
func (h *ServiceRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	views, err := h.visibility.ListForViewer(r.Context(), identity)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]requestResponse, len(views))
	for i, v := range views {
		out[i] = toRequestResponse(v)
	}
	writeJSON(w, http.StatusOK, listResponse{Items: out, Count: len(out)})
}

// Get handles GET /api/service-requests/{id}.
func (h *ServiceRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	view, err := h.visibility.Get(r.Context(), r.PathValue("id"), identity)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestResponse(*view))
}

// AddComment handles POST /api/service-requests/{id}/comments.
func (h *ServiceRequestHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.mutate(w, r, func(ctx context.Context, id string) (*domain.ServiceRequest, error) {
		return h.lifecycle.AddComment(ctx, lifecycle.AddCommentInput{
			RequestID:   id,
			Message:     req.Message,
			Attachments: req.Attachments,
		})
	})
}

// AddMedia handles POST /api/service-requests/{id}/media.
func (h *ServiceRequestHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items := make([]lifecycle.MediaItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = lifecycle.MediaItem{Type: domain.MediaType(it.Type), URL: it.URL, Filename: it.Filename}
	}
	h.mutate(w, r, func(ctx context.Context, id string) (*domain.ServiceRequest, error) {
		return h.lifecycle.AddMedia(ctx, lifecycle.AddMediaInput{RequestID: id, Items: items})
	})
}

// AssignContractor handles POST /api/service-requests/{id}/contractor.
func (h *ServiceRequestHandler) AssignContractor(w http.ResponseWriter, r *http.Request) {
	var req contractorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.mutate(w, r, func(ctx context.Context, id string) (*domain.ServiceRequest, error) {
		return h.lifecycle.AssignContractor(ctx, lifecycle.AssignContractorInput{RequestID: id, ContractorID: req.ContractorID})
	})
}

// MarkViewed handles POST /api/service-requests/{id}/view.
func (h *ServiceRequestHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, id string) (*domain.ServiceRequest, error) {
		return h.lifecycle.MarkViewed(ctx, lifecycle.MarkViewedInput{RequestID: id})
	})
}

// SetStatus handles POST /api/service-requests/{id}/status.
func (h *ServiceRequestHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.mutate(w, r, func(ctx context.Context, id string) (*domain.ServiceRequest, error) {
		return h.lifecycle.SetStatus(ctx, lifecycle.SetStatusInput{RequestID: id, Status: domain.RequestStatus(req.Status)})
	})
}

// ScheduleVisit handles POST /api/service-requests/{id}/schedule.
func (h *ServiceRequestHandler) ScheduleVisit(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.mutate(w, r, func(ctx context.Context, id string) (*domain.ServiceRequest, error) {
		return h.lifecycle.ScheduleVisit(ctx, lifecycle.ScheduleVisitInput{RequestID: id, At: req.At})
	})
}

// RecordArrival handles POST /api/service-requests/{id}/arrival.
func (h *ServiceRequestHandler) RecordArrival(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, id string) (*domain.ServiceRequest, error) {
		return h.lifecycle.RecordArrival(ctx, lifecycle.RecordArrivalInput{RequestID: id})
	})
}

// mutate checks that the caller has full access to the request before
// running cmd, so nobody can act on a request outside their scope.
func (h *ServiceRequestHandler) mutate(w http.ResponseWriter, r *http.Request, cmd func(ctx context.Context, id string) (*domain.ServiceRequest, error)) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.visibility.Authorize(r.Context(), id, identity, domain.AccessFull); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	sr, err := cmd(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestResponse(visibility.View{Request: *sr}))
}

func (h *ServiceRequestHandler) identity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	identity, ok := ctxutil.IdentityFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return domain.Identity{}, false
	}
	return identity, true
}
