package rest

import (
	"net/http"

	"github.com/heartmarshall/tenantdesk-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health          *HealthHandler
	ServiceRequests *ServiceRequestHandler
	Activity        *ActivityHandler
	Contractors     *ContractorHandler
}

// NewRouter mounts the probes unauthenticated and wraps every /api route
// with api, which carries the auth and rate limit middleware.
func NewRouter(h Handlers, api middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	protected := func(fn http.HandlerFunc) http.Handler {
		return api(middleware.RequireIdentity(fn))
	}

	sr := h.ServiceRequests
	mux.Handle("POST /api/service-requests", protected(sr.Create))
	mux.Handle("GET /api/service-requests", protected(sr.List))
	mux.Handle("GET /api/service-requests/{id}", protected(sr.Get))
	mux.Handle("POST /api/service-requests/{id}/comments", protected(sr.AddComment))
	mux.Handle("POST /api/service-requests/{id}/media", protected(sr.AddMedia))
	mux.Handle("POST /api/service-requests/{id}/contractor", protected(sr.AssignContractor))
	mux.Handle("POST /api/service-requests/{id}/view", protected(sr.MarkViewed))
	mux.Handle("POST /api/service-requests/{id}/status", protected(sr.SetStatus))
	mux.Handle("POST /api/service-requests/{id}/schedule", protected(sr.ScheduleVisit))
	mux.Handle("POST /api/service-requests/{id}/arrival", protected(sr.RecordArrival))

	mux.Handle("GET /api/service-requests/{id}/activity", protected(h.Activity.Timeline))
	mux.Handle("GET /api/service-requests/{id}/activity/export", protected(h.Activity.Export))

	mux.Handle("GET /api/contractors", protected(h.Contractors.List))

	return mux
}
