package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"github.com/heartmarshall/tenantdesk-backend/internal/service/activity"
	"github.com/heartmarshall/tenantdesk-backend/pkg/ctxutil"
)

type activityService interface {
	Timeline(ctx context.Context, requestID string, identity domain.Identity) ([]domain.ActivityLogItem, error)
	Export(ctx context.Context, requestID string, identity domain.Identity, format activity.Format) (*activity.Document, error)
}

// ActivityHandler serves the activity timeline and export endpoints.
type ActivityHandler struct {
	svc activityService
	log *slog.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(svc activityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: logger.With("handler", "activity")}
}

// Timeline handles GET /api/service-requests/{id}/activity.
func (h *ActivityHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	identity, ok := ctxutil.IdentityFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.svc.Timeline(r.Context(), r.PathValue("id"), identity)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]activityResponse, len(items))
	for i, it := range items {
		out[i] = toActivityResponse(it)
	}
	writeJSON(w, http.StatusOK, out)
}

// Export handles GET /api/service-requests/{id}/activity/export?format=json|xlsx.
// The format defaults to json.
func (h *ActivityHandler) Export(w http.ResponseWriter, r *http.Request) {
	identity, ok := ctxutil.IdentityFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	format := activity.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = activity.FormatJSON
	}

	doc, err := h.svc.Export(r.Context(), r.PathValue("id"), identity, format)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Body) //nolint:errcheck
}
