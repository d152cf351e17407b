package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"github.com/heartmarshall/tenantdesk-backend/pkg/ctxutil"
)

type contractorLister interface {
	ListContractors(ctx context.Context, activeOnly bool) ([]domain.Contractor, error)
}

// ContractorHandler exposes the contractor directory to landlords.
type ContractorHandler struct {
	directory contractorLister
	log       *slog.Logger
}

// NewContractorHandler creates a ContractorHandler.
func NewContractorHandler(directory contractorLister, logger *slog.Logger) *ContractorHandler {
	return &ContractorHandler{directory: directory, log: logger.With("handler", "contractors")}
}

// List handles GET /api/contractors. Inactive contractors are included
// only with ?all=true.
func (h *ContractorHandler) List(w http.ResponseWriter, r *http.Request) {
	if !ctxutil.IsLandlordCtx(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	contractors, err := h.directory.ListContractors(r.Context(), r.URL.Query().Get("all") != "true")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]directoryContractorResponse, len(contractors))
	for i, c := range contractors {
		out[i] = toDirectoryContractorResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}
