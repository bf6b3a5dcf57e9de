package httpapi

import (
	"net/http"

	"hostelmate-data/internal/service"

	"go.uber.org/zap"
)

// MeHandler GET /api/v1/me
type MeHandler struct {
	svc    *service.MeService
	logger *zap.Logger
}

func NewMeHandler(svc *service.MeService, logger *zap.Logger) *MeHandler {
	return &MeHandler{svc: svc, logger: logger}
}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())
	me, err := h.svc.Me(r.Context(), caller)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(me))
}
