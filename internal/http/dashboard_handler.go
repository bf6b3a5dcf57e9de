package httpapi

import (
	"fmt"
	"net/http"

	"hostelmate-data/internal/service"

	"go.uber.org/zap"
)

// DashboardHandler 仪表盘接口
type DashboardHandler struct {
	svc    service.DashboardService
	logger *zap.Logger
}

func NewDashboardHandler(svc service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

// GetKPIs GET /api/v1/dashboard/kpis
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())

	p, err := h.svc.GetDashboard(r.Context(), caller, r.URL.Query())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

// Export GET /api/v1/dashboard/export：参数与 kpis 相同，返回 xlsx
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())

	p, err := h.svc.GetDashboard(r.Context(), caller, r.URL.Query())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	data, err := GenerateDashboardWorkbook(p)
	if err != nil {
		writeError(w, r, h.logger, fmt.Errorf("generate dashboard workbook: %w", err))
		return
	}

	filename := fmt.Sprintf("dashboard_%s_%s.xlsx", p.KPIs.SelectedStartDate, p.KPIs.SelectedEndDate)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
