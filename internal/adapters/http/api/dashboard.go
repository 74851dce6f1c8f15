package api

import (
	"net/http"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
)

// dashboardQuery mirrors the GET /dashboard query parameters.
type dashboardQuery struct {
	Specialty       string `json:"specialty" validate:"max=100"`
	Subspecialty    string `json:"subspecialty" validate:"max=100"`
	Region          string `json:"region" validate:"max=64"`
	PracticeSetting string `json:"practice_setting" validate:"max=64"`
}

// DashboardHandler serves the aggregate dashboard.
type DashboardHandler struct {
	deps Dependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps Dependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleDashboard handles GET /dashboard?specialty=&subspecialty=&region=&practice_setting=.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	q := r.URL.Query()
	req := dashboardQuery{
		Specialty:       q.Get("specialty"),
		Subspecialty:    q.Get("subspecialty"),
		Region:          q.Get("region"),
		PracticeSetting: q.Get("practice_setting"),
	}
	if err := check(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	d, err := h.deps.Dashboard(r.Context(), model.FilterCriteria(req))
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, d)
}
