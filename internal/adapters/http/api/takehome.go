package api

import (
	"errors"
	"net/http"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/takehome"
	"github.com/shopspring/decimal"
)

// takeHomeRequest mirrors the POST /take-home body. Amounts may be JSON
// numbers or numeric strings.
type takeHomeRequest struct {
	GrossSalary            decimal.Decimal `json:"gross_salary"`
	FilingStatus           string          `json:"filing_status,omitempty" validate:"omitempty,oneof=single married_joint"`
	State                  string          `json:"state,omitempty" validate:"max=64"`
	RetirementContribution decimal.Decimal `json:"retirement_contribution,omitempty"`
}

// TakeHomeHandler serves net pay estimates.
type TakeHomeHandler struct {
	deps Dependencies
}

// NewTakeHomeHandler creates a new take-home handler.
func NewTakeHomeHandler(deps Dependencies) *TakeHomeHandler {
	return &TakeHomeHandler{deps: deps}
}

// HandleTakeHome handles POST /take-home requests.
func (h *TakeHomeHandler) HandleTakeHome(w http.ResponseWriter, r *http.Request) {
	const op = "api.take_home"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	req, err := decodeJSON[takeHomeRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.TakeHome(r.Context(), takehome.Input{
		GrossSalary:            req.GrossSalary,
		Status:                 takehome.FilingStatus(req.FilingStatus),
		State:                  req.State,
		RetirementContribution: req.RetirementContribution,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, takehome.ErrInvalidInput), errors.Is(err, takehome.ErrUnknownState):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", Wrap(op, err))
	}
}
