package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/report"
)

// compareRequest mirrors the POST /compare body. Field semantics are checked
// by the comparison itself so that its messages reach the user.
type compareRequest struct {
	Compensation      amount `json:"compensation" validate:"max=32"`
	Specialty         string `json:"specialty" validate:"max=100"`
	Subspecialty      string `json:"subspecialty,omitempty" validate:"max=100"`
	YearsOfExperience int    `json:"years_of_experience" validate:"lte=80"`
	State             string `json:"state,omitempty" validate:"max=64"`
	Region            string `json:"region,omitempty" validate:"max=64"`
	PracticeSetting   string `json:"practice_setting,omitempty" validate:"max=64"`
}

func (r compareRequest) input() report.ComparisonInput {
	return report.ComparisonInput{
		Compensation:      string(r.Compensation),
		Specialty:         r.Specialty,
		Subspecialty:      r.Subspecialty,
		YearsOfExperience: r.YearsOfExperience,
		State:             r.State,
		Region:            r.Region,
		PracticeSetting:   r.PracticeSetting,
	}
}

// amount accepts a compensation typed as text ("$350,000") or sent as a JSON
// number. Negative numbers and any other literal decode empty and fail the
// comparison's own validation.
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		if f, err := n.Float64(); err == nil && f > 0 {
			*a = amount(strconv.FormatFloat(f, 'f', -1, 64))
			return nil
		}
	}
	*a = ""
	return nil
}

// CompareHandler serves personalized comparisons.
type CompareHandler struct {
	deps Dependencies
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps Dependencies) *CompareHandler {
	return &CompareHandler{deps: deps}
}

// HandleCompare handles POST /compare requests. A comparison that cannot be
// produced answers 422 with the model's error.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	req, err := decodeJSON[compareRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	m, err := h.deps.Compare(r.Context(), req.input())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	if m.Failed() {
		writeJSON(w, http.StatusUnprocessableEntity, m)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
