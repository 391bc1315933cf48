package http

import (
	"net/http"

	"github.com/atinyakov/SmileCare/internal/catalog"
)

// PlanHandler serves the current user's treatment plan.
type PlanHandler struct {
	Sessions SessionService
}

// Get returns the plan with progress and cost breakdown.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	u := h.Sessions.Current()
	if u == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, catalog.TreatmentPlan(u.Name).Summary())
}
