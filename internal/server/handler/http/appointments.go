package http

import (
	"net/http"
	"strconv"

	"github.com/atinyakov/SmileCare/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AppointmentHandler books, lists and cancels appointments of the current user.
type AppointmentHandler struct {
	Sessions SessionService
	Logger   *zap.Logger
}

// List returns the appointments in booking order.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Sessions.Appointments())
}

// Next returns the appointment shown on the dashboard, or 204 when there is none.
func (h *AppointmentHandler) Next(w http.ResponseWriter, r *http.Request) {
	apt := h.Sessions.NextAppointment()
	if apt == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, apt)
}

// Create books an appointment from {date, time, doctor, type}.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Appointment
	if !decode(w, r, &req) {
		return
	}
	apt, err := h.Sessions.AddAppointment(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	if apt == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusCreated, apt)
}

// Cancel removes the appointment with the id in the path. Unknown ids succeed.
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid appointment id")
		return
	}
	if err := h.Sessions.CancelAppointment(r.Context(), id); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
