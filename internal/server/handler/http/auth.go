// Package http exposes the portal stores over a JSON API.
package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/SmileCare/internal/auth"
	"github.com/atinyakov/SmileCare/internal/models"
	"github.com/atinyakov/SmileCare/internal/service"
	"go.uber.org/zap"
)

// SessionService is the part of the session store the handlers need.
type SessionService interface {
	Register(ctx context.Context, name, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	Current() *models.User

	Appointments() []models.Appointment
	NextAppointment() *models.Appointment
	AddAppointment(ctx context.Context, data models.Appointment) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id int64) error

	Records() []models.DentalRecord
	SearchRecords(query string) []models.DentalRecord
	AddDentalRecord(ctx context.Context, in service.RecordUpload) (*models.DentalRecord, error)
}

// AuthHandler handles signup, login, logout and the current-user view.
type AuthHandler struct {
	Sessions SessionService
	// Secret signs the session tokens.
	Secret string
	Logger *zap.Logger
}

// RegisterRequest is the JSON payload for signup.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by signup and login.
type SessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates an account, starts a session for it and returns a token
// bound to the new user.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.Sessions.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	h.respondSession(w, http.StatusCreated, user)
}

// Login starts a session for an existing account.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	h.respondSession(w, http.StatusOK, user)
}

func (h *AuthHandler) respondSession(w http.ResponseWriter, code int, user models.User) {
	token, err := auth.MakeToken(user.ID, h.Secret)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, code, SessionResponse{Token: token, User: user})
}

// Logout ends the session. Tokens issued for it stop working.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context()); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the logged-in user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u := h.Sessions.Current()
	if u == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
