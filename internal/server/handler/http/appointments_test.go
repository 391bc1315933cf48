package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/SmileCare/internal/models"
	"github.com/atinyakov/SmileCare/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestAppointmentHandler_Create(t *testing.T) {
	body := `{"date":"June 1, 2024","time":"9:00 AM","doctor":"Dr. Sarah Johnson","type":"Regular Checkup"}`

	svc := &fakeSessions{current: &models.User{ID: "user-1"}}
	h := &AppointmentHandler{Sessions: svc}
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest("POST", "/appointments", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":42`)
	assert.Equal(t, "9:00 AM", svc.gotAppointment.Time)

	rec = httptest.NewRecorder()
	(&AppointmentHandler{Sessions: &fakeSessions{}}).Create(rec, httptest.NewRequest("POST", "/appointments", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	(&AppointmentHandler{Sessions: &fakeSessions{err: service.ErrValidation}}).Create(rec, httptest.NewRequest("POST", "/appointments", bytes.NewBufferString(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppointmentHandler_Cancel(t *testing.T) {
	svc := &fakeSessions{}
	h := &AppointmentHandler{Sessions: svc}

	rec := httptest.NewRecorder()
	h.Cancel(rec, withURLParam(httptest.NewRequest("DELETE", "/appointments/17", nil), "id", "17"))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(17), svc.cancelled)

	rec = httptest.NewRecorder()
	h.Cancel(rec, withURLParam(httptest.NewRequest("DELETE", "/appointments/x", nil), "id", "x"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppointmentHandler_List(t *testing.T) {
	rec := httptest.NewRecorder()
	(&AppointmentHandler{Sessions: &fakeSessions{}}).List(rec, httptest.NewRequest("GET", "/appointments", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dr. Sarah Johnson")
}
