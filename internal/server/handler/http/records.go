package http

import (
	"net/http"

	"github.com/atinyakov/SmileCare/internal/service"
	"go.uber.org/zap"
)

// RecordHandler uploads and lists dental records of the current user.
type RecordHandler struct {
	Sessions SessionService
	Logger   *zap.Logger
}

// UploadRequest is the JSON payload of a record upload. Data is the raw file,
// base64-encoded as encoding/json does for byte slices.
type UploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Provider string `json:"provider"`
	Category string `json:"category"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// List returns the records, filtered by ?q= when present.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		writeJSON(w, http.StatusOK, h.Sessions.SearchRecords(q))
		return
	}
	writeJSON(w, http.StatusOK, h.Sessions.Records())
}

// Create stores an uploaded file as a record.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if !decode(w, r, &req) {
		return
	}
	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = service.DetectMIME(req.Name, req.Data)
	}
	var content string
	if len(req.Data) > 0 {
		content = service.DataURL(mimeType, req.Data)
	}
	rec, err := h.Sessions.AddDentalRecord(r.Context(), service.RecordUpload{
		Name:        req.Name,
		Type:        req.Type,
		Provider:    req.Provider,
		Category:    req.Category,
		MIMEType:    mimeType,
		FileContent: content,
	})
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
