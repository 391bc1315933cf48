// Package models defines the core data structures for patients, their
// appointments and dental records, and the marketplace catalog.
package models

import "strings"

// User represents a registered patient.
type User struct {
	// ID is the unique identifier for the user ("user-<uuid>").
	ID string `json:"id"`
	// Name is the display name entered at signup.
	Name string `json:"name"`
	// Email is the login name; compared case-insensitively.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the password. It is only kept in
	// the registry and is stripped from every public view.
	PasswordHash string `json:"passwordHash,omitempty"`
	// Appointments booked by the user, in booking order.
	Appointments []Appointment `json:"appointments"`
	// Records uploaded by the user, in upload order.
	Records []DentalRecord `json:"records"`
}

// Public returns a deep copy of u without the password hash.
func (u User) Public() User {
	out := u
	out.PasswordHash = ""
	out.Appointments = append([]Appointment{}, u.Appointments...)
	out.Records = append([]DentalRecord{}, u.Records...)
	return out
}

// Appointment is a booked visit.
type Appointment struct {
	// ID is derived from the booking time in milliseconds.
	ID int64 `json:"id"`
	// Date is the calendar day, e.g. "June 1, 2024".
	Date string `json:"date"`
	// Time is the slot label, e.g. "9:00 AM".
	Time string `json:"time"`
	// Doctor is the doctor's display name.
	Doctor string `json:"doctor"`
	// Type is the appointment type label, e.g. "Regular Checkup".
	Type string `json:"type"`
}

// DentalRecord is a document uploaded by the patient.
type DentalRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Provider string `json:"provider"`
	Category string `json:"category"`
	Format   string `json:"format"`
	Date     string `json:"date"`
	// FileContent is the document as a base64 data URL.
	FileContent string `json:"fileContent"`
}

// RecordFormat defines the display format of a dental record.
type RecordFormat string

const (
	// FormatImage is used for image/* uploads.
	FormatImage RecordFormat = "Image"
	// FormatPDF is used for application/pdf uploads.
	FormatPDF RecordFormat = "PDF"
	// FormatVideo is used for video/* uploads.
	FormatVideo RecordFormat = "Video"
	// FormatAudio is used for audio/* uploads.
	FormatAudio RecordFormat = "Audio"
	// FormatDocument is the fallback for everything else.
	FormatDocument RecordFormat = "Document"
)

// FormatFromMIME maps a MIME type to the record format shown to the patient.
func FormatFromMIME(mime string) RecordFormat {
	mime = strings.ToLower(strings.TrimSpace(mime))
	switch {
	case strings.HasPrefix(mime, "image/"):
		return FormatImage
	case mime == "application/pdf":
		return FormatPDF
	case strings.HasPrefix(mime, "video/"):
		return FormatVideo
	case strings.HasPrefix(mime, "audio/"):
		return FormatAudio
	default:
		return FormatDocument
	}
}
