package service

import (
	"encoding/base64"
	"mime"
	"net/http"
	"path/filepath"
)

// DataURL embeds data in a base64 data URL, the form dental records keep
// their file content in.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DetectMIME guesses the MIME type of an uploaded file from its extension,
// falling back to content sniffing.
func DetectMIME(name string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
