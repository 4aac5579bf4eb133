package common

import (
	"encoding/json"
	"net/http"
)

// Header values every response carries.
const (
	HeaderAllowOrigin = "Access-Control-Allow-Origin"
	AllowAnyOrigin    = "*"
	ContentTypeJSON   = "application/json"
)

// MessageResponse is the body of informational and client error responses
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of unexpected failure responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// SetHeaders applies the JSON envelope headers
func SetHeaders(h http.Header) {
	h.Set("Content-Type", ContentTypeJSON)
	h.Set(HeaderAllowOrigin, AllowAnyOrigin)
}

// RespondJSON sends data as a JSON body with the envelope headers
func RespondJSON(w http.ResponseWriter, status int, data interface{}) error {
	SetHeaders(w.Header())
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// RespondMessage sends a {"message": ...} body
func RespondMessage(w http.ResponseWriter, status int, message string) error {
	return RespondJSON(w, status, MessageResponse{Message: message})
}

// RespondError sends an {"error": ...} body
func RespondError(w http.ResponseWriter, status int, message string) error {
	return RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondNoContent sends an empty body with the envelope headers
func RespondNoContent(w http.ResponseWriter) {
	SetHeaders(w.Header())
	w.WriteHeader(http.StatusNoContent)
}
