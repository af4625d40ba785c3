package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/tripvote/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMapping pairs a domain sentinel with its HTTP status and code.
// Order matters: the first sentinel found in the chain wins.
var errorMapping = []struct {
	sentinel   error
	status     int
	code       string
	detailOnly bool // report only the text after the sentinel
}{
	{domain.ErrInvalidCategory, http.StatusUnprocessableEntity, "invalid_category", false},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error", true},
	{domain.ErrNotFound, http.StatusNotFound, "not_found", false},
	{domain.ErrTripClosed, http.StatusConflict, "trip_closed", false},
	{domain.ErrPersistence, http.StatusServiceUnavailable, "storage_unavailable", false},
}

// writeError maps err to a status code and writes the JSON error body.
// Unmapped errors are logged and reported as a generic 500 so internal
// details never leak to clients.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.sentinel) {
			if m.status >= http.StatusInternalServerError {
				s.logger.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
				writeJSON(w, m.status, errorBody(m.code, "storage is temporarily unavailable"))
				return
			}
			msg := stripOpPrefixes(err.Error())
			if m.detailOnly {
				msg = unwrapMessage(err, m.sentinel)
			}
			writeJSON(w, m.status, errorBody(m.code, msg))
			return
		}
	}
	s.logger.ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
}

// requestError reports a request rejected before reaching the service layer
// (malformed JSON, missing header).
func requestError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody("bad_request", message))
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// unwrapMessage extracts the human-readable part of a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: title is required" → "title is required"
// and "service.TripService.GetByID: repo.TripRepo.GetByID: trip 42: not found" → "trip 42: not found"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return stripOpPrefixes(msg)
}

// stripOpPrefixes drops leading "pkg.Type.Method: " segments.
func stripOpPrefixes(msg string) string {
	for {
		head, rest, ok := strings.Cut(msg, ": ")
		if !ok || strings.Contains(head, " ") || !strings.Contains(head, ".") {
			return msg
		}
		msg = rest
	}
}
