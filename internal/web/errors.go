package web

// errors.go provides unified error response handling for the web layer.
// Technical details are logged server-side with the request ID; clients get
// a user-friendly message, a code they can quote, and a suggested action.

import (
	"encoding/json"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mapknit/mapknit/internal/importer"
	"github.com/mapknit/mapknit/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Action string `json:"action,omitempty"`
}

// respondError logs err with request context and writes a JSON error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	resp := ErrorResponse{Error: err.Error()}

	var pe *importer.ParseError
	if errors.As(err, &pe) {
		resp.Code = pe.Code
		resp.Action = actionFor(pe.Code)
	}

	logger := logging.FromContext(r.Context())
	level := logger.Error
	if statusCode < http.StatusInternalServerError {
		level = logger.Warn
	}
	level("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", resp.Code,
		"request_id", chimw.GetReqID(r.Context()),
	)

	respondJSON(w, statusCode, resp)
}

// actionFor suggests a next step for an import rejection code.
func actionFor(code string) string {
	switch code {
	case importer.CodeEmpty:
		return "Paste or upload a non-empty map document"
	case importer.CodeTooLarge:
		return "Reduce the document size and try again"
	case importer.CodeUnsafeSyntax:
		return "Remove YAML anchors, aliases and merge keys from the document"
	case importer.CodeMalformed:
		return "Check the document for YAML syntax errors"
	case importer.CodeBadShape:
		return "The document must be a mapping with a top-level 'sets' key"
	case importer.CodeTooManySets, importer.CodeTooManyRefs:
		return "Split the document into smaller maps"
	case importer.CodeMultipleDocs:
		return "Remove the '---' separators; only one document is allowed"
	default:
		return ""
	}
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
