// Package problemdetails renders RFC 7807 problem documents shared by handlers and middleware.
package problemdetails

import (
	"encoding/json"
	"net/http"
)

// ContentType is the media type of problem documents.
const ContentType = "application/problem+json"

// Problem type URIs.
const (
	TypeValidation = "https://idcheck.palmyra.dev/problems/validation-error"
	TypeNotFound   = "https://idcheck.palmyra.dev/problems/not-found"
	TypeInternal   = "https://idcheck.palmyra.dev/problems/internal-error"
)

// ProblemDetails mirrors the ProblemDetails schema of the validations contract.
type ProblemDetails struct {
	Type   *string              `json:"type,omitempty"`
	Title  string               `json:"title"`
	Status int                  `json:"status"`
	Detail *string              `json:"detail,omitempty"`
	Errors *map[string][]string `json:"errors,omitempty"`
}

// New builds a problem, copying fieldErrors so callers can keep mutating theirs.
func New(title, detail, problemType string, status int, fieldErrors map[string][]string) ProblemDetails {
	problem := ProblemDetails{
		Title:  title,
		Status: status,
	}

	if detail != "" {
		problem.Detail = &detail
	}
	if problemType != "" {
		problem.Type = &problemType
	}

	if len(fieldErrors) > 0 {
		copied := make(map[string][]string, len(fieldErrors))
		for field, messages := range fieldErrors {
			copied[field] = append([]string(nil), messages...)
		}
		problem.Errors = &copied
	}

	return problem
}

// Write sends problem with its status code.
func Write(w http.ResponseWriter, problem ProblemDetails) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(problem.Status)
	_ = json.NewEncoder(w).Encode(problem)
}
