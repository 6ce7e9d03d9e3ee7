package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-idcheck/domains/validations/be/service"
	platformlogging "github.com/zenGate-Global/palmyra-idcheck/platform/go/logging"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/problemdetails"
)

// maxBodyBytes bounds request bodies; registration payloads are the largest.
const maxBodyBytes = 64 << 10

type operation string

const (
	kindsOperation          operation = "validationsKinds"
	validateOperation       operation = "validationsValidate"
	batchOperation          operation = "validationsBatch"
	corporateEmailOperation operation = "validationsCorporateEmail"
	eventsOperation         operation = "validationsEvents"
	registrationOperation   operation = "registrationsValidate"
)

// Handler wires the validations service to the HTTP contract.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("validations service is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the validation endpoints on r. Static segments are registered before
// /validations/{kind} so "batch" and "events" never resolve as kinds.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/validations/kinds", h.Kinds)
	r.Get("/validations/events", h.Events)
	r.Post("/validations/batch", h.Batch)
	r.Post("/validations/corporate-email", h.CorporateEmail)
	r.Post("/validations/{kind}", h.Validate)
	r.Post("/registrations/{recordType}/validate", h.ValidateRegistration)
}

type kindItem struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Checksum bool   `json:"checksum"`
}

type kindList struct {
	Items []kindItem `json:"items"`
}

type validateRequest struct {
	Value *string `json:"value"`
}

type batchItem struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type batchRequest struct {
	Items []batchItem `json:"items"`
}

type outcome struct {
	Kind    string `json:"kind"`
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}

type batchResponse struct {
	Items []outcome `json:"items"`
}

type corporateEmailRequest struct {
	Email            string `json:"email"`
	OrganizationName string `json:"organizationName"`
}

type corporateEmailResponse struct {
	Corporate      bool   `json:"corporate"`
	DomainFragment string `json:"domainFragment"`
}

type event struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Reason    string    `json:"reason"`
	Digest    string    `json:"digest"`
	Caller    string    `json:"caller"`
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type eventPage struct {
	Items      []event `json:"items"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalItems int     `json:"totalItems"`
	TotalPages int     `json:"totalPages"`
}

func (h *Handler) Kinds(w http.ResponseWriter, r *http.Request) {
	kinds := h.svc.Kinds(r.Context())

	items := make([]kindItem, 0, len(kinds))
	for _, k := range kinds {
		items = append(items, kindItem{Name: k.Name, Label: k.Label, Checksum: k.Checksum})
	}

	writeJSON(w, http.StatusOK, kindList{Items: items})
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var body validateRequest
	if !h.decode(w, r, &body, validateOperation) {
		return
	}
	if body.Value == nil {
		h.writeError(r.Context(), w, &service.ValidationError{Fields: service.FieldErrors{"value": {"value is required"}}}, validateOperation)
		return
	}

	result, err := h.svc.Validate(r.Context(), chi.URLParam(r, "kind"), *body.Value)
	if err != nil {
		h.writeError(r.Context(), w, err, validateOperation)
		return
	}

	writeJSON(w, http.StatusOK, toAPIOutcome(result))
}

func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var body batchRequest
	if !h.decode(w, r, &body, batchOperation) {
		return
	}

	items := make([]service.Item, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, service.Item{Kind: item.Kind, Value: item.Value})
	}

	results, err := h.svc.ValidateBatch(r.Context(), items)
	if err != nil {
		h.writeError(r.Context(), w, err, batchOperation)
		return
	}

	outcomes := make([]outcome, 0, len(results))
	for _, result := range results {
		outcomes = append(outcomes, toAPIOutcome(result))
	}

	writeJSON(w, http.StatusOK, batchResponse{Items: outcomes})
}

func (h *Handler) CorporateEmail(w http.ResponseWriter, r *http.Request) {
	var body corporateEmailRequest
	if !h.decode(w, r, &body, corporateEmailOperation) {
		return
	}

	result, err := h.svc.CheckCorporateEmail(r.Context(), body.Email, body.OrganizationName)
	if err != nil {
		h.writeError(r.Context(), w, err, corporateEmailOperation)
		return
	}

	writeJSON(w, http.StatusOK, corporateEmailResponse{
		Corporate:      result.Corporate,
		DomainFragment: result.DomainFragment,
	})
}

func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	opts, err := buildListOptions(r)
	if err != nil {
		h.writeError(r.Context(), w, err, eventsOperation)
		return
	}

	page, err := h.svc.ListEvents(r.Context(), opts)
	if err != nil {
		h.writeError(r.Context(), w, err, eventsOperation)
		return
	}

	items := make([]event, 0, len(page.Events))
	for _, e := range page.Events {
		items = append(items, event{
			ID:        e.ID.String(),
			Kind:      e.Kind,
			Reason:    e.Reason,
			Digest:    e.Digest,
			Caller:    e.Caller,
			RequestID: e.RequestID,
			CreatedAt: e.CreatedAt.UTC(),
		})
	}

	writeJSON(w, http.StatusOK, eventPage{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

func (h *Handler) ValidateRegistration(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(r.Context(), w, &service.ValidationError{Fields: service.FieldErrors{"body": {"request body is too large or unreadable"}}}, registrationOperation)
		return
	}

	if err := h.svc.ValidateRegistration(r.Context(), chi.URLParam(r, "recordType"), payload); err != nil {
		h.writeError(r.Context(), w, err, registrationOperation)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func buildListOptions(r *http.Request) (service.ListOptions, error) {
	query := r.URL.Query()
	opts := service.ListOptions{}
	fieldErrs := service.FieldErrors{}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fieldErrs["page"] = append(fieldErrs["page"], "page must be a positive integer")
		}
		opts.Page = page
	}
	if raw := query.Get("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 || pageSize > 100 {
			fieldErrs["pageSize"] = append(fieldErrs["pageSize"], "pageSize must be between 1 and 100")
		}
		opts.PageSize = pageSize
	}
	if raw := strings.TrimSpace(query.Get("kind")); raw != "" {
		opts.Kind = &raw
	}

	if len(fieldErrs) > 0 {
		return service.ListOptions{}, &service.ValidationError{Fields: fieldErrs}
	}
	return opts, nil
}

func toAPIOutcome(o service.Outcome) outcome {
	return outcome{Kind: o.Kind, Valid: o.Valid, Reason: o.Reason, Message: o.Message}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any, op operation) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		h.writeError(r.Context(), w, &service.ValidationError{Fields: service.FieldErrors{"body": {"request body must be a JSON object"}}}, op)
		return false
	}
	return true
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error, op operation) {
	problemdetails.Write(w, h.problemForError(ctx, err, op))
}

func (h *Handler) problemForError(ctx context.Context, err error, op operation) problemdetails.ProblemDetails {
	status, title, detail, problemType, fields := h.classifyError(err)

	logger := h.loggerFrom(ctx)
	fieldsForLog := []zap.Field{
		zap.String("operation", string(op)),
		zap.Int("status", status),
	}
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("validations operation failed", append(fieldsForLog, zap.Error(err))...)
	case status == http.StatusNotFound:
		logger.Info("validations resource not found", append(fieldsForLog, zap.Error(err))...)
	default:
		logger.Warn("validations request rejected", append(fieldsForLog, zap.Error(err))...)
	}

	return problemdetails.New(title, detail, problemType, status, fields)
}

func (h *Handler) classifyError(err error) (status int, title, detail, problemType string, fieldErrors service.FieldErrors) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest,
			"Validation failed",
			"one or more fields are invalid",
			problemdetails.TypeValidation,
			validationErr.Fields
	case errors.Is(err, service.ErrUnknownKind):
		return http.StatusNotFound,
			"Resource not found",
			"unknown identifier kind",
			problemdetails.TypeNotFound,
			nil
	case errors.Is(err, service.ErrUnknownRecordType):
		return http.StatusNotFound,
			"Resource not found",
			"unknown registration record type",
			problemdetails.TypeNotFound,
			nil
	default:
		return http.StatusInternalServerError,
			"Internal server error",
			"an unexpected error occurred",
			problemdetails.TypeInternal,
			nil
	}
}

func (h *Handler) loggerFrom(ctx context.Context) *zap.Logger {
	return platformlogging.FromContextOr(ctx, h.logger)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
