package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-idcheck/platform/go/identifiers"
	platformlogging "github.com/zenGate-Global/palmyra-idcheck/platform/go/logging"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/metrics"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/payloadschema"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/persistence"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/requesttrace"
)

// MaxBatchItems bounds the number of values accepted by ValidateBatch.
const MaxBatchItems = 100

// FieldErrors maps request fields to validation issues.
type FieldErrors map[string][]string

// ValidationError is returned when the request itself is malformed or a registration
// payload breaks its schema. Invalid identifiers are Outcomes, not errors.
type ValidationError struct {
	Fields FieldErrors
}

func (v *ValidationError) Error() string {
	return "validation error"
}

// Domain sentinel errors.
var (
	ErrUnknownKind       = identifiers.ErrUnknownKind
	ErrUnknownRecordType = payloadschema.ErrUnknownRecordType
)

// Outcome is the verdict for one value. It never contains the value.
type Outcome struct {
	Kind    string
	Valid   bool
	Reason  string
	Message string
}

// Item is one entry of a batch request.
type Item struct {
	Kind  string
	Value string
}

// KindInfo describes a supported identifier kind.
type KindInfo struct {
	Name     string
	Label    string
	Checksum bool
}

// CorporateEmailResult is the verdict of CheckCorporateEmail.
type CorporateEmailResult struct {
	Corporate      bool
	DomainFragment string
}

// Event is one journal entry.
type Event struct {
	ID        uuid.UUID
	Kind      string
	Reason    string
	Digest    string
	Caller    string
	RequestID string
	CreatedAt time.Time
}

// NewEvent captures the fields appended to the journal.
type NewEvent struct {
	ID        uuid.UUID
	Kind      string
	Reason    string
	Digest    string
	Caller    string
	RequestID string
}

// ListOptions controls filtering and pagination of journal events.
type ListOptions struct {
	Kind     *string
	Page     int
	PageSize int
}

// EventPage wraps a page of events with pagination metadata.
type EventPage struct {
	Events     []Event
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Journal persists validation events.
type Journal interface {
	Append(ctx context.Context, event NewEvent) (Event, error)
	List(ctx context.Context, opts ListOptions) (EventPage, error)
}

// PayloadValidator checks registration payloads against their schemas.
type PayloadValidator interface {
	Validate(ctx context.Context, recordType string, payload []byte) error
	RecordTypes() ([]string, error)
}

// Config carries the optional collaborators of the service.
type Config struct {
	// DigestSalt keys the journal digests; required.
	DigestSalt []byte
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// Service defines the business operations for the validations domain.
type Service interface {
	Kinds(ctx context.Context) []KindInfo
	Validate(ctx context.Context, kind, value string) (Outcome, error)
	ValidateBatch(ctx context.Context, items []Item) ([]Outcome, error)
	CheckCorporateEmail(ctx context.Context, email, organizationName string) (CorporateEmailResult, error)
	ValidateRegistration(ctx context.Context, recordType string, payload []byte) error
	ListEvents(ctx context.Context, opts ListOptions) (EventPage, error)
}

type service struct {
	journal  Journal
	payloads PayloadValidator
	salt     []byte
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// New constructs a validations Service backed by the provided journal and payload validator.
func New(journal Journal, payloads PayloadValidator, cfg Config) Service {
	if journal == nil {
		panic("validation journal is required")
	}
	if payloads == nil {
		panic("payload validator is required")
	}
	if len(cfg.DigestSalt) == 0 {
		panic("digest salt is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		journal:  journal,
		payloads: payloads,
		salt:     append([]byte(nil), cfg.DigestSalt...),
		logger:   logger,
		metrics:  cfg.Metrics,
	}
}

func (s *service) Kinds(_ context.Context) []KindInfo {
	kinds := identifiers.Kinds()
	infos := make([]KindInfo, 0, len(kinds))
	for _, kind := range kinds {
		infos = append(infos, KindInfo{Name: kind.String(), Label: kind.Label(), Checksum: kind.HasChecksum()})
	}
	return infos
}

func (s *service) Validate(ctx context.Context, kindName, value string) (Outcome, error) {
	kind, err := identifiers.ParseKind(kindName)
	if err != nil {
		return Outcome{}, err
	}
	return s.validate(ctx, kind, value), nil
}

func (s *service) ValidateBatch(ctx context.Context, items []Item) ([]Outcome, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Fields: FieldErrors{"items": {"at least one item is required"}}}
	}
	if len(items) > MaxBatchItems {
		return nil, &ValidationError{Fields: FieldErrors{"items": {fmt.Sprintf("at most %d items are allowed", MaxBatchItems)}}}
	}

	kinds := make([]identifiers.Kind, len(items))
	fieldErrs := FieldErrors{}
	for i, item := range items {
		kind, err := identifiers.ParseKind(item.Kind)
		if err != nil {
			key := fmt.Sprintf("items[%d].kind", i)
			fieldErrs[key] = append(fieldErrs[key], "unknown identifier kind")
			continue
		}
		kinds[i] = kind
	}
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	outcomes := make([]Outcome, 0, len(items))
	for i, item := range items {
		outcomes = append(outcomes, s.validate(ctx, kinds[i], item.Value))
	}
	return outcomes, nil
}

func (s *service) CheckCorporateEmail(ctx context.Context, email, organizationName string) (CorporateEmailResult, error) {
	fieldErrs := FieldErrors{}
	if strings.TrimSpace(email) == "" {
		fieldErrs["email"] = append(fieldErrs["email"], "email is required")
	}
	if strings.TrimSpace(organizationName) == "" {
		fieldErrs["organizationName"] = append(fieldErrs["organizationName"], "organization name is required")
	}
	if len(fieldErrs) > 0 {
		return CorporateEmailResult{}, &ValidationError{Fields: fieldErrs}
	}

	// Record the email verdict so corporate checks show up in the journal too.
	s.validate(ctx, identifiers.KindEmail, email)

	return CorporateEmailResult{
		Corporate:      identifiers.IsCorporateEmail(email, organizationName),
		DomainFragment: identifiers.DomainFragment(organizationName),
	}, nil
}

func (s *service) ValidateRegistration(ctx context.Context, recordType string, payload []byte) error {
	err := s.payloads.Validate(ctx, recordType, payload)

	var violations *payloadschema.ViolationError
	switch {
	case err == nil:
		s.metrics.IncrementRegistration(recordType, "valid")
		return nil
	case errors.As(err, &violations):
		s.metrics.IncrementRegistration(recordType, "invalid")
		fields := make(FieldErrors, len(violations.Fields))
		for pointer, messages := range violations.Fields {
			fields[pointer] = append([]string(nil), messages...)
		}
		return &ValidationError{Fields: fields}
	case errors.Is(err, payloadschema.ErrMalformedPayload):
		s.metrics.IncrementRegistration(recordType, "invalid")
		return &ValidationError{Fields: FieldErrors{"body": {"payload must be a JSON document"}}}
	case errors.Is(err, payloadschema.ErrUnknownRecordType):
		return err
	default:
		s.metrics.IncrementRegistration(recordType, "error")
		return fmt.Errorf("validate %s registration: %w", recordType, err)
	}
}

func (s *service) ListEvents(ctx context.Context, opts ListOptions) (EventPage, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var kindFilter *string
	if opts.Kind != nil && strings.TrimSpace(*opts.Kind) != "" {
		kind, err := identifiers.ParseKind(*opts.Kind)
		if err != nil {
			return EventPage{}, &ValidationError{Fields: FieldErrors{"kind": {"unknown identifier kind"}}}
		}
		name := kind.String()
		kindFilter = &name
	}

	return s.journal.List(ctx, ListOptions{Kind: kindFilter, Page: page, PageSize: pageSize})
}

func (s *service) validate(ctx context.Context, kind identifiers.Kind, value string) Outcome {
	start := time.Now()
	result := identifiers.Check(kind, value)

	outcome := Outcome{
		Kind:   kind.String(),
		Valid:  result.Valid(),
		Reason: result.Reason.String(),
	}
	if err := result.Err(); err != nil {
		outcome.Message = err.Error()
	}

	s.record(ctx, result)
	s.metrics.IncrementOutcome(outcome.Kind, outcome.Reason)
	s.metrics.ObserveValidateLatency(time.Since(start))

	return outcome
}

// record appends a journal entry; failures are logged and never change the verdict.
func (s *service) record(ctx context.Context, result identifiers.Result) {
	logger := platformlogging.FromContextOr(ctx, s.logger)

	digest, err := persistence.ComputeValueDigest(s.salt, result.Kind.String(), result.Normalized)
	if err != nil {
		logger.Error("compute journal digest", zap.Error(err))
		s.metrics.IncrementJournalFailure()
		return
	}

	trace := requesttrace.FromContextOrAnonymous(ctx)
	_, err = s.journal.Append(ctx, NewEvent{
		ID:        uuid.New(),
		Kind:      result.Kind.String(),
		Reason:    result.Reason.String(),
		Digest:    digest,
		Caller:    trace.Caller,
		RequestID: trace.RequestID,
	})
	if err != nil {
		logger.Warn("append validation journal event",
			zap.String("kind", result.Kind.String()),
			zap.Error(err),
		)
		s.metrics.IncrementJournalFailure()
	}
}
