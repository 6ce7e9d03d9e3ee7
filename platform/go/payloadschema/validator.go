// Package payloadschema validates registration payloads against JSON Schemas whose
// identifier fields declare formats backed by the identifiers package
// ("es-cif", "es-personal-id", "es-email", ...).
package payloadschema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/zenGate-Global/palmyra-idcheck/platform/go/identifiers"
)

const (
	schemaDir    = "registrations"
	schemaSuffix = ".schema.json"
	// FormatPrefix prefixes identifier kind names to form JSON Schema format names.
	FormatPrefix = "es-"
)

var (
	// ErrUnknownRecordType is returned when no schema exists for the requested record type.
	ErrUnknownRecordType = errors.New("unknown record type")
	// ErrMalformedPayload is returned when the payload is empty or not JSON.
	ErrMalformedPayload = errors.New("malformed payload")
)

// ViolationError lists schema violations keyed by JSON pointer into the payload ("/" for the root).
type ViolationError struct {
	Fields map[string][]string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("payload violates schema in %d field(s)", len(e.Fields))
}

// Validator compiles registration schemas on first use and caches them.
type Validator struct {
	source fs.FS

	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewValidator returns a validator reading <recordType>.schema.json files from the
// registrations directory of source.
func NewValidator(source fs.FS) *Validator {
	if source == nil {
		panic("schema source is required")
	}
	return &Validator{
		source: source,
		cache:  make(map[string]*jsonschema.Schema),
	}
}

// RecordTypes lists the record types with an available schema, sorted.
func (v *Validator) RecordTypes() ([]string, error) {
	entries, err := fs.ReadDir(v.source, schemaDir)
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}

	types := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, schemaSuffix) {
			continue
		}
		types = append(types, strings.TrimSuffix(name, schemaSuffix))
	}
	sort.Strings(types)
	return types, nil
}

// Validate ensures payload matches the schema for recordType. Schema violations are
// reported as *ViolationError; malformed JSON wraps ErrMalformedPayload and unknown
// record types wrap ErrUnknownRecordType.
func (v *Validator) Validate(ctx context.Context, recordType string, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: payload is required", ErrMalformedPayload)
	}

	compiled, err := v.getOrCompile(recordType)
	if err != nil {
		return err
	}

	var document any
	if err := json.Unmarshal(payload, &document); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if err := compiled.Validate(document); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &ViolationError{Fields: collectViolations(validationErr)}
		}
		return fmt.Errorf("schema validation: %w", err)
	}

	return nil
}

func (v *Validator) getOrCompile(recordType string) (*jsonschema.Schema, error) {
	key := path.Join(schemaDir, recordType+schemaSuffix)

	v.mu.RLock()
	compiled, ok := v.cache[key]
	v.mu.RUnlock()
	if ok {
		return compiled, nil
	}

	if !fs.ValidPath(key) || strings.ContainsAny(recordType, "/.") || recordType == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecordType, recordType)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// another goroutine may have populated the cache while we were waiting
	if compiled, ok = v.cache[key]; ok {
		return compiled, nil
	}

	definition, err := fs.ReadFile(v.source, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRecordType, recordType)
		}
		return nil, fmt.Errorf("read schema %s: %w", key, err)
	}

	compiler := newCompiler()
	if err := compiler.AddResource(key, bytes.NewReader(definition)); err != nil {
		return nil, fmt.Errorf("register schema %s: %w", key, err)
	}

	newCompiled, err := compiler.Compile(key)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", key, err)
	}

	v.cache[key] = newCompiled
	return newCompiled, nil
}

func newCompiler() *jsonschema.Compiler {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	for _, kind := range identifiers.Kinds() {
		kind := kind
		compiler.Formats[FormatPrefix+kind.String()] = func(value interface{}) bool {
			s, ok := value.(string)
			if !ok {
				return true
			}
			return identifiers.Validate(kind, s)
		}
	}
	return compiler
}

func collectViolations(root *jsonschema.ValidationError) map[string][]string {
	fields := make(map[string][]string)

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, cause := range e.Causes {
				walk(cause)
			}
			return
		}
		pointer := e.InstanceLocation
		if pointer == "" {
			pointer = "/"
		}
		fields[pointer] = append(fields[pointer], violationMessage(e))
	}
	walk(root)

	return fields
}

// violationMessage rewrites identifier format failures into their label form so the
// submitted value is never echoed back.
func violationMessage(e *jsonschema.ValidationError) string {
	if !strings.HasSuffix(e.KeywordLocation, "/format") {
		return e.Message
	}

	start := strings.LastIndex(e.Message, "'"+FormatPrefix)
	if start >= 0 && strings.HasSuffix(e.Message, "'") {
		name := strings.TrimPrefix(e.Message[start+1:len(e.Message)-1], FormatPrefix)
		if kind, err := identifiers.ParseKind(name); err == nil {
			return kind.Label() + " is not valid"
		}
	}
	return "value has an invalid format"
}
