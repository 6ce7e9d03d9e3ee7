package identifiers

import (
	"errors"
	"fmt"
)

// Reason explains the outcome of a check.
type Reason int

const (
	Valid Reason = iota
	StructuralMismatch
	ChecksumMismatch
)

func (r Reason) String() string {
	switch r {
	case Valid:
		return "valid"
	case StructuralMismatch:
		return "structural_mismatch"
	case ChecksumMismatch:
		return "checksum_mismatch"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// ErrInvalid matches every *InvalidError through errors.Is.
var ErrInvalid = errors.New("invalid identifier")

// InvalidError describes a rejected value. It never carries the value itself.
type InvalidError struct {
	Kind   Kind
	Reason Reason
}

func (e *InvalidError) Error() string {
	return e.Kind.Label() + " is not valid"
}

func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalid
}

// Result is the outcome of validating one value.
type Result struct {
	Kind       Kind
	Normalized string
	Reason     Reason
}

// Valid reports whether the value passed every check.
func (r Result) Valid() bool {
	return r.Reason == Valid
}

// Err returns nil for valid results and an *InvalidError otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &InvalidError{Kind: r.Kind, Reason: r.Reason}
}

// Check normalizes raw, matches its structure and verifies its control character
// when kind has one. It panics if kind is not one of Kinds().
func Check(kind Kind, raw string) Result {
	kind.mustKnow()

	if raw == "" || len(raw) > maxInputLength {
		return Result{Kind: kind, Reason: StructuralMismatch}
	}

	normalized := Normalize(kind, raw)
	result := Result{Kind: kind, Normalized: normalized}

	if !Matches(kind, normalized) {
		result.Reason = StructuralMismatch
		return result
	}

	if !checksumOK(kind, normalized) {
		result.Reason = ChecksumMismatch
		return result
	}

	result.Reason = Valid
	return result
}

// CheckOptional treats a nil value as absent input, which never validates.
func CheckOptional(kind Kind, raw *string) Result {
	if raw == nil {
		kind.mustKnow()
		return Result{Kind: kind, Reason: StructuralMismatch}
	}
	return Check(kind, *raw)
}

// Validate is Check reduced to a boolean.
func Validate(kind Kind, raw string) bool {
	return Check(kind, raw).Valid()
}

func checksumOK(kind Kind, normalized string) bool {
	switch kind {
	case KindDNI, KindNIE, KindPersonalID:
		return validPersonalIDChecksum(normalized)
	case KindCIF:
		return validCIFChecksum(normalized)
	default:
		return true
	}
}
