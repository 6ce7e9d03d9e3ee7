package identifiers

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects which identifier format a value is validated against.
type Kind int

const (
	KindUnknown Kind = iota
	KindDNI
	KindNIE
	// KindPersonalID accepts either a DNI or a NIE, trying DNI first.
	KindPersonalID
	KindCIF
	KindSocialSecurityNumber
	KindHealthCardNumber
	KindProfessionalLicenseNumber
	KindRegcessCode
	KindEmail
	KindPhone
)

// ErrUnknownKind is returned by ParseKind for names that do not map to a Kind.
var ErrUnknownKind = errors.New("unknown identifier kind")

type kindInfo struct {
	name  string
	label string
}

var kindInfos = map[Kind]kindInfo{
	KindDNI:                       {name: "dni", label: "DNI"},
	KindNIE:                       {name: "nie", label: "NIE"},
	KindPersonalID:                {name: "personal-id", label: "DNI/NIE"},
	KindCIF:                       {name: "cif", label: "CIF"},
	KindSocialSecurityNumber:      {name: "nss", label: "social security number"},
	KindHealthCardNumber:          {name: "health-card", label: "health card number"},
	KindProfessionalLicenseNumber: {name: "professional-license", label: "professional license number"},
	KindRegcessCode:               {name: "regcess", label: "REGCESS code"},
	KindEmail:                     {name: "email", label: "email"},
	KindPhone:                     {name: "phone", label: "phone"},
}

// Kinds lists every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindDNI,
		KindNIE,
		KindPersonalID,
		KindCIF,
		KindSocialSecurityNumber,
		KindHealthCardNumber,
		KindProfessionalLicenseNumber,
		KindRegcessCode,
		KindEmail,
		KindPhone,
	}
}

// ParseKind maps a wire name such as "cif" or "personal-id" to its Kind.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for kind, info := range kindInfos {
		if info.name == normalized {
			return kind, nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// String returns the stable wire name of the kind.
func (k Kind) String() string {
	if info, ok := kindInfos[k]; ok {
		return info.name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Label returns the human-facing name used in validation messages.
func (k Kind) Label() string {
	return k.info().label
}

// HasChecksum reports whether the kind carries a control character.
func (k Kind) HasChecksum() bool {
	switch k.mustKnow() {
	case KindDNI, KindNIE, KindPersonalID, KindCIF:
		return true
	default:
		return false
	}
}

func (k Kind) info() kindInfo {
	return kindInfos[k.mustKnow()]
}

func (k Kind) mustKnow() Kind {
	if _, ok := kindInfos[k]; !ok {
		panic(fmt.Sprintf("identifiers: unknown kind %d", int(k)))
	}
	return k
}
