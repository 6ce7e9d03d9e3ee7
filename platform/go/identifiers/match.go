package identifiers

import "regexp"

var (
	dniPattern     = regexp.MustCompile(`^[0-9]{8}[A-Z]$`)
	niePattern     = regexp.MustCompile(`^[XYZ][0-9]{7}[A-Z]$`)
	cifPattern     = regexp.MustCompile(`^[ABCDEFGHJNPQRSUVW][0-9]{7}[0-9A-J]$`)
	nssPattern     = regexp.MustCompile(`^[0-9]{12}$`)
	healthPattern  = regexp.MustCompile(`^[A-Z0-9]{10,20}$`)
	licensePattern = regexp.MustCompile(`^[A-Z0-9]{4,20}$`)
	regcessPattern = regexp.MustCompile(`^[A-Z0-9]{1,50}$`)
	emailPattern   = regexp.MustCompile(`^[A-Z0-9._%+\-]+@(?:[A-Z0-9](?:[A-Z0-9\-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,}$`)
	phonePattern   = regexp.MustCompile(`^(?:\+34|0034)?[6789][0-9]{8}$`)
)

const maxEmailLength = 254

// Matches reports whether an already normalized value has the shape required by kind.
// It checks length and character classes only; control characters are not verified.
func Matches(kind Kind, normalized string) bool {
	if normalized == "" || len(normalized) > maxInputLength {
		return false
	}

	switch kind.mustKnow() {
	case KindDNI:
		return dniPattern.MatchString(normalized)
	case KindNIE:
		return niePattern.MatchString(normalized)
	case KindPersonalID:
		return dniPattern.MatchString(normalized) || niePattern.MatchString(normalized)
	case KindCIF:
		return cifPattern.MatchString(normalized)
	case KindSocialSecurityNumber:
		return nssPattern.MatchString(normalized)
	case KindHealthCardNumber:
		return healthPattern.MatchString(normalized)
	case KindProfessionalLicenseNumber:
		return licensePattern.MatchString(normalized)
	case KindRegcessCode:
		return regcessPattern.MatchString(normalized)
	case KindEmail:
		return len(normalized) <= maxEmailLength && emailPattern.MatchString(normalized)
	case KindPhone:
		return phonePattern.MatchString(normalized)
	default:
		panic("identifiers: unhandled kind " + kind.String())
	}
}
