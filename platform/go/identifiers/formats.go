package identifiers

// IsValidDNI reports whether value is a DNI with a correct check letter.
func IsValidDNI(value string) bool { return Validate(KindDNI, value) }

// IsValidNIE reports whether value is a NIE with a correct check letter.
func IsValidNIE(value string) bool { return Validate(KindNIE, value) }

// IsValidPersonalID accepts a valid DNI or, failing that, a valid NIE.
func IsValidPersonalID(value string) bool { return Validate(KindPersonalID, value) }

// IsValidOrganizationTaxCode reports whether value is a CIF with a correct control character.
func IsValidOrganizationTaxCode(value string) bool { return Validate(KindCIF, value) }

// IsValidSocialSecurityNumber reports whether value is a 12-digit social security number.
func IsValidSocialSecurityNumber(value string) bool { return Validate(KindSocialSecurityNumber, value) }

// IsValidHealthCardNumber reports whether value is a health card number of 10 to 20 letters or digits.
func IsValidHealthCardNumber(value string) bool { return Validate(KindHealthCardNumber, value) }

// IsValidProfessionalLicenseNumber reports whether value is a license number of 4 to 20 letters or digits.
func IsValidProfessionalLicenseNumber(value string) bool {
	return Validate(KindProfessionalLicenseNumber, value)
}

// IsValidRegcessCode reports whether value is a REGCESS code of 1 to 50 letters or digits.
func IsValidRegcessCode(value string) bool { return Validate(KindRegcessCode, value) }

// IsValidEmail reports whether value is an email address of at most 254 characters.
func IsValidEmail(value string) bool { return Validate(KindEmail, value) }

// IsValidPhone accepts Spanish mobile and landline numbers, optionally prefixed with +34 or 0034.
func IsValidPhone(value string) bool { return Validate(KindPhone, value) }
