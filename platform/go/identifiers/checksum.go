package identifiers

// personalIDLetters maps value mod 23 to the DNI/NIE check letter.
const personalIDLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// cifControlLetters maps a CIF control digit to its letter form.
const cifControlLetters = "JABCDEFGHI"

// niePrefixDigits replaces the leading NIE letter before the mod-23 computation.
var niePrefixDigits = map[byte]int{'X': 0, 'Y': 1, 'Z': 2}

// PersonalIDLetter returns the check letter for the numeric body of a DNI
// (or a NIE after prefix substitution). Negative values use the non-negative
// residue, so every int has a letter.
func PersonalIDLetter(n int) byte {
	i := n % len(personalIDLetters)
	if i < 0 {
		i += len(personalIDLetters)
	}
	return personalIDLetters[i]
}

// validPersonalIDChecksum verifies a structurally valid DNI or NIE.
func validPersonalIDChecksum(normalized string) bool {
	if len(normalized) != 9 {
		return false
	}

	value := 0
	body := normalized[:8]
	if prefix, ok := niePrefixDigits[body[0]]; ok {
		value = prefix
		body = body[1:]
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c < '0' || c > '9' {
			return false
		}
		value = value*10 + int(c-'0')
	}

	return normalized[8] == PersonalIDLetter(value)
}

// ControlClass is the form a CIF control character must take.
type ControlClass int

const (
	ControlEither ControlClass = iota
	ControlLetterOnly
	ControlDigitOnly
)

func (c ControlClass) String() string {
	switch c {
	case ControlLetterOnly:
		return "letter"
	case ControlDigitOnly:
		return "digit"
	default:
		return "either"
	}
}

// controlClassByOrganization lists the organization-type letters with a fixed control form.
// Letters absent from the table accept either form.
var controlClassByOrganization = map[byte]ControlClass{
	'N': ControlLetterOnly,
	'P': ControlLetterOnly,
	'Q': ControlLetterOnly,
	'R': ControlLetterOnly,
	'S': ControlLetterOnly,
	'W': ControlLetterOnly,
	'A': ControlDigitOnly,
	'B': ControlDigitOnly,
	'E': ControlDigitOnly,
	'H': ControlDigitOnly,
}

// ControlClassFor returns the control character class for a CIF organization letter.
func ControlClassFor(organization byte) ControlClass {
	if class, ok := controlClassByOrganization[organization]; ok {
		return class
	}
	return ControlEither
}

// CIFControlDigit computes the control digit for the seven central CIF digits.
// Digits in odd positions (first, third, fifth, seventh) are doubled and their
// digits summed; the remaining digits are added as they are. ok is false when
// digits is not exactly seven ASCII digits.
func CIFControlDigit(digits string) (control int, ok bool) {
	if len(digits) != 7 {
		return 0, false
	}

	sumEven, sumOdd := 0, 0
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int(c - '0')
		if i%2 == 1 {
			sumEven += d
			continue
		}
		doubled := d * 2
		sumOdd += doubled/10 + doubled%10
	}

	unit := (sumEven + sumOdd) % 10
	if unit == 0 {
		return 0, true
	}
	return 10 - unit, true
}

// validCIFChecksum verifies the control character of a structurally valid CIF.
func validCIFChecksum(normalized string) bool {
	if len(normalized) != 9 {
		return false
	}

	control, ok := CIFControlDigit(normalized[1:8])
	if !ok {
		return false
	}

	got := normalized[8]
	digit := byte('0' + control)
	letter := cifControlLetters[control]

	switch ControlClassFor(normalized[0]) {
	case ControlLetterOnly:
		return got == letter
	case ControlDigitOnly:
		return got == digit
	default:
		return got == digit || got == letter
	}
}
