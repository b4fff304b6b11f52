package sepomex

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lacs/lacsapi/internal/common"
)

// PostalCodeLength is the width of a normalized Mexican postal code.
const PostalCodeLength = 5

// CleanPostalCode keeps only the ASCII digits of raw.
func CleanPostalCode(raw string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw)
}

// NormalizePostalCode strips non-digits and left-pads to five digits.
// Input without digits or with more than five is a validation error; codes
// are never truncated.
func NormalizePostalCode(raw string) (string, error) {
	digits := CleanPostalCode(raw)
	if digits == "" {
		return "", fmt.Errorf("%w: postal code %q has no digits", common.ErrorValidation, raw)
	}
	if len(digits) > PostalCodeLength {
		return "", fmt.Errorf("%w: postal code %q has more than %d digits", common.ErrorValidation, raw, PostalCodeLength)
	}
	return strings.Repeat("0", PostalCodeLength-len(digits)) + digits, nil
}
