package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ssnFullPattern  = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	ssnLast4Pattern = regexp.MustCompile(`^\d{4}$`)
)

var ErrInvalidSSN = errors.New("SSN must be XXX-XX-XXXX or the last 4 digits")

func ValidateSSN(ssn string) error {
	ssn = strings.TrimSpace(ssn)
	if !ssnFullPattern.MatchString(ssn) && !ssnLast4Pattern.MatchString(ssn) {
		return ErrInvalidSSN
	}
	return nil
}

// NormalizeSSN strips separators, leaving 9 or 4 digits for a validated input.
func NormalizeSSN(ssn string) string {
	return digitsOnly(ssn)
}
