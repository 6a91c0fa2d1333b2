package phone

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMalformedDestination is returned for any destination that is not strict
// E.164. The destination must be corrected by the caller; no normalization is
// attempted here.
var ErrMalformedDestination = errors.New("malformed destination: expected E.164 format, e.g. +15551234567")

// e164 accepts a leading +, a non-zero country code digit, and 8-14 further
// digits. No separators, no whitespace, no 00 prefix.
var e164 = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// Validate checks that the destination is strict E.164
func Validate(destination string) error {
	if !e164.MatchString(destination) {
		return ErrMalformedDestination
	}
	return nil
}

// IsValid reports whether the destination is strict E.164
func IsValid(destination string) bool {
	return e164.MatchString(destination)
}

// WhatsAppAddress prefixes an already-validated E.164 number with the
// messaging provider's whatsapp scheme
func WhatsAppAddress(destination string) string {
	if strings.HasPrefix(destination, "whatsapp:") {
		return destination
	}
	return "whatsapp:" + destination
}
