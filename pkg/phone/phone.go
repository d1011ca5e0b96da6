// Package phone normalizes contact numbers captured on business listings
// and quote requests.
package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is assumed when a number carries no country code.
const DefaultRegion = "US"

// Normalize parses a phone number and returns it in E.164 format
// (+13035550142). Numbers that do not parse as valid for the region are
// rejected.
func Normalize(raw, region string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("phone number cannot be empty")
	}
	if region == "" {
		region = DefaultRegion
	}

	parsed, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// NormalizeOrKeep returns the E.164 form when the number parses as valid
// and the input unchanged otherwise. Lead intake uses this: a malformed
// callback number must never reject a quote request.
func NormalizeOrKeep(raw string) string {
	normalized, err := Normalize(raw, DefaultRegion)
	if err != nil {
		return raw
	}
	return normalized
}

// Valid reports whether the number parses as valid for the region
func Valid(raw, region string) bool {
	_, err := Normalize(raw, region)
	return err == nil
}
