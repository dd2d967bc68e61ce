package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimestamp marks a date or instant that could not be parsed.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ClientDateLayout accepts zero-padded and unpadded dates ("2024-08-01", "2024-8-1").
const ClientDateLayout = "2006-1-2"

// ParseClientDate reads the caller's advisory date as midnight UTC.
func ParseClientDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: last_updated is empty", ErrInvalidTimestamp)
	}

	t, err := time.ParseInLocation(ClientDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: last_updated %q, expected YYYY-MM-DD", ErrInvalidTimestamp, s)
	}
	return t, nil
}

// ParseCRMTimestamp reads hs_lastmodifieddate (ISO-8601, Z or offset,
// optional fraction) and normalizes it to UTC.
func ParseCRMTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: %s is empty", ErrInvalidTimestamp, PropLastModified)
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrInvalidTimestamp, PropLastModified, s)
	}
	return t.UTC(), nil
}

// IsNewer reports whether the client date is strictly after the CRM instant.
// A same-day CRM write at any time after midnight wins over the client.
func IsNewer(clientDate, crmModified time.Time) bool {
	return clientDate.UTC().After(crmModified.UTC())
}
