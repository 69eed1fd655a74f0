package models

import "time"

// ISOTime renders a timestamp as an ISO-8601 (RFC 3339) string. DTOs never
// carry native time values.
func ISOTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ISOTimePtr renders an optional timestamp, returning nil for absence so it
// serializes as an explicit null.
func ISOTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := ISOTime(*t)
	return &s
}
