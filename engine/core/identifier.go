package core

import "github.com/google/uuid"

// NewLoadID returns a fresh identifier used to correlate the log lines and
// resources produced by a single load request.
func NewLoadID() string {
	return uuid.New().String()
}

// ShortID trims an identifier for log prefixes.
func ShortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}
