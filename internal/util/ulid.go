package util

import (
	crand "crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. Session IDs travel in a cookie, so the
// entropy comes from crypto/rand rather than a time-seeded source.
func NewULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), crand.Reader).String()
}

// IsULID reports whether s parses as a ULID.
func IsULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
