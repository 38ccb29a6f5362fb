package id

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// New generates a ULID stamped with the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt generates a ULID stamped with t. IDs from later instants sort after
// earlier ones, so scans ordered by ID follow creation order.
func NewAt(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}
