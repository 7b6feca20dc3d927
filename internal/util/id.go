package util

import "github.com/google/uuid"

// NewID returns a random identifier for a new record. Identifiers are
// assigned once at creation and never change afterwards.
func NewID() string {
	return uuid.NewString()
}
