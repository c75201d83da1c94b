package quiz

import "github.com/google/uuid"

// NewID produces a fresh question or set identifier. Collisions are not
// checked; UUIDs make them vanishingly improbable.
func NewID() string {
	return uuid.NewString()
}
