package queue

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// SlugGenerator implements ports.IDGenerator with queue-style slug IDs:
// a random UUID in unpadded URL-safe base64, 22 characters.
type SlugGenerator struct{}

// NewSlugGenerator creates a new SlugGenerator.
func NewSlugGenerator() *SlugGenerator {
	return &SlugGenerator{}
}

// NewTaskID returns a fresh slug.
func (*SlugGenerator) NewTaskID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}
