package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/decide/internal/adapters/queue"
)

func TestNewTaskID(t *testing.T) {
	ids := queue.NewSlugGenerator()

	seen := map[string]bool{}
	for range 100 {
		id := ids.NewTaskID()
		assert.Len(t, id, 22)
		assert.NotContains(t, id, "=")
		assert.NotContains(t, id, "/")
		assert.NotContains(t, id, "+")
		assert.False(t, seen[id], "duplicate task ID %q", id)
		seen[id] = true
	}
}
