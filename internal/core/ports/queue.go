// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/decide/internal/core/domain"
)

// Queue is the remote task-execution service the decision task submits to.
//
//go:generate go run go.uber.org/mock/mockgen -source=queue.go -destination=mocks/mock_queue.go -package=mocks
type Queue interface {
	// CreateTask submits a task under the given identifier.
	// A rejected submission is fatal to the run; callers never retry.
	CreateTask(ctx context.Context, taskID string, task domain.TaskDescriptor) error
}

// IDGenerator produces fresh unique task identifiers.
type IDGenerator interface {
	NewTaskID() string
}
