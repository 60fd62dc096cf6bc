// Package taskgraph tracks the tasks scheduled during one decision-task run.
package taskgraph

import (
	"context"

	"go.trai.ch/decide/internal/core/domain"
	"go.trai.ch/decide/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskGraph is the append-only record of every task submitted in one run.
// It owns the submission side effect: descriptors go in, queue task IDs come
// out, and the accumulated mapping is serialized at the end of the run.
//
// One TaskGraph serves exactly one run on one goroutine; there is no update
// or delete, and nothing persists across runs.
type TaskGraph struct {
	queue   ports.Queue
	ids     ports.IDGenerator
	records map[string]domain.TaskRecord
}

// New creates an empty TaskGraph submitting through the given queue.
func New(queue ports.Queue, ids ports.IDGenerator) *TaskGraph {
	return &TaskGraph{
		queue:   queue,
		ids:     ids,
		records: make(map[string]domain.TaskRecord),
	}
}

// Schedule generates a fresh task ID, submits the descriptor under it and
// records it in the graph. The returned ID is what downstream descriptors
// list as a dependency.
//
// A submission failure is fatal to the run: the error propagates and the
// caller must abort, because a missing graph node breaks every downstream
// dependency reference. Already-submitted tasks are not rolled back; the
// queue has no transactional delete.
func (g *TaskGraph) Schedule(ctx context.Context, task domain.TaskDescriptor) (string, error) {
	taskID := g.ids.NewTaskID()

	if err := g.queue.CreateTask(ctx, taskID, task); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to schedule task"), "task_name", task.Metadata.Name)
	}

	g.records[taskID] = domain.TaskRecord{TaskID: taskID}
	return taskID, nil
}

// Snapshot returns a copy of the accumulated graph. It is non-destructive
// and callable any number of times; the mapping never shrinks within a run.
func (g *TaskGraph) Snapshot() map[string]domain.TaskRecord {
	snapshot := make(map[string]domain.TaskRecord, len(g.records))
	for id, record := range g.records {
		snapshot[id] = record
	}
	return snapshot
}

// Len returns the number of tasks scheduled so far.
func (g *TaskGraph) Len() int {
	return len(g.records)
}
