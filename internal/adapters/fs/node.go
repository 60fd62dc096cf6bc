package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/decide/internal/core/ports"
)

// NodeID is the unique identifier for the snapshot writer Graft node.
const NodeID graft.ID = "adapter.fs_writer"

func init() {
	graft.Register(graft.Node[ports.SnapshotWriter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.SnapshotWriter, error) {
			return NewWriter(), nil
		},
	})
}
