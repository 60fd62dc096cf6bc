package gradle

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/decide/internal/adapters/logger"
	"go.trai.ch/decide/internal/core/ports"
)

// NodeID is the unique identifier for the variant source Graft node.
const NodeID graft.ID = "adapter.gradle_variants"

func init() {
	graft.Register(graft.Node[ports.VariantSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.VariantSource, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewVariantSource(log), nil
		},
	})
}
