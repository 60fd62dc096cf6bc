package queue

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/decide/internal/adapters/config"
	"go.trai.ch/decide/internal/adapters/logger"
	"go.trai.ch/decide/internal/core/ports"
)

const (
	// ClientNodeID is the unique identifier for the queue client Graft node.
	ClientNodeID graft.ID = "adapter.queue_client"
	// SlugNodeID is the unique identifier for the ID generator Graft node.
	SlugNodeID graft.ID = "adapter.queue_slug"
)

func init() {
	graft.Register(graft.Node[ports.Queue]{
		ID:        ClientNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Queue, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}

			return NewClient(cfg.QueueBaseURL, log), nil
		},
	})

	graft.Register(graft.Node[ports.IDGenerator]{
		ID:        SlugNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.IDGenerator, error) {
			return NewSlugGenerator(), nil
		},
	})
}
