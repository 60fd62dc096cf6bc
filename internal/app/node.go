package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/decide/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/decide/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/decide/internal/adapters/gradle" //nolint:depguard // Wired in app layer
	"go.trai.ch/decide/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/decide/internal/adapters/queue"  //nolint:depguard // Wired in app layer
	"go.trai.ch/decide/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			queue.ClientNodeID,
			queue.SlugNodeID,
			gradle.NodeID,
			fs.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	q, err := graft.Dep[ports.Queue](ctx)
	if err != nil {
		return nil, err
	}

	ids, err := graft.Dep[ports.IDGenerator](ctx)
	if err != nil {
		return nil, err
	}

	variants, err := graft.Dep[ports.VariantSource](ctx)
	if err != nil {
		return nil, err
	}

	snapshots, err := graft.Dep[ports.SnapshotWriter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, q, ids, variants, snapshots, log, clockwork.NewRealClock()), nil
}
