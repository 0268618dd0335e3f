package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"sift/internal/adapters/logger"
	"sift/internal/adapters/shell"
	"sift/internal/core/ports"
)

// NodeID is the unique identifier for the coordinator Graft node.
const NodeID graft.ID = "engine.coordinator"

func init() {
	graft.Register(graft.Node[*Coordinator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Coordinator, error) {
			procs, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(procs, log), nil
		},
	})
}
