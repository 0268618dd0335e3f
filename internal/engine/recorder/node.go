package recorder

import (
	"context"

	"github.com/grindlemire/graft"
	"sift/internal/adapters/cache"
	"sift/internal/adapters/config"
	"sift/internal/adapters/logger"
	"sift/internal/core/domain"
	"sift/internal/core/ports"
	"sift/internal/engine/classify"
)

// NodeID is the unique identifier for the recorder Graft node.
const NodeID graft.ID = "engine.recorder"

func init() {
	graft.Register(graft.Node[*Recorder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cache.NodeID, classify.NodeID, config.ValuesNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Recorder, error) {
			store, err := graft.Dep[ports.FingerprintStore](ctx)
			if err != nil {
				return nil, err
			}
			cls, err := graft.Dep[*classify.Classifier](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, cls, cfg, log), nil
		},
	})
}
