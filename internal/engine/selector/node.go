package selector

import (
	"context"

	"github.com/grindlemire/graft"
	"sift/internal/adapters/cache"
	"sift/internal/adapters/config"
	"sift/internal/adapters/logger"
	"sift/internal/core/domain"
	"sift/internal/core/ports"
)

// NodeID is the unique identifier for the selector Graft node.
const NodeID graft.ID = "engine.selector"

func init() {
	graft.Register(graft.Node[*Selector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cache.NodeID, config.ValuesNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Selector, error) {
			store, err := graft.Dep[ports.FingerprintStore](ctx)
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
			return New(store, cfg, log), nil
		},
	})
}
