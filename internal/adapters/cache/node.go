package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"sift/internal/adapters/config"
	"sift/internal/adapters/logger"
	"sift/internal/core/domain"
	"sift/internal/core/ports"
)

const NodeID graft.ID = "adapter.fingerprint_store"

func init() {
	graft.Register(graft.Node[ports.FingerprintStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.ValuesNodeID},
		Run: func(ctx context.Context) (ports.FingerprintStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.CachePath, log), nil
		},
	})
}
