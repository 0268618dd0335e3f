package config

import (
	"context"

	"github.com/grindlemire/graft"
	"sift/internal/adapters/logger"
	"sift/internal/core/domain"
	"sift/internal/core/ports"
)

const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}

// ValuesNodeID resolves the effective configuration once per process.
const ValuesNodeID graft.ID = "adapter.config_values"

func init() {
	graft.Register(graft.Node[domain.Config]{
		ID:        ValuesNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return domain.Config{}, err
			}
			return loader.Load(".")
		},
	})
}
