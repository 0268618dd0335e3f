package classify

import (
	"context"

	"github.com/grindlemire/graft"
	"sift/internal/adapters/config"
	"sift/internal/core/domain"
)

// NodeID is the unique identifier for the classifier Graft node.
const NodeID graft.ID = "engine.classifier"

func init() {
	graft.Register(graft.Node[*Classifier]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ValuesNodeID},
		Run: func(ctx context.Context) (*Classifier, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg), nil
		},
	})
}
