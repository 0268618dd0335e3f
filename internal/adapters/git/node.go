package git

import (
	"context"

	"github.com/grindlemire/graft"
	"sift/internal/adapters/logger"
	"sift/internal/core/ports"
)

const NodeID graft.ID = "adapter.change_detector"

func init() {
	graft.Register(graft.Node[ports.ChangeDetector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ChangeDetector, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewDetector(".", log), nil
		},
	})
}
