package app

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"sift/internal/adapters/cache"  //nolint:depguard // Wired in app layer
	"sift/internal/adapters/config" //nolint:depguard // Wired in app layer
	"sift/internal/adapters/git"    //nolint:depguard // Wired in app layer
	"sift/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"sift/internal/adapters/telemetry/progrock"
	"sift/internal/core/domain"
	"sift/internal/core/ports"
	"sift/internal/engine/classify"
	"sift/internal/engine/recorder"
	"sift/internal/engine/runner"
	"sift/internal/engine/selector"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized components the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			git.NodeID,
			cache.NodeID,
			selector.NodeID,
			runner.NodeID,
			classify.NodeID,
			recorder.NodeID,
			progrock.NodeID,
			config.ValuesNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	detector, err := graft.Dep[ports.ChangeDetector](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.FingerprintStore](ctx)
	if err != nil {
		return nil, err
	}
	sel, err := graft.Dep[*selector.Selector](ctx)
	if err != nil {
		return nil, err
	}
	coord, err := graft.Dep[*runner.Coordinator](ctx)
	if err != nil {
		return nil, err
	}
	classifier, err := graft.Dep[*classify.Classifier](ctx)
	if err != nil {
		return nil, err
	}
	rec, err := graft.Dep[*recorder.Recorder](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
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

	return New(detector, store, sel, coord, classifier, rec, tel, cfg, log, NewReport(os.Stdout)), nil
}
