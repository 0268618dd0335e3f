// Package config provides the configuration loader for sift.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"sift/internal/core/domain"
	"sift/internal/core/ports"
)

// Filename is the project configuration file sift looks for.
const Filename = "sift.yaml"

// Loader implements ports.ConfigLoader using an optional YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads sift.yaml from the given working directory. A missing file
// yields the built-in defaults; a present but unparsable file is an error.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(cwd, Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is rooted in the working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file siftfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	file.apply(&cfg)
	return cfg, nil
}

// siftfile represents the structure of the sift.yaml configuration file.
type siftfile struct {
	CachePath string   `yaml:"cachePath"`
	Lint      []string `yaml:"lint"`
	Test      struct {
		Cmd         []string `yaml:"cmd"`
		IncludeFlag string   `yaml:"includeFlag"`
	} `yaml:"test"`
	TestSuffix     string   `yaml:"testSuffix"`
	SourceSuffix   string   `yaml:"sourceSuffix"`
	LintExtensions []string `yaml:"lintExtensions"`
}

// apply overlays the file's non-empty fields onto the defaults.
func (f *siftfile) apply(cfg *domain.Config) {
	if f.CachePath != "" {
		cfg.CachePath = f.CachePath
	}
	if len(f.Lint) > 0 {
		cfg.LintCommand = f.Lint
	}
	if len(f.Test.Cmd) > 0 {
		cfg.TestCommand = f.Test.Cmd
	}
	if f.Test.IncludeFlag != "" {
		cfg.IncludeFlag = f.Test.IncludeFlag
	}
	if f.TestSuffix != "" {
		cfg.Pairing.TestSuffix = f.TestSuffix
	}
	if f.SourceSuffix != "" {
		cfg.Pairing.SourceSuffix = f.SourceSuffix
	}
	if len(f.LintExtensions) > 0 {
		cfg.LintExtensions = f.LintExtensions
	}
}
