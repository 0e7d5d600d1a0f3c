// Package config loads repofill's YAML configuration with environment
// overrides.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/repofill/repofill/internal/model"
	"github.com/repofill/repofill/internal/yaml"
)

// envOverlay holds values that may override the config file. The token can
// live in the environment so config.yaml never has to carry secrets.
type envOverlay struct {
	Token string `env:"GITHUB_TOKEN"`
	Org   string `env:"REPOFILL_ORG"`
}

// Load reads the YAML config at path, applies defaults, then overlays
// environment values. The file must exist.
func Load(ctx context.Context, path string) (model.Config, error) {
	var cfg model.Config
	if err := yaml.Load(path, &cfg); err != nil {
		return model.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyDefaults()

	var env envOverlay
	if err := envconfig.Process(ctx, &env); err != nil {
		return model.Config{}, fmt.Errorf("process environment: %w", err)
	}
	if env.Token != "" {
		cfg.GitHub.Token = env.Token
	}
	if env.Org != "" {
		cfg.GitHub.Org = env.Org
	}

	if cfg.GitHub.Token == "" {
		return model.Config{}, fmt.Errorf("github token not set: add github.token to %s or export GITHUB_TOKEN", path)
	}
	return cfg, nil
}
