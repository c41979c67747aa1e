package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if PALAESTRA_CONFIG is set
//  3. env (prefix PALAESTRA_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("PALAESTRA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// PALAESTRA_ADDR -> addr, PALAESTRA_DATA_PATH -> data_path.
	// Underscores are preserved to match the koanf struct tags.
	envProvider := env.Provider("PALAESTRA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "palaestra_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.DataPath == "" {
		return nil, fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxHistory < 0 {
		return nil, fmt.Errorf("%w: max_history must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
