package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the config file Load reads when CONFIG_PATH is unset.
// configs/config.example.yaml is a starting point for it.
const DefaultPath = "configs/config.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (env-default tags). A missing file at
// DefaultPath is fine; a missing file named by CONFIG_PATH is an error.
//
// A relative directory.seed_path from the file is resolved against the
// file's directory, so the config and its seed can be moved together.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		resolveSeedPath(&cfg, path)
	case explicitPath || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// resolveSeedPath anchors a file-provided relative seed path at the config
// file's directory. A DIRECTORY_SEED_PATH override is taken as given.
func resolveSeedPath(cfg *Config, configPath string) {
	seed := cfg.Directory.SeedPath
	if seed == "" || filepath.IsAbs(seed) {
		return
	}
	if _, fromEnv := os.LookupEnv("DIRECTORY_SEED_PATH"); fromEnv {
		return
	}
	cfg.Directory.SeedPath = filepath.Join(filepath.Dir(configPath), seed)
}
