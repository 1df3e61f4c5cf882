package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/js-runtime/runtime"
)

// fileConfig is the on-disk form of the runner settings. Flags given on the
// command line override it.
type fileConfig struct {
	Engine       string   `yaml:"engine"`
	DisplayDepth int      `yaml:"display_depth"`
	Verbose      bool     `yaml:"verbose"`
	Preload      []string `yaml:"preload"`
}

func loadConfig(path string) (*fileConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg, err := decodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Preload paths are relative to the config file.
	dir := filepath.Dir(path)
	for i, p := range cfg.Preload {
		if !filepath.IsAbs(p) {
			cfg.Preload[i] = filepath.Join(dir, p)
		}
	}
	return cfg, nil
}

func decodeConfig(r io.Reader) (*fileConfig, error) {
	var cfg fileConfig
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if cfg.DisplayDepth < 0 {
		return nil, fmt.Errorf("display_depth must not be negative")
	}
	return &cfg, nil
}

// runtimeConfig merges the file settings over the library defaults.
func (c *fileConfig) runtimeConfig() runtime.Config {
	cfg := runtime.DefaultConfig()
	if c.Engine != "" {
		cfg.Engine = c.Engine
	}
	if c.DisplayDepth > 0 {
		cfg.DisplayDepth = c.DisplayDepth
	}
	return cfg
}
