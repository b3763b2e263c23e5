// Package config loads the reactor process's tunables: a small JSON file
// merged under CLI-flag overrides (flags win), grounded on the teacher's
// pkg/charts Values-merging convention (github.com/imdario/mergo) and
// re-merged on file change via github.com/fsnotify/fsnotify the way the
// teacher's pkg/credswatcher watches certificate files for rotation.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/imdario/mergo"

	"github.com/octofabric/reactor/internal/pathoracle"
)

// Config is the engine's runtime configuration.
type Config struct {
	Weight      pathoracle.Weight `json:"weight,omitempty"`
	ListenAddr  string            `json:"listen_addr,omitempty"`
	AdminAddr   string            `json:"admin_addr,omitempty"`
	HealthAddr  string            `json:"health_addr,omitempty"`
	EnablePprof bool              `json:"enable_pprof,omitempty"`
}

// Default returns the built-in baseline configuration.
func Default() Config {
	return Config{
		Weight:     pathoracle.WeightHop,
		ListenAddr: ":6653",
		AdminAddr:  ":9096",
		HealthAddr: ":9097",
	}
}

// Load starts from Default(), merges in path's JSON contents (if path is
// non-empty) and finally merges overrides on top — overrides is whatever
// the caller parsed from explicit CLI flags, so a flag set on the command
// line always wins over the file, which always wins over the built-in
// default (spec's "flags win" rule). Only non-zero fields of overrides and
// the file ever replace what came before, via mergo.WithOverride.
func Load(path string, overrides Config) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		var fromFile Config
		if err := json.Unmarshal(data, &fromFile); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		if err := mergo.Merge(&cfg, fromFile, mergo.WithOverride); err != nil {
			return Config{}, fmt.Errorf("config: merge %s: %w", path, err)
		}
	}

	if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("config: merge overrides: %w", err)
	}
	return cfg, nil
}
