package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vertiport/evtol-sim/core/fleet"
	"github.com/vertiport/evtol-sim/core/metrics"
	"github.com/vertiport/evtol-sim/infra/mqtt"
)

// Config is the root configuration of a simulation run.
type Config struct {
	Simulation fleet.Config   `json:"simulation"`
	Metrics    metrics.Config `json:"metrics"`
	Telemetry  mqtt.Config    `json:"telemetry"`
}

// Default returns a configuration for the reference scenario: 20 vehicles,
// 3 chargers, a 3 hour window and a 100 ms wait timeout.
func Default() *Config {
	cfg := &Config{}
	cfg.Simulation.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Telemetry.SetDefaults()
	return cfg
}

// Load reads the configuration from a YAML or JSON file, then applies
// environment overrides of the form EVTOL_section__key.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("EVTOL_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "evtol_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Simulation.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Telemetry.SetDefaults()
	if err := cfg.Simulation.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Telemetry.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
