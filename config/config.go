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

	"github.com/kilianp07/fleetmaint/core/metrics"
	"github.com/kilianp07/fleetmaint/core/scheduler"
	"github.com/kilianp07/fleetmaint/core/telemetry"
	"github.com/kilianp07/fleetmaint/infra/mqtt"
)

type Config struct {
	App       AppConfig        `json:"app"`
	MQTT      mqtt.Config      `json:"mqtt"`
	Telemetry telemetry.Config `json:"telemetry"`
	Scheduler scheduler.Config `json:"scheduler"`
	Inventory InventoryConfig  `json:"inventory"`
	Metrics   metrics.Config   `json:"metrics"`
	Logging   LoggingConfig    `json:"logging"`
}

// Load reads the configuration file, applies FM_ environment overrides and
// fills in defaults.
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
	// Optional environment overrides, e.g. FM_MQTT__BROKER.
	if err := k.Load(env.Provider("FM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fm_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.App.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Telemetry.SetDefaults()
	cfg.Scheduler.SetDefaults()
	cfg.Inventory.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.App.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Telemetry.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Scheduler.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Inventory.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
