package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "workbench.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "workbench.yml"

// EnvPrefix namespaces environment overrides, e.g. WORKBENCH_LANGUAGE.
const EnvPrefix = "WORKBENCH_"

// Config holds the runtime configuration of the workbench.
type Config struct {
	Language string        `koanf:"language"`
	Server   ServerConfig  `koanf:"server"`
	Grid     GridConfig    `koanf:"grid"`
	Insight  InsightConfig `koanf:"insight"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// GridConfig describes the dashboard canvas geometry in pixels.
type GridConfig struct {
	CanvasWidth float64 `koanf:"canvas_width"`
	RowHeight   float64 `koanf:"row_height"`
	Gutter      float64 `koanf:"gutter"`
}

// InsightConfig configures the remote text-generation service. An empty
// BaseURL selects the built-in mock client.
type InsightConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"language":          "en",
		"server.addr":       ":8080",
		"grid.canvas_width": 1200.0,
		"grid.row_height":   80.0,
		"grid.gutter":       16.0,
		"insight.timeout":   30 * time.Second,
	}
}

// Load builds the configuration from defaults, an optional config file and
// WORKBENCH_-prefixed environment variables, in ascending priority.
func Load(cfgFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if cfgFile == "" {
		cfgFile = findConfigFile(".")
	}
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", cfgFile, err)
			}
		}
	}

	// WORKBENCH_INSIGHT__BASE_URL maps onto insight.base_url. Double
	// underscores separate nesting levels; single ones stay in the key.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

func findConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
