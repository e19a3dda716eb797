package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "2s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds application settings (in-memory representation).
// It is resolved once at startup from defaults, an optional YAML file,
// and command-line flags, in that order.
type Config struct {
	// DatasetPath points at the checksummed dataset artifact.
	DatasetPath string `yaml:"dataset_path"`
	// ManifestPath overrides the default "<dataset>.manifest.json" location.
	ManifestPath string `yaml:"manifest_path"`
	// RegistryPath is the SQLite file recording known-good dataset versions.
	RegistryPath string `yaml:"registry_path"`
	// Listen is the HTTP listen address for the query surface.
	Listen string `yaml:"listen"`
	// QueryTimeout bounds a single solver call when the caller supplies no deadline.
	QueryTimeout Duration `yaml:"query_timeout"`
	// FallbackToLastGood lets serve boot from the registry's last known-good
	// dataset when loading DatasetPath fails.
	FallbackToLastGood bool `yaml:"fallback_to_last_good"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		DatasetPath:        "data/universe.jsonl",
		RegistryPath:       "navigator.db",
		Listen:             "127.0.0.1:13380",
		QueryTimeout:       Duration(5 * time.Second),
		FallbackToLastGood: true,
	}
}

// Load reads a YAML config file and merges it over the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = Default().QueryTimeout
	}
	return cfg, nil
}
