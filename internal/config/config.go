package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Threshold is a warning/danger pair of period totals. The engine never
// thresholds anything itself; presentation layers use these to color-code
// daily and weekly workload figures.
type Threshold struct {
	Warning int `yaml:"warning" json:"warning"`
	Danger  int `yaml:"danger" json:"danger"`
}

// Config is the top-level application configuration.
type Config struct {
	// Daily applies to one weekday's period total.
	Daily Threshold `yaml:"daily" json:"daily"`
	// Weekly applies to one week's period total.
	Weekly Threshold `yaml:"weekly" json:"weekly"`
}

// DefaultConfig returns the in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Daily:  Threshold{Warning: 8, Danger: 10},
		Weekly: Threshold{Warning: 25, Danger: 35},
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// config files still behave correctly. A danger bound below its warning bound
// is lifted to the warning bound.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Daily.Warning <= 0 {
		c.Daily.Warning = def.Daily.Warning
	}
	if c.Daily.Danger <= 0 {
		c.Daily.Danger = def.Daily.Danger
	}
	if c.Weekly.Warning <= 0 {
		c.Weekly.Warning = def.Weekly.Warning
	}
	if c.Weekly.Danger <= 0 {
		c.Weekly.Danger = def.Weekly.Danger
	}
	if c.Daily.Danger < c.Daily.Warning {
		c.Daily.Danger = c.Daily.Warning
	}
	if c.Weekly.Danger < c.Weekly.Warning {
		c.Weekly.Danger = c.Weekly.Warning
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written there (creating
//     the parent directory) and returned.
//   - Otherwise the YAML is unmarshalled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration to path atomically (temp file + rename) with
// 0600 permissions, creating the parent directory as needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tkbcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
