package particlefx

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfigFile reads a YAML file of optional fields and merges it over the
// defaults. Missing fields keep their default.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	var partial PartialConfig
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg := Merge(DefaultConfig(), partial)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func MarshalConfig(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
