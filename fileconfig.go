package evalforge

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML shape of an on-disk client configuration, used by
// CI pipelines and the CLI. Unset fields fall back to environment
// variables and defaults the same way Config does.
//
// Example file:
//
//	api_key: ef-1234567890abcdef
//	base_url: https://api.evalforge.dev/api/v1
//	timeout: 30s
//	max_retries: 3
//	retry_delay: 1s
//	backoff_factor: 2.0
//	debug: false
type FileConfig struct {
	APIKey        string       `yaml:"api_key"`
	BaseURL       string       `yaml:"base_url"`
	Timeout       yamlDuration `yaml:"timeout"`
	MaxRetries    *int         `yaml:"max_retries"`
	RetryDelay    yamlDuration `yaml:"retry_delay"`
	BackoffFactor float64      `yaml:"backoff_factor"`
	Debug         bool         `yaml:"debug"`
}

// yamlDuration parses Go duration strings ("30s", "1m") from YAML.
type yamlDuration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *yamlDuration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = yamlDuration(parsed)
	return nil
}

// LoadConfigFile reads a YAML config file and converts it to a Config.
// Defaults are not applied here; pass the result to NewWithConfig.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("evalforge: failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig converts raw YAML into a Config.
func ParseConfig(data []byte) (*Config, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("evalforge: failed to parse config file: %w", err)
	}

	cfg := &Config{
		APIKey:        fc.APIKey,
		BaseURL:       fc.BaseURL,
		Timeout:       time.Duration(fc.Timeout),
		MaxRetries:    DefaultMaxRetries,
		RetryDelay:    time.Duration(fc.RetryDelay),
		BackoffFactor: fc.BackoffFactor,
		Debug:         fc.Debug,
	}
	if fc.MaxRetries != nil {
		cfg.MaxRetries = *fc.MaxRetries
	}
	return cfg, nil
}
