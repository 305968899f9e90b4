package ytclient

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds every request; the dispatcher itself has no
// waiting logic.
const DefaultTimeout = 30 * time.Second

// Config describes the YouTrack instance to talk to.
type Config struct {
	// BaseURL is the instance URL, with or without the /api suffix,
	// e.g. https://example.youtrack.cloud
	BaseURL string `json:"url" yaml:"url"`
	// Token is the permanent API token used as a Bearer credential.
	Token string `json:"token" yaml:"token"`
	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// UnmarshalYAML decodes the config, accepting Go duration strings such as
// "30s" for the timeout.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		BaseURL string `yaml:"url"`
		Token   string `yaml:"token"`
		Timeout string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return errors.WithStack(err)
	}
	c.BaseURL = raw.BaseURL
	c.Token = raw.Token
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return errors.Wrap(err, "invalid timeout")
		}
		c.Timeout = d
	}
	return nil
}

// LoadConfig reads a YAML config file and applies environment overrides.
// With an empty path the configuration comes from the environment only:
// YOUTRACK_URL and YOUTRACK_API_TOKEN.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(bs, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	cfg.BaseURL = values.StringsCoalesce(os.Getenv("YOUTRACK_URL"), cfg.BaseURL)
	cfg.Token = values.StringsCoalesce(os.Getenv("YOUTRACK_API_TOKEN"), cfg.Token)
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &cfg, nil
}
