package config

import (
	"time"

	"github.com/ecotrace/wastewatch/internal/sampling"
)

// Config is the top-level wastewatch configuration, corresponding to
// .wastewatch.yml.
type Config struct {
	DataDir                string     `yaml:"data_dir" koanf:"data_dir"`
	Responder              string     `yaml:"responder" koanf:"responder"`
	SamplingTimeoutSeconds int        `yaml:"sampling_timeout_seconds" koanf:"sampling_timeout_seconds"`
	FixturesDir            string     `yaml:"fixtures_dir" koanf:"fixtures_dir"`
	HTTP                   HTTPConfig `yaml:"http" koanf:"http"`
}

// HTTPConfig holds settings for the HTTP transport.
type HTTPConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// SamplingTimeout returns the configured sampling timeout, or the broker
// default when unset.
func (c *Config) SamplingTimeout() time.Duration {
	if c.SamplingTimeoutSeconds <= 0 {
		return sampling.DefaultTimeout
	}
	return time.Duration(c.SamplingTimeoutSeconds) * time.Second
}

// ResponderMode parses the configured responder name.
func (c *Config) ResponderMode() (sampling.ResponderMode, error) {
	return sampling.ParseResponderMode(c.Responder)
}
