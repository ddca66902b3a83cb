package config

import "path/filepath"

// DefaultConfigFile is the conventional config file name, looked up in
// the working directory.
const DefaultConfigFile = ".wastewatch.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:                ".wastewatch",
		Responder:              "placeholder",
		SamplingTimeoutSeconds: 30,
		FixturesDir:            "fixtures",
		HTTP: HTTPConfig{
			Port:     8421,
			AllowAll: false,
		},
	}
}

// DatabasePath returns the SQLite database location under the data
// directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "wastewatch.db")
}
