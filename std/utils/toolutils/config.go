package toolutils

import "github.com/named-data/ndnode/std/log"

// ToolConfig is the configuration file of the ndnode command.
type ToolConfig struct {
	// Transport URI of the forwarder. Empty uses client.conf.
	Transport string `yaml:"transport" toml:"transport"`
	// LogLevel is one of TRACE, DEBUG, INFO, WARN, ERROR.
	LogLevel string `yaml:"log_level" toml:"log_level"`
	// LogJson selects the JSON log handler.
	LogJson bool `yaml:"log_json" toml:"log_json"`
	// StrictPrefixMatch filters registered prefixes by IsPrefix before dispatch.
	StrictPrefixMatch bool `yaml:"strict_prefix_match" toml:"strict_prefix_match"`
	// Metrics listen address, empty to disable.
	Metrics string `yaml:"metrics" toml:"metrics"`
	// Store URI, see storage.Open.
	Store string `yaml:"store" toml:"store"`
}

func DefaultToolConfig() *ToolConfig {
	c := &ToolConfig{}
	c.FillDefaults()
	return c
}

// FillDefaults sets the empty fields that have a default.
func (c *ToolConfig) FillDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Store == "" {
		c.Store = "memory://"
	}
}

// Level parses the configured log level.
func (c *ToolConfig) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}
