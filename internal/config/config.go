// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig holds conversion settings.
type ConvertConfig struct {
	Pattern         string `yaml:"pattern"`          // Glob of assets to convert
	Force           bool   `yaml:"force"`            // Reconvert up-to-date assets
	Catalog         string `yaml:"catalog"`          // ShaderManager.xml path, empty = auto
	StrictUsage     bool   `yaml:"strict_usage"`     // Fail when a layout lacks position/normal/texcoord
	ValidateIndices bool   `yaml:"validate_indices"` // Bounds-check face indices
	ProbeImages     bool   `yaml:"probe_images"`     // Decode resolved image headers
	Dump            bool   `yaml:"dump"`             // Dump parsed assets at debug level
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			Pattern:         "*.odr",
			Force:           false,
			Catalog:         "",
			StrictUsage:     false,
			ValidateIndices: true,
			ProbeImages:     false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "openformat_convert.log",
		},
	}
}
