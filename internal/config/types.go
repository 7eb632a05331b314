package config

import "time"

// ParserConfig selects the XML tree backend
type ParserConfig struct {
	Backend string `yaml:"backend" validate:"oneof=etree xmlquery"`
}

// OutputConfig controls what is written and how
type OutputConfig struct {
	Format string `yaml:"format" validate:"oneof=geojson model"`
	Indent string `yaml:"indent"`
	BBox   bool   `yaml:"bbox"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Addr          string `yaml:"addr" validate:"required"`
	MaxBodyBytes  int64  `yaml:"maxBodyBytes" validate:"gt=0"`
	ReadTimeoutMS int    `yaml:"readTimeoutMS" validate:"gte=0"`
}

// ReadTimeout returns the configured read timeout; zero disables it.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutMS) * time.Millisecond
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Parser ParserConfig `yaml:"parser"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
}
