package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	FormatGeoJSON = "geojson"
	FormatModel   = "model"
)

// searchPaths are tried in order when no explicit path is given.
var searchPaths = []string{"gpxgeo.yml", "config/gpxgeo.yml"}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Parser: ParserConfig{Backend: "etree"},
		Output: OutputConfig{
			Format: FormatGeoJSON,
			Indent: "  ",
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MaxBodyBytes:  32 << 20,
			ReadTimeoutMS: 10000,
		},
	}
}

// Load reads path (or the first existing search path when path is empty),
// overlays it on Default() and validates the result. Without an explicit
// path a missing file is not an error.
func Load(path string) (AppConfig, error) {
	cfg := Default()

	data, err := read(path)
	if err != nil {
		return cfg, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg AppConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func read(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return data, nil
	}

	for _, p := range searchPaths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil, nil
}
