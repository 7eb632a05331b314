// Package config handles gpxgeo configuration loading and validation.
//
// Configuration is read from a YAML file, overlaid on Default() and validated
// using struct tags. Command line flags take precedence over file values.
package config
