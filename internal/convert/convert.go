// Package convert turns GPX bytes into one of the supported JSON documents.
package convert

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/planbiir/gpxgeo/internal/config"
	"github.com/planbiir/gpxgeo/internal/geojson"
	"github.com/planbiir/gpxgeo/internal/gpx"
	"github.com/planbiir/gpxgeo/internal/httpx"
	"github.com/planbiir/gpxgeo/internal/xmltree"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Options struct {
	Format  string // config.FormatGeoJSON (default) or config.FormatModel
	BBox    bool
	Backend xmltree.Backend
	Logger  *zap.Logger
}

// OptionsFromConfig maps the parser and output sections of cfg.
func OptionsFromConfig(cfg config.AppConfig, log *zap.Logger) Options {
	return Options{
		Format:  cfg.Output.Format,
		BBox:    cfg.Output.BBox,
		Backend: xmltree.Backend(cfg.Parser.Backend),
		Logger:  log,
	}
}

// Result is a converted document ready to be encoded.
type Result struct {
	Document    any
	ContentType string
	Features    int
	Stats       gpx.Stats
}

// Bytes parses data and projects it according to opts.
func Bytes(data []byte, opts Options) (*Result, error) {
	g, err := gpx.ParseBytes(data, gpx.Options{Backend: opts.Backend, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	return Document(g, opts)
}

// Document projects an already parsed document.
func Document(g *gpx.GPX, opts Options) (*Result, error) {
	res := &Result{Stats: g.Stats()}

	switch opts.Format {
	case "", config.FormatGeoJSON:
		fc := geojson.FromGPX(g, geojson.Options{BBox: opts.BBox})
		res.Document = fc
		res.ContentType = httpx.ContentTypeGeoJSON
		res.Features = len(fc.Features)
	case config.FormatModel:
		res.Document = g
		res.ContentType = httpx.ContentTypeJSON
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	return res, nil
}
