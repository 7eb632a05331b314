package gpx

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/planbiir/gpxgeo/internal/xmltree"
)

// Options controls how a document is parsed.
type Options struct {
	// Backend selects the XML library; empty means xmltree.Etree.
	Backend xmltree.Backend
	// Logger receives debug output about substituted defaults. Nil disables it.
	Logger *zap.Logger
}

type parser struct {
	log *zap.Logger
}

// Parse reads and parses a GPX file
func Parse(filename string, opts Options) (*GPX, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file, opts)
}

// ParseReader parses GPX from an io.Reader
func ParseReader(r io.Reader, opts Options) (*GPX, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read GPX: %w", err)
	}
	return ParseBytes(data, opts)
}

// ParseBytes parses an in-memory GPX document.
func ParseBytes(data []byte, opts Options) (*GPX, error) {
	doc, err := xmltree.Parse(data, opts.Backend)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}
	return FromTree(doc, opts.Logger)
}

// FromTree builds the model from an already parsed tree. The walk is a
// single pass; the only failure is an unparsable <time>.
func FromTree(doc xmltree.Node, log *zap.Logger) (*GPX, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &parser{log: log}

	g := &GPX{
		Metadata:  p.parseMetadata(doc),
		Waypoints: []Point{},
		Routes:    []Route{},
		Tracks:    []Track{},
	}

	for _, n := range doc.FindAll("wpt") {
		wpt, err := p.parseWaypoint(n)
		if err != nil {
			return nil, err
		}
		g.Waypoints = append(g.Waypoints, wpt)
	}

	for _, n := range doc.FindAll("rte") {
		rl, err := p.parseRouteLike(n, "rtept")
		if err != nil {
			return nil, err
		}
		g.Routes = append(g.Routes, Route{RouteLike: rl})
	}

	for _, n := range doc.FindAll("trk") {
		rl, err := p.parseRouteLike(n, "trkpt")
		if err != nil {
			return nil, err
		}
		g.Tracks = append(g.Tracks, Track{RouteLike: rl})
	}

	log.Debug("Parsed GPX document",
		zap.Int("waypoints", len(g.Waypoints)),
		zap.Int("routes", len(g.Routes)),
		zap.Int("tracks", len(g.Tracks)))

	return g, nil
}

// Stats summarizes a parsed document.
type Stats struct {
	Waypoints     int     `json:"waypoints"`
	Routes        int     `json:"routes"`
	Tracks        int     `json:"tracks"`
	RoutePoints   int     `json:"route_points"`
	TrackPoints   int     `json:"track_points"`
	RouteDistance float64 `json:"route_distance_km"`
	TrackDistance float64 `json:"track_distance_km"`
}

// Stats returns counts and total distances (km) for the document.
func (g *GPX) Stats() Stats {
	stats := Stats{
		Waypoints: len(g.Waypoints),
		Routes:    len(g.Routes),
		Tracks:    len(g.Tracks),
	}

	for _, r := range g.Routes {
		stats.RoutePoints += len(r.Points)
		stats.RouteDistance += r.Distance.Total / 1000
	}
	for _, t := range g.Tracks {
		stats.TrackPoints += len(t.Points)
		stats.TrackDistance += t.Distance.Total / 1000
	}

	return stats
}
