// Package geojson projects a parsed GPX document onto an RFC 7946 style
// FeatureCollection. Tracks come first, then routes, then waypoints, each in
// document order. The collection carries the document metadata as a
// non-standard top-level "properties" member.
package geojson

import (
	"github.com/planbiir/gpxgeo/internal/gpx"
	"github.com/planbiir/gpxgeo/internal/jsonx"
)

const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypeLineString        = "LineString"
	TypePoint             = "Point"
)

// Position is a [lon, lat, ele] triplet.
type Position [3]float64

func (p Position) MarshalJSON() ([]byte, error) {
	return jsonx.MarshalFloats(p[:])
}

// Geometry holds either a single Position (Point) or a []Position (LineString).
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string   `json:"type"`
	Geometry   Geometry `json:"geometry"`
	Properties any      `json:"properties"`
}

// RouteProperties are the properties of a track or route feature.
type RouteProperties struct {
	Name   *string  `json:"name"`
	Cmt    *string  `json:"cmt"`
	Desc   *string  `json:"desc"`
	Src    *string  `json:"src"`
	Number *string  `json:"number"`
	Link   gpx.Link `json:"link"`
	Type   *string  `json:"type"`
}

// WaypointProperties are the properties of a waypoint feature.
type WaypointProperties struct {
	Name *string `json:"name"`
	Sym  *string `json:"sym"`
	Cmt  *string `json:"cmt"`
	Desc *string `json:"desc"`
}

// FeatureCollection is the projection result.
type FeatureCollection struct {
	Type       string       `json:"type"`
	BBox       []float64    `json:"bbox,omitempty"`
	Features   []Feature    `json:"features"`
	Properties gpx.Metadata `json:"properties"`
}

// Options controls optional members of the output.
type Options struct {
	// BBox adds a [minLon, minLat, maxLon, maxLat] bounding box.
	BBox bool
}

// FromGPX builds the FeatureCollection for g. It does not modify g and
// returns structurally identical output for identical input.
func FromGPX(g *gpx.GPX, opts Options) *FeatureCollection {
	fc := &FeatureCollection{
		Type:       TypeFeatureCollection,
		Features:   make([]Feature, 0, len(g.Tracks)+len(g.Routes)+len(g.Waypoints)),
		Properties: g.Metadata,
	}

	for _, t := range g.Tracks {
		fc.Features = append(fc.Features, lineFeature(t.RouteLike))
	}
	for _, r := range g.Routes {
		fc.Features = append(fc.Features, lineFeature(r.RouteLike))
	}
	for _, w := range g.Waypoints {
		fc.Features = append(fc.Features, Feature{
			Type: TypeFeature,
			Geometry: Geometry{
				Type:        TypePoint,
				Coordinates: position(w),
			},
			Properties: WaypointProperties{
				Name: w.Name,
				Sym:  w.Sym,
				Cmt:  w.Cmt,
				Desc: w.Desc,
			},
		})
	}

	if opts.BBox {
		fc.BBox = bbox(g)
	}

	return fc
}

func lineFeature(rl gpx.RouteLike) Feature {
	coords := make([]Position, 0, len(rl.Points))
	for _, p := range rl.Points {
		coords = append(coords, position(p))
	}

	return Feature{
		Type: TypeFeature,
		Geometry: Geometry{
			Type:        TypeLineString,
			Coordinates: coords,
		},
		Properties: RouteProperties{
			Name:   rl.Name,
			Cmt:    rl.Cmt,
			Desc:   rl.Desc,
			Src:    rl.Src,
			Number: rl.Number,
			Link:   rl.Link,
			Type:   rl.Type,
		},
	}
}

// position defaults a missing elevation to 0.
func position(p gpx.Point) Position {
	ele := 0.0
	if p.Ele != nil {
		ele = *p.Ele
	}
	return Position{p.Lon, p.Lat, ele}
}
