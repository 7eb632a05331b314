package geojson

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/planbiir/gpxgeo/internal/gpx"
)

// bbox returns the 2D bounds of every finite coordinate in g, or nil when
// there is none.
func bbox(g *gpx.GPX) []float64 {
	var mp orb.MultiPoint
	add := func(p gpx.Point) {
		if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
			return
		}
		mp = append(mp, orb.Point{p.Lon, p.Lat})
	}

	for _, t := range g.Tracks {
		for _, p := range t.Points {
			add(p)
		}
	}
	for _, r := range g.Routes {
		for _, p := range r.Points {
			add(p)
		}
	}
	for _, w := range g.Waypoints {
		add(w)
	}

	if len(mp) == 0 {
		return nil
	}

	bound := mp.Bound()
	return []float64{bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat()}
}
