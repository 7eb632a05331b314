package gpx

import (
	"go.uber.org/zap"

	"github.com/planbiir/gpxgeo/internal/geometry"
	"github.com/planbiir/gpxgeo/internal/xmltree"
)

// parseRouteLike reads the descriptive fields of a <rte> or <trk>, collects
// every pointTag descendant and attaches the derived geometry.
func (p *parser) parseRouteLike(n xmltree.Node, pointTag string) (RouteLike, error) {
	rl := RouteLike{
		Name:   readScalar(n, "name"),
		Cmt:    readScalar(n, "cmt"),
		Desc:   readScalar(n, "desc"),
		Src:    readScalar(n, "src"),
		Number: readScalar(n, "number"),
		Type:   readDirectScalar(n, "type"),
		Link:   DefaultLink(),
	}

	if link := readDirectChild(n, "link"); link != nil {
		rl.Link = parseLink(link)
	}

	nodes := n.FindAll(pointTag)
	rl.Points = make([]Point, 0, len(nodes))
	for _, node := range nodes {
		pt, err := p.parseRoutePoint(node)
		if err != nil {
			return RouteLike{}, err
		}
		rl.Points = append(rl.Points, pt)
	}

	geo := geometryPoints(rl.Points)
	rl.Distance = geometry.RouteDistance(geo)
	rl.Elevation = geometry.ElevationStats(geo)
	rl.Slopes = geometry.CalcSlopes(geo, rl.Distance.Cumul)

	p.log.Debug("Parsed point sequence",
		zap.String("tag", n.Tag()),
		zap.Int("points", len(rl.Points)),
		zap.Float64("distance", rl.Distance.Total))

	return rl, nil
}

func geometryPoints(points []Point) []geometry.Point {
	out := make([]geometry.Point, len(points))
	for i, p := range points {
		out[i] = geometry.Point{Lat: p.Lat, Lon: p.Lon, Ele: p.Ele}
	}
	return out
}
