package gpx

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/planbiir/gpxgeo/internal/xmltree"
)

// ErrInvalidTime is wrapped by every *TimeError.
var ErrInvalidTime = errors.New("invalid time")

// TimeError reports a <time> element whose text is not a timestamp.
type TimeError struct {
	Tag   string // element owning the <time>
	Value string
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("%s: cannot parse time %q", e.Tag, e.Value)
}

func (e *TimeError) Unwrap() error { return ErrInvalidTime }

// timeLayouts are tried in order when reading <time>.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseFloat returns NaN for anything that is not a finite number.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

func (p *parser) parseWaypoint(n xmltree.Node) (Point, error) {
	lat, _ := n.Attr("lat")
	lon, _ := n.Attr("lon")

	pt := Point{
		Lat:  parseFloat(lat),
		Lon:  parseFloat(lon),
		Name: readScalar(n, "name"),
		Sym:  readScalar(n, "sym"),
		Cmt:  readScalar(n, "cmt"),
		Desc: readScalar(n, "desc"),
	}
	if math.IsNaN(pt.Lat) || math.IsNaN(pt.Lon) {
		p.log.Debug("Waypoint with unparsable coordinates",
			zap.String("lat", lat), zap.String("lon", lon))
	}

	if err := p.readEleAndTime(n, &pt); err != nil {
		return Point{}, err
	}
	return pt, nil
}

func (p *parser) parseRoutePoint(n xmltree.Node) (Point, error) {
	pt := Point{
		Lat: p.coordinate(n, "lat"),
		Lon: p.coordinate(n, "lon"),
	}
	if err := p.readEleAndTime(n, &pt); err != nil {
		return Point{}, err
	}
	return pt, nil
}

// coordinate reads a route/track point attribute, defaulting to 0.
func (p *parser) coordinate(n xmltree.Node, name string) float64 {
	raw, _ := n.Attr(name)
	v := parseFloat(raw)
	if math.IsNaN(v) {
		p.log.Debug("Unparsable coordinate, using 0",
			zap.String("tag", n.Tag()), zap.String("attr", name), zap.String("value", raw))
		return 0
	}
	return v
}

func (p *parser) readEleAndTime(n xmltree.Node, pt *Point) error {
	if raw := readScalar(n, "ele"); raw != nil {
		if ele := parseFloat(*raw); !math.IsNaN(ele) {
			pt.Ele = &ele
		} else {
			p.log.Debug("Non-numeric elevation", zap.String("tag", n.Tag()), zap.String("value", *raw))
		}
	}

	if raw := readScalar(n, "time"); raw != nil {
		t, ok := parseTime(*raw)
		if !ok {
			return &TimeError{Tag: n.Tag(), Value: *raw}
		}
		pt.Time = &t
	}
	return nil
}
