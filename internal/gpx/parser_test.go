package gpx

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/planbiir/gpxgeo/internal/xmltree"
)

func parseReference(t *testing.T, backend xmltree.Backend) *GPX {
	t.Helper()
	gpxData, err := Parse(filepath.Join("testdata", "reference.gpx"), Options{Backend: backend})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return gpxData
}

func strValue(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func floatNear(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s: expected %v, got nil", name, want)
		return
	}
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", name, want, *got)
	}
}

func TestParseReference(t *testing.T) {
	for _, backend := range xmltree.Backends() {
		t.Run(string(backend), func(t *testing.T) {
			gpxData := parseReference(t, backend)

			if len(gpxData.Waypoints) != 2 {
				t.Errorf("Expected 2 waypoints, got %d", len(gpxData.Waypoints))
			}
			if len(gpxData.Routes) != 1 {
				t.Fatalf("Expected 1 route, got %d", len(gpxData.Routes))
			}
			if len(gpxData.Tracks) != 1 {
				t.Fatalf("Expected 1 track, got %d", len(gpxData.Tracks))
			}

			track := gpxData.Tracks[0]
			if len(track.Points) != 8 {
				t.Fatalf("Expected 8 track points across segments, got %d", len(track.Points))
			}
			if math.Abs(track.Distance.Total-649.3988037056865) > 1e-6 {
				t.Errorf("Track distance incorrect: got %.6f", track.Distance.Total)
			}
			if len(track.Distance.Cumul) != 8 || track.Distance.Cumul[7] != track.Distance.Total {
				t.Errorf("Unexpected cumulative distances: %v", track.Distance.Cumul)
			}
			floatNear(t, "track max", track.Elevation.Max, 8.0)
			floatNear(t, "track min", track.Elevation.Min, 4.9)
			floatNear(t, "track pos", track.Elevation.Pos, 2.8)
			floatNear(t, "track neg", track.Elevation.Neg, 3.0999999999999996)
			floatNear(t, "track avg", track.Elevation.Avg, 6.55)
			if len(track.Slopes) != 7 {
				t.Errorf("Expected 7 slopes, got %d", len(track.Slopes))
			}
			if math.Abs(track.Slopes[0]-0.8223803052920269) > 1e-9 {
				t.Errorf("Unexpected first slope %f", track.Slopes[0])
			}
			if strValue(track.Type) != "running" {
				t.Errorf("Expected track type running, got %s", strValue(track.Type))
			}

			route := gpxData.Routes[0]
			if len(route.Points) != 5 {
				t.Fatalf("Expected 5 route points, got %d", len(route.Points))
			}
			if math.Abs(route.Distance.Total-649.8706029498526) > 1e-6 {
				t.Errorf("Route distance incorrect: got %.6f", route.Distance.Total)
			}
			floatNear(t, "route max", route.Elevation.Max, 8.1)
			floatNear(t, "route avg", route.Elevation.Avg, 6.4799999999999995)
			if route.Points[0].Time != nil {
				t.Errorf("Expected nil time for route point without <time>")
			}
			if route.Points[0].Name != nil {
				t.Errorf("Route points should not carry a name")
			}
		})
	}
}

func TestParseTypeCollision(t *testing.T) {
	for _, backend := range xmltree.Backends() {
		t.Run(string(backend), func(t *testing.T) {
			route := parseReference(t, backend).Routes[0]

			if strValue(route.Type) != "hiking" {
				t.Errorf("Expected route type hiking, got %s", strValue(route.Type))
			}
			if route.Link.Href != "https://example.com/route" {
				t.Errorf("Unexpected route link href %q", route.Link.Href)
			}
			if strValue(route.Link.Type) != "text/html" {
				t.Errorf("Expected link type text/html, got %s", strValue(route.Link.Type))
			}
			for name, got := range map[string]*string{
				"name": route.Name, "cmt": route.Cmt, "desc": route.Desc, "src": route.Src, "number": route.Number,
			} {
				if got == nil {
					t.Errorf("Expected route %s to be set", name)
				}
			}
		})
	}
}

func TestParseMetadata(t *testing.T) {
	for _, backend := range xmltree.Backends() {
		t.Run(string(backend), func(t *testing.T) {
			md := parseReference(t, backend).Metadata

			if strValue(md.Name) != "Lake loop" {
				t.Errorf("Unexpected name %s", strValue(md.Name))
			}
			if strValue(md.Time) != "2020-02-02T07:54:30.000Z" {
				t.Errorf("Unexpected time %s", strValue(md.Time))
			}
			if strValue(md.Author.Name) != "Jane Doe" {
				t.Errorf("Unexpected author %s", strValue(md.Author.Name))
			}
			if md.Author.Email != (AuthorEmail{ID: "jane", Domain: "example.com"}) {
				t.Errorf("Unexpected email %+v", md.Author.Email)
			}
			if md.Author.Link.Href != "https://example.com/jane" || strValue(md.Author.Link.Type) != "text/html" {
				t.Errorf("Unexpected author link %+v", md.Author.Link)
			}

			// the metadata's own link, not the author's
			if md.Link.Href != "https://example.com/loop" {
				t.Errorf("Unexpected metadata link href %q", md.Link.Href)
			}
			if strValue(md.Link.Text) != "Loop page" {
				t.Errorf("Unexpected metadata link text %s", strValue(md.Link.Text))
			}
			if md.Link.Type != nil {
				t.Errorf("Expected nil link type, got %s", strValue(md.Link.Type))
			}
		})
	}
}

func TestParseWaypoints(t *testing.T) {
	wpts := parseReference(t, xmltree.Etree).Waypoints

	first := wpts[0]
	if first.Lat != 43.5684 || first.Lon != 4.0876 {
		t.Errorf("Unexpected coordinates %f,%f", first.Lat, first.Lon)
	}
	floatNear(t, "ele", first.Ele, 5.2)
	if first.Time == nil || !first.Time.Equal(time.Date(2020, 2, 2, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected time %v", first.Time)
	}
	if strValue(first.Sym) != "Flag, Blue" || strValue(first.Cmt) != "Parking" {
		t.Errorf("Unexpected sym/cmt %s/%s", strValue(first.Sym), strValue(first.Cmt))
	}

	second := wpts[1]
	if second.Sym != nil || second.Cmt != nil || second.Ele != nil || second.Time != nil {
		t.Errorf("Expected missing optional fields to be nil: %+v", second)
	}
	if strValue(second.Name) != "Viewpoint" {
		t.Errorf("Unexpected name %s", strValue(second.Name))
	}
}

func TestParseMissingMetadata(t *testing.T) {
	const gpxContent = `<gpx version="1.1"><wpt lat="1" lon="2"/></gpx>`

	gpxData, err := ParseReader(strings.NewReader(gpxContent), Options{})
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	md := gpxData.Metadata
	for name, got := range map[string]*string{
		"name": md.Name, "desc": md.Desc, "time": md.Time, "author.name": md.Author.Name,
		"link.text": md.Link.Text, "link.type": md.Link.Type,
		"author.link.text": md.Author.Link.Text, "author.link.type": md.Author.Link.Type,
	} {
		if got == nil || *got != "" {
			t.Errorf("Expected %s to default to empty string, got %s", name, strValue(got))
		}
	}
	if md.Link.Href != "" || md.Author.Email != (AuthorEmail{}) {
		t.Errorf("Expected default link and email, got %+v", md)
	}
}

func TestParsePartialMetadata(t *testing.T) {
	const gpxContent = `<gpx><metadata><author><name>Solo</name></author></metadata></gpx>`

	gpxData, err := ParseBytes([]byte(gpxContent), Options{})
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	md := gpxData.Metadata
	if md.Desc != nil {
		t.Errorf("Expected nil desc inside a present metadata block")
	}
	if md.Author.Email != (AuthorEmail{}) {
		t.Errorf("Expected default email, got %+v", md.Author.Email)
	}
	if md.Author.Link.Text == nil || *md.Author.Link.Text != "" {
		t.Errorf("Expected default author link")
	}
	if md.Link.Text == nil || *md.Link.Text != "" {
		t.Errorf("Expected default metadata link")
	}
}

func TestParseCoordinateFallbacks(t *testing.T) {
	const gpxContent = `<gpx>
	<wpt lat="north" lon="7.5"><ele>abc</ele></wpt>
	<rte>
		<rtept lat="north" lon=""><ele>0</ele></rtept>
		<rtept lon="7.1"><ele> 12.5 </ele></rtept>
	</rte>
	<trk><trkseg><trkpt lat="x" lon="y"/></trkseg></trk>
</gpx>`

	for _, backend := range xmltree.Backends() {
		t.Run(string(backend), func(t *testing.T) {
			gpxData, err := ParseBytes([]byte(gpxContent), Options{Backend: backend})
			if err != nil {
				t.Fatalf("ParseBytes failed: %v", err)
			}

			wpt := gpxData.Waypoints[0]
			if !math.IsNaN(wpt.Lat) || wpt.Lon != 7.5 {
				t.Errorf("Expected NaN waypoint latitude, got %f,%f", wpt.Lat, wpt.Lon)
			}
			if wpt.Ele != nil {
				t.Errorf("Expected nil elevation for non-numeric text")
			}

			pts := gpxData.Routes[0].Points
			if pts[0].Lat != 0 || pts[0].Lon != 0 || pts[1].Lat != 0 || pts[1].Lon != 7.1 {
				t.Errorf("Expected zero fallback for route coordinates, got %+v", pts)
			}
			floatNear(t, "zero elevation", pts[0].Ele, 0)
			floatNear(t, "trimmed elevation", pts[1].Ele, 12.5)

			trkpt := gpxData.Tracks[0].Points[0]
			if trkpt.Lat != 0 || trkpt.Lon != 0 {
				t.Errorf("Expected zero fallback for track coordinates, got %+v", trkpt)
			}
		})
	}
}

func TestParseRouteLinkDirectChild(t *testing.T) {
	const gpxContent = `<gpx>
	<rte>
		<rtept lat="1" lon="1"><link href="https://example.com/point"><text>Point</text></link></rtept>
		<link href="https://example.com/route"><text>Route</text></link>
	</rte>
	<trk>
		<trkseg><trkpt lat="1" lon="1"><link href="https://example.com/trkpt"/></trkpt></trkseg>
	</trk>
</gpx>`

	for _, backend := range xmltree.Backends() {
		t.Run(string(backend), func(t *testing.T) {
			gpxData, err := ParseBytes([]byte(gpxContent), Options{Backend: backend})
			if err != nil {
				t.Fatalf("ParseBytes failed: %v", err)
			}

			// the route's own link wins over an earlier point link
			route := gpxData.Routes[0]
			if route.Link.Href != "https://example.com/route" || strValue(route.Link.Text) != "Route" {
				t.Errorf("Expected the route's own link, got %+v", route.Link)
			}

			// a single link anywhere below the track is used as is
			if href := gpxData.Tracks[0].Link.Href; href != "https://example.com/trkpt" {
				t.Errorf("Expected the only track link, got %q", href)
			}
		})
	}
}

func TestParseNumericPrefix(t *testing.T) {
	const gpxContent = `<gpx>
	<wpt lat="12m" lon="3"/>
	<rte><rtept lat="45.5N" lon="7.25"><ele>12m</ele></rtept></rte>
</gpx>`

	gpxData, err := ParseBytes([]byte(gpxContent), Options{})
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	// numbers must be the whole trimmed text; a unit suffix makes them unparsable
	if wpt := gpxData.Waypoints[0]; !math.IsNaN(wpt.Lat) || wpt.Lon != 3 {
		t.Errorf("Expected NaN latitude for 12m, got %f,%f", wpt.Lat, wpt.Lon)
	}
	pt := gpxData.Routes[0].Points[0]
	if pt.Lat != 0 || pt.Lon != 7.25 {
		t.Errorf("Expected zero fallback for 45.5N, got %f,%f", pt.Lat, pt.Lon)
	}
	if pt.Ele != nil {
		t.Errorf("Expected nil elevation for 12m, got %v", *pt.Ele)
	}

	if got := parseFloat("  12.5 "); got != 12.5 {
		t.Errorf("Expected surrounding whitespace to be trimmed, got %v", got)
	}
}

func TestParseInvalidTime(t *testing.T) {
	const gpxContent = `<gpx><trk><trkseg><trkpt lat="1" lon="2"><time>yesterday</time></trkpt></trkseg></trk></gpx>`

	_, err := ParseBytes([]byte(gpxContent), Options{})
	if !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("Expected ErrInvalidTime, got %v", err)
	}

	var timeErr *TimeError
	if !errors.As(err, &timeErr) {
		t.Fatalf("Expected *TimeError, got %T", err)
	}
	if timeErr.Tag != "trkpt" || timeErr.Value != "yesterday" {
		t.Errorf("Unexpected error details: %+v", timeErr)
	}
}

func TestParseTimeLayouts(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2020-02-02T08:00:00Z", time.Date(2020, 2, 2, 8, 0, 0, 0, time.UTC)},
		{"2020-02-02T08:00:00.250Z", time.Date(2020, 2, 2, 8, 0, 0, 250000000, time.UTC)},
		{"2020-02-02T09:00:00+01:00", time.Date(2020, 2, 2, 8, 0, 0, 0, time.UTC)},
		{"2020-02-02T08:00:00", time.Date(2020, 2, 2, 8, 0, 0, 0, time.UTC)},
		{"2020-02-02", time.Date(2020, 2, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseTime(tt.input)
			if !ok {
				t.Fatalf("parseTime(%q) failed", tt.input)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseMalformedXML(t *testing.T) {
	_, err := ParseBytes([]byte(`<gpx><trk></gpx>`), Options{Backend: xmltree.Etree})
	if err == nil {
		t.Fatalf("Expected error for malformed XML")
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.gpx"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Expected not-exist error, got %v", err)
	}
}

func TestParseEmptySequences(t *testing.T) {
	const gpxContent = `<gpx><rte><name>Empty</name></rte><trk><trkseg><trkpt lat="1" lon="1"/></trkseg></trk></gpx>`

	gpxData, err := ParseBytes([]byte(gpxContent), Options{})
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	route := gpxData.Routes[0]
	if len(route.Points) != 0 || len(route.Distance.Cumul) != 0 || len(route.Slopes) != 0 {
		t.Errorf("Expected empty derived data for empty route, got %+v", route.RouteLike)
	}
	if route.Elevation.Max != nil || route.Elevation.Pos != nil {
		t.Errorf("Expected nil elevation stats for empty route")
	}

	track := gpxData.Tracks[0]
	if len(track.Distance.Cumul) != 1 || track.Distance.Cumul[0] != 0 || len(track.Slopes) != 0 {
		t.Errorf("Unexpected derived data for single point track: %+v", track.RouteLike)
	}
}

func TestStats(t *testing.T) {
	stats := parseReference(t, xmltree.Etree).Stats()

	if stats.Waypoints != 2 || stats.Routes != 1 || stats.Tracks != 1 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	if stats.RoutePoints != 5 || stats.TrackPoints != 8 {
		t.Errorf("Unexpected point counts: %+v", stats)
	}
	if math.Abs(stats.TrackDistance-0.6493988037056865) > 1e-9 {
		t.Errorf("Unexpected track distance %f km", stats.TrackDistance)
	}
}
