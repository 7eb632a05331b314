package geometry

import (
	"encoding/json"

	"github.com/planbiir/gpxgeo/internal/jsonx"
)

// Point is the geometry engine's view of a GPS point.
type Point struct {
	Lat float64
	Lon float64
	Ele *float64 // nil when the elevation is unknown
}

// Distance holds the length of a point sequence in meters.
type Distance struct {
	Total float64   `json:"total"`
	Cumul []float64 `json:"cumul"`
}

// MarshalJSON renders non-finite totals (overflowing sums) as null.
func (d Distance) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Total any   `json:"total"`
		Cumul []any `json:"cumul"`
	}{
		Total: jsonx.Float(d.Total),
		Cumul: jsonx.Floats(d.Cumul),
	})
}

// Elevation summarizes the elevation profile of a point sequence.
// A nil field means "no data"; zero values are reported as nil as well.
type Elevation struct {
	Max *float64 `json:"max"`
	Min *float64 `json:"min"`
	Pos *float64 `json:"pos"`
	Neg *float64 `json:"neg"`
	Avg *float64 `json:"avg"`
}

func (e Elevation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Max any `json:"max"`
		Min any `json:"min"`
		Pos any `json:"pos"`
		Neg any `json:"neg"`
		Avg any `json:"avg"`
	}{
		Max: jsonx.FloatPtr(e.Max),
		Min: jsonx.FloatPtr(e.Min),
		Pos: jsonx.FloatPtr(e.Pos),
		Neg: jsonx.FloatPtr(e.Neg),
		Avg: jsonx.FloatPtr(e.Avg),
	})
}

// Slopes is a series of percentage grades between consecutive points.
// Zero-length segments produce ±Inf or NaN, which encode as JSON null.
type Slopes []float64

func (s Slopes) MarshalJSON() ([]byte, error) {
	return jsonx.MarshalFloats(s)
}
