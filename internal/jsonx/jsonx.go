// Package jsonx holds small encoding/json helpers shared by the model and
// GeoJSON encoders.
package jsonx

import (
	"encoding/json"
	"math"
)

// Float returns f, or nil when f is NaN or infinite. encoding/json refuses
// non-finite numbers, so they are rendered as null instead.
func Float(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// FloatPtr is Float for optional values; nil stays nil.
func FloatPtr(f *float64) any {
	if f == nil {
		return nil
	}
	return Float(*f)
}

// Floats maps Float over fs.
func Floats(fs []float64) []any {
	out := make([]any, len(fs))
	for i, f := range fs {
		out[i] = Float(f)
	}
	return out
}

// MarshalFloats encodes fs as a JSON array with non-finite values as null.
func MarshalFloats(fs []float64) ([]byte, error) {
	if fs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(Floats(fs))
}
