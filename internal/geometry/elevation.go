package geometry

import "math"

// ElevationStats computes gain, loss and the max/min/average elevation.
//
// Gain and loss treat a missing elevation as 0 when differencing adjacent
// points, so partially missing data skews them. Max, min and average only
// consider points with a known elevation. Every figure that comes out as
// zero (or has no data) is reported as nil.
func ElevationStats(points []Point) Elevation {
	var dp, dm float64
	for i := 0; i < len(points)-1; i++ {
		diff := eleOrZero(points[i+1]) - eleOrZero(points[i])
		if diff < 0 {
			dm += diff
		} else if diff > 0 {
			dp += diff
		}
	}

	var elevations []float64
	sum := 0.0
	for _, p := range points {
		if p.Ele != nil {
			elevations = append(elevations, *p.Ele)
			sum += *p.Ele
		}
	}

	stats := Elevation{
		Pos: nonZero(math.Abs(dp)),
		Neg: nonZero(math.Abs(dm)),
	}
	if len(elevations) == 0 {
		return stats
	}

	maxEle, minEle := elevations[0], elevations[0]
	for _, e := range elevations[1:] {
		maxEle = math.Max(maxEle, e)
		minEle = math.Min(minEle, e)
	}

	stats.Max = nonZero(maxEle)
	stats.Min = nonZero(minEle)
	stats.Avg = nonZero(sum / float64(len(elevations)))
	return stats
}

// nonZero maps 0 and NaN to nil.
func nonZero(f float64) *float64 {
	if f == 0 || math.IsNaN(f) {
		return nil
	}
	return &f
}
