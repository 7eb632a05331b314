// Package geometry derives distance, elevation and slope figures from an
// ordered sequence of GPS points.
package geometry

import "math"

// EarthRadius is the mean Earth radius in meters used by Haversine.
const EarthRadius = 6371000

// Haversine returns the great-circle distance in meters between two points
// given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLatRad := (lat2 - lat1) * math.Pi / 180
	deltaLonRad := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLatRad/2)*math.Sin(deltaLatRad/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLonRad/2)*math.Sin(deltaLonRad/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}

// Between returns the haversine distance between two points.
func Between(p1, p2 Point) float64 {
	return Haversine(p1.Lat, p1.Lon, p2.Lat, p2.Lon)
}

// RouteDistance accumulates segment lengths along points.
//
// Cumul[i] is the running total after segment i→i+1, and the last entry
// repeats Total since no segment follows the last point. A single point
// yields Cumul == [0]; no points yields an empty Cumul.
func RouteDistance(points []Point) Distance {
	if len(points) == 0 {
		return Distance{Cumul: []float64{}}
	}

	cumul := make([]float64, len(points))
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += Between(points[i], points[i+1])
		cumul[i] = total
	}
	cumul[len(points)-1] = total

	return Distance{Total: total, Cumul: cumul}
}

// CalcSlopes returns the grade in percent for each adjacent pair:
// (ele[i+1]-ele[i])*100 / (cumul[i+1]-cumul[i]). Unknown elevations count
// as 0 and a zero denominator is not guarded.
func CalcSlopes(points []Point, cumul []float64) Slopes {
	if len(points) < 2 {
		return Slopes{}
	}

	slopes := make(Slopes, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		elevationDiff := eleOrZero(points[i+1]) - eleOrZero(points[i])
		displacement := cumul[i+1] - cumul[i]
		slopes = append(slopes, elevationDiff*100/displacement)
	}
	return slopes
}

func eleOrZero(p Point) float64 {
	if p.Ele == nil {
		return 0
	}
	return *p.Ele
}
