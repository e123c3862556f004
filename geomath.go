package routesmooth

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthRadiusMeters = 6370986.884258304
	pi180             = math.Pi / 180.0
	pi180Rev          = 180.0 / math.Pi

	// Equirectangular approximation constants. Valid for short/medium
	// spans; precision degrades for very long paths or near the poles.
	metersPerDegreeLatConst     = 110574.0
	metersPerDegreeLonAtEquator = 111320.0
)

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// radiansToDegrees r = deg * 180 / pi
func radiansToDegrees(d float64) float64 {
	return d * pi180Rev
}

// haversineMeters returns great-circle distance between two geo-points (meters)
func haversineMeters(p, q orb.Point) float64 {
	lat1 := degreesToRadians(p.Lat())
	lon1 := degreesToRadians(p.Lon())
	lat2 := degreesToRadians(q.Lat())
	lon2 := degreesToRadians(q.Lon())
	diffLat := lat2 - lat1
	diffLon := lon2 - lon1
	a := math.Pow(math.Sin(diffLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(diffLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return c * earthRadiusMeters
}

// localMetersPerDegree returns meters per degree of longitude and latitude
// at the given latitude (equirectangular approximation)
func localMetersPerDegree(lat float64) (metersPerDegreeLon, metersPerDegreeLat float64) {
	metersPerDegreeLon = metersPerDegreeLonAtEquator * math.Cos(degreesToRadians(lat))
	metersPerDegreeLat = metersPerDegreeLatConst
	return
}

// averageLatitude returns mean latitude for given line. Used as projection
// anchor for the local-planar stages
func averageLatitude(line orb.LineString) float64 {
	if len(line) == 0 {
		return 0.0
	}
	sum := 0.0
	for i := range line {
		sum += line[i].Lat()
	}
	return sum / float64(len(line))
}

// projectLocal maps a geo-point into local planar meters
func projectLocal(pt orb.Point, metersPerDegreeLon, metersPerDegreeLat float64) orb.Point {
	return orb.Point{pt.Lon() * metersPerDegreeLon, pt.Lat() * metersPerDegreeLat}
}

// pointOnSegmentByFraction returns a point on given segment using known fraction
func pointOnSegmentByFraction(p, q orb.Point, fraction float64) orb.Point {
	return orb.Point{
		(1-fraction)*p.Lon() + (fraction * q.Lon()),
		(1-fraction)*p.Lat() + (fraction * q.Lat()),
	}
}

// deflectionBetweenSegments returns deflection angle (degrees) at vertex p1
// with neighbors p0 and p2: 0 is straight continuation, 180 is full reversal.
// Returns ok=false if either adjacent segment has zero length
func deflectionBetweenSegments(p0, p1, p2 orb.Point) (float64, bool) {
	v1 := orb.Point{p1.Lon() - p0.Lon(), p1.Lat() - p0.Lat()}
	v2 := orb.Point{p2.Lon() - p1.Lon(), p2.Lat() - p1.Lat()}
	len1 := math.Hypot(v1.Lon(), v1.Lat())
	len2 := math.Hypot(v2.Lon(), v2.Lat())
	if len1 == 0 || len2 == 0 {
		return 0.0, false
	}
	cos := (v1.Lon()*v2.Lon() + v1.Lat()*v2.Lat()) / (len1 * len2)
	// Floating error can push the cosine slightly outside of arccos domain
	cos = clampFloat(cos, -1.0, 1.0)
	return radiansToDegrees(math.Acos(cos)), true
}

func clampFloat(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// copyLine copies points of given line. Returns new slice
func copyLine(line orb.LineString) orb.LineString {
	output := make(orb.LineString, len(line))
	copy(output, line)
	return output
}
