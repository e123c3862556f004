package routesmooth

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// SimplifyPath reduces vertex count of given line within a geographic error
// tolerance (meters). The meter tolerance is converted to a degree tolerance
// at avgLat and a Douglas-Peucker reduction runs in that approximated
// coordinate space. Endpoints are always retained; every output point is a
// literal member of the input sequence. Returns new slice
func SimplifyPath(line orb.LineString, toleranceMeters, avgLat float64) orb.LineString {
	if len(line) < 3 || toleranceMeters <= 0 {
		return copyLine(line)
	}
	metersPerDegreeLon, _ := localMetersPerDegree(avgLat)
	if metersPerDegreeLon <= 0 {
		// Degenerate projection at the poles
		return copyLine(line)
	}
	toleranceDegrees := toleranceMeters / metersPerDegreeLon
	return simplify.DouglasPeucker(toleranceDegrees).LineString(copyLine(line))
}
