package routesmooth

import (
	"github.com/paulmach/orb"
)

// FilletCorners detects sharp turns of given line and cuts each such corner:
// an interior vertex whose deflection angle reaches thresholdDeg is replaced
// by two points placed fraction-way along both adjacent segments, opening
// geometric room for later smoothing while remaining continuous. Vertices
// below the threshold and vertices adjacent to a zero-length segment are
// kept unchanged. First and last points are never modified. Returns new slice
func FilletCorners(line orb.LineString, thresholdDeg, fraction float64) orb.LineString {
	if len(line) < 3 {
		return copyLine(line)
	}
	fraction = clampFloat(fraction, filletFractionMin, filletFractionMax)

	output := make(orb.LineString, 0, len(line))
	output = append(output, line[0])
	for i := 1; i < len(line)-1; i++ {
		p0 := line[i-1]
		p1 := line[i]
		p2 := line[i+1]
		deflection, ok := deflectionBetweenSegments(p0, p1, p2)
		if !ok || deflection < thresholdDeg {
			output = append(output, p1)
			continue
		}
		output = append(output, pointOnSegmentByFraction(p1, p0, fraction))
		output = append(output, pointOnSegmentByFraction(p1, p2, fraction))
	}
	output = append(output, line[len(line)-1])
	return output
}
