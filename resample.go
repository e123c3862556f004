package routesmooth

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ResampleUniform redistributes points of given line at fixed arc-length
// spacing (meters). The line is projected into local planar meters around
// avgLat, walked with a monotonic two-pointer scan over the cumulative
// arc-length array and linearly interpolated between bracketing source
// vertices. Output has exactly steps+1 points where
// steps = max(1, round(totalLength/spacing)); the first output point equals
// the input first point and the last one is forced to equal the input last
// coordinate exactly. Degenerate input (fewer than 2 points, non-positive
// spacing or zero total length) is returned as a copy unchanged
func ResampleUniform(line orb.LineString, spacingMeters, avgLat float64) orb.LineString {
	if len(line) < 2 || spacingMeters <= 0 {
		return copyLine(line)
	}

	metersPerDegreeLon, metersPerDegreeLat := localMetersPerDegree(avgLat)

	cumulative := make([]float64, len(line))
	prev := projectLocal(line[0], metersPerDegreeLon, metersPerDegreeLat)
	for i := 1; i < len(line); i++ {
		current := projectLocal(line[i], metersPerDegreeLon, metersPerDegreeLat)
		cumulative[i] = cumulative[i-1] + planar.Distance(prev, current)
		prev = current
	}
	totalLength := cumulative[len(cumulative)-1]
	if totalLength <= 0 {
		return copyLine(line)
	}

	steps := int(math.Round(totalLength / spacingMeters))
	if steps < 1 {
		steps = 1
	}
	if steps+1 > maxSmoothedPoints {
		steps = maxSmoothedPoints - 1
	}

	output := make(orb.LineString, 0, steps+1)
	output = append(output, line[0])
	segment := 0
	for i := 1; i < steps; i++ {
		target := totalLength * float64(i) / float64(steps)
		for segment < len(line)-2 && cumulative[segment+1] < target {
			segment++
		}
		segmentLength := cumulative[segment+1] - cumulative[segment]
		fraction := 0.0
		if segmentLength > 0 {
			fraction = (target - cumulative[segment]) / segmentLength
		}
		output = append(output, pointOnSegmentByFraction(line[segment], line[segment+1], fraction))
	}
	// Pin the tail to the source coordinate, overriding floating-point drift
	output = append(output, line[len(line)-1])
	return output
}
