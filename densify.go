package routesmooth

import (
	"github.com/paulmach/orb"
)

// DensifySegments splits every edge of given line into segmentsPerEdge
// linear sub-segments, inserting segmentsPerEdge-1 intermediate points per
// edge. Densification is skipped entirely when it would push the line over
// the output vertex cap. Returns new slice
func DensifySegments(line orb.LineString, segmentsPerEdge int) orb.LineString {
	if len(line) < 2 || segmentsPerEdge < 2 {
		return copyLine(line)
	}
	expected := (len(line)-1)*segmentsPerEdge + 1
	if expected > maxSmoothedPoints {
		return copyLine(line)
	}

	output := make(orb.LineString, 0, expected)
	for i := 1; i < len(line); i++ {
		output = append(output, line[i-1])
		for j := 1; j < segmentsPerEdge; j++ {
			fraction := float64(j) / float64(segmentsPerEdge)
			output = append(output, pointOnSegmentByFraction(line[i-1], line[i], fraction))
		}
	}
	output = append(output, line[len(line)-1])
	return output
}
