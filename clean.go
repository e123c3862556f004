package routesmooth

import (
	"github.com/paulmach/orb"
)

// RemoveDuplicatePoints removes consecutive exact-duplicate coordinates
// from given line. Distinct interior points are never reordered or removed.
// Output contains no two adjacent identical coordinates. Idempotent.
// Returns new slice
func RemoveDuplicatePoints(line orb.LineString) orb.LineString {
	if len(line) < 2 {
		return copyLine(line)
	}
	output := make(orb.LineString, 0, len(line))
	output = append(output, line[0])
	for i := 1; i < len(line); i++ {
		if line[i] == output[len(output)-1] {
			continue
		}
		output = append(output, line[i])
	}
	return output
}
