package routesmooth

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"honnef.co/go/curve"
)

// FitSpline fits a smooth cubic Bezier curve through the control points of
// given line and samples it at up to resolution points. Sharpness in [0, 1]
// controls how tightly the curve hugs the control polygon: 0 is loose and
// round, 1 collapses onto the polygon itself. Per-knot handles are derived
// from midpoints of adjacent segments weighted by segment length, then each
// span is evaluated as a curve.CubicBez. Returns an error if a numerically
// unstable fit produces non-finite samples; the caller decides the fallback
func FitSpline(line orb.LineString, resolution int, sharpness float64) (orb.LineString, error) {
	if len(line) < 3 {
		return copyLine(line), nil
	}
	if resolution < len(line) {
		resolution = len(line)
	}
	loose := 1.0 - clampFloat(sharpness, 0.0, 1.0)

	n := len(line)
	knots := make([]curve.Point, n)
	for i := range line {
		knots[i] = curve.Pt(line[i].Lon(), line[i].Lat())
	}

	// handleIn[i] shapes the curve arriving at knot i, handleOut[i] the
	// curve leaving it. Endpoint knots act as their own handles
	handleIn := make([]curve.Point, n)
	handleOut := make([]curve.Point, n)
	handleIn[0], handleOut[0] = knots[0], knots[0]
	handleIn[n-1], handleOut[n-1] = knots[n-1], knots[n-1]
	for i := 1; i < n-1; i++ {
		prev, knot, next := knots[i-1], knots[i], knots[i+1]
		lenIn := prev.Distance(knot)
		lenOut := knot.Distance(next)
		if lenIn+lenOut == 0 {
			handleIn[i], handleOut[i] = knot, knot
			continue
		}
		midIn := prev.Midpoint(knot)
		midOut := knot.Midpoint(next)
		anchor := midIn.Lerp(midOut, lenIn/(lenIn+lenOut))
		shift := knot.Sub(anchor)
		handleIn[i] = knot.Lerp(midIn.Translate(shift), loose)
		handleOut[i] = knot.Lerp(midOut.Translate(shift), loose)
	}

	samplesPerSpan := (resolution - 1) / (n - 1)
	if samplesPerSpan < 1 {
		samplesPerSpan = 1
	}

	output := make(orb.LineString, 0, (n-1)*samplesPerSpan+1)
	for i := 0; i < n-1; i++ {
		span := curve.CubicBez{P0: knots[i], P1: handleOut[i], P2: handleIn[i+1], P3: knots[i+1]}
		for j := 0; j < samplesPerSpan; j++ {
			sample := span.Eval(float64(j) / float64(samplesPerSpan))
			if sample.IsNaN() || sample.IsInf() {
				return nil, errors.Errorf("non-finite spline sample in span %d", i)
			}
			output = append(output, orb.Point{sample.X, sample.Y})
		}
	}
	tail := knots[n-1]
	output = append(output, orb.Point{tail.X, tail.Y})
	return output, nil
}
