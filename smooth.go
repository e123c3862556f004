package routesmooth

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// SmoothLineString runs the full smoothing recipe over a single line:
// Clean -> Resample(coarse) -> Simplify -> Resample(light) -> Fillet xN ->
// Densify -> optional Resample(final) -> optional Spline. The input is
// never mutated. The returned flag is true when the spline stage failed and
// the pre-spline geometry was returned instead (degraded but valid output)
func SmoothLineString(line orb.LineString, opts SmoothOptions) (orb.LineString, bool) {
	opts = opts.normalize()

	cleaned := RemoveDuplicatePoints(line)
	if len(cleaned) < 2 {
		return cleaned, false
	}
	avgLat := averageLatitude(cleaned)

	result := ResampleUniform(cleaned, coarseResampleSpacingMeters, avgLat)
	result = SimplifyPath(result, opts.SimplifyToleranceMeters, avgLat)
	result = ResampleUniform(result, lightResampleSpacingMeters, avgLat)
	for pass := 0; pass < filletPassCount; pass++ {
		result = FilletCorners(result, opts.DeflectionThresholdDeg, opts.FilletFraction)
	}

	segments := opts.DensifySegments
	if opts.ResampleSpacingMeters > 0 && segments > densifySegmentsCapBeforeResample {
		segments = densifySegmentsCapBeforeResample
	}
	result = DensifySegments(result, segments)
	if opts.ResampleSpacingMeters > 0 {
		result = ResampleUniform(result, opts.ResampleSpacingMeters, avgLat)
	}

	if !opts.Spline || len(result) < 3 {
		return result, false
	}
	fitted, err := FitSpline(result, splineResolution, splineSharpness)
	if err != nil {
		fmt.Printf("Warning. Spline fit failed: %s. Returning pre-spline geometry\n", err)
		return result, true
	}
	// The fitted curve does not guarantee its first/last sample coincides
	// with the pre-spline endpoints, while marker placement downstream
	// assumes exact origin/destination coordinates. Re-pin them
	fitted[0] = result[0]
	fitted[len(fitted)-1] = result[len(result)-1]
	return fitted, false
}

// SmoothGeometry smooths LineString and MultiLineString geometries. Parts
// of a MultiLineString are smoothed independently; smoothing never spans
// across part boundaries. Any other geometry type is returned as is
func SmoothGeometry(geometry orb.Geometry, opts SmoothOptions) (orb.Geometry, bool) {
	switch g := geometry.(type) {
	case orb.LineString:
		return SmoothLineString(g, opts)
	case orb.MultiLineString:
		smoothed := make(orb.MultiLineString, 0, len(g))
		degraded := false
		for _, part := range g {
			smoothedPart, partDegraded := SmoothLineString(part, opts)
			degraded = degraded || partDegraded
			smoothed = append(smoothed, smoothedPart)
		}
		return smoothed, degraded
	default:
		return geometry, false
	}
}

// SmoothFeature returns a new feature carrying the smoothed geometry and
// the original properties reattached verbatim. Features with non-line
// geometry are returned untouched
func SmoothFeature(feature *geojson.Feature, opts SmoothOptions) (*geojson.Feature, bool) {
	if feature == nil || feature.Geometry == nil {
		return feature, false
	}
	switch feature.Geometry.(type) {
	case orb.LineString, orb.MultiLineString:
	default:
		return feature, false
	}
	geometry, degraded := SmoothGeometry(feature.Geometry, opts)
	smoothed := geojson.NewFeature(geometry)
	smoothed.ID = feature.ID
	smoothed.BBox = feature.BBox
	// Sub-stages work on bare coordinates, so the property map is
	// reattached here explicitly
	if feature.Properties != nil {
		smoothed.Properties = feature.Properties.Clone()
	}
	return smoothed, degraded
}

// SmoothFeatureCollection smooths every line feature of given collection
// independently and reassembles the result into a new collection. The flag
// is true when at least one feature came out degraded
func SmoothFeatureCollection(fc *geojson.FeatureCollection, opts SmoothOptions) (*geojson.FeatureCollection, bool) {
	if fc == nil {
		return nil, false
	}
	smoothed := geojson.NewFeatureCollection()
	smoothed.BBox = fc.BBox
	if fc.ExtraMembers != nil {
		smoothed.ExtraMembers = fc.ExtraMembers.Clone()
	}
	degraded := false
	for _, feature := range fc.Features {
		smoothedFeature, featureDegraded := SmoothFeature(feature, opts)
		degraded = degraded || featureDegraded
		smoothed.Append(smoothedFeature)
	}
	return smoothed, degraded
}
