package routesmooth

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
)

func TestSmoothLineStringRoute(t *testing.T) {
	lineWKT := "LINESTRING (37.56319128200903 55.78357465483572, 37.565235359279626 55.78497472894253, 37.565822487858156 55.785421030200496, 37.567355545810614 55.784711836767826)"
	line, err := wkt.UnmarshalLineString(lineWKT)
	if err != nil {
		t.Error(err)
		return
	}
	smoothed, degraded := SmoothLineString(line, DefaultSmoothOptions())
	if degraded {
		t.Errorf("Smoothing a well-formed route must not degrade")
	}
	if len(smoothed) < len(line) {
		t.Errorf("Smoothed route must be denser than the raw 4-point route, but got %d points", len(smoothed))
	}
	if smoothed[0] != line[0] {
		t.Errorf("First point must be %v, but got %v", line[0], smoothed[0])
	}
	if smoothed[len(smoothed)-1] != line[len(line)-1] {
		t.Errorf("Last point must be %v, but got %v", line[len(line)-1], smoothed[len(smoothed)-1])
	}
	for i, pt := range smoothed {
		if math.IsNaN(pt[0]) || math.IsNaN(pt[1]) {
			t.Errorf("Point %d must be finite, but got %v", i, pt)
		}
	}
	// Input must not be mutated
	if line[0] != (orb.Point{37.56319128200903, 55.78357465483572}) {
		t.Errorf("Input line must not be mutated")
	}
}

func TestSmoothLineStringEndpointsWithoutSpline(t *testing.T) {
	line := orb.LineString{
		{37.56319128200903, 55.78357465483572},
		{37.565235359279626, 55.78497472894253},
		{37.567355545810614, 55.784711836767826},
	}
	opts := DefaultSmoothOptions()
	opts.Spline = false
	opts.ResampleSpacingMeters = 10.0
	smoothed, degraded := SmoothLineString(line, opts)
	if degraded {
		t.Errorf("Pipeline without spline must not degrade")
	}
	if smoothed[0] != line[0] || smoothed[len(smoothed)-1] != line[len(line)-1] {
		t.Errorf("Endpoints must be preserved exactly")
	}
}

func TestSmoothLineStringZeroOptions(t *testing.T) {
	// The zero value of SmoothOptions must be clamped to sane defaults
	line := orb.LineString{
		{37.56319128200903, 55.78357465483572},
		{37.565235359279626, 55.78497472894253},
		{37.567355545810614, 55.784711836767826},
	}
	smoothed, degraded := SmoothLineString(line, SmoothOptions{})
	if degraded {
		t.Errorf("Zero options must not degrade the pipeline")
	}
	if len(smoothed) < 2 {
		t.Errorf("Smoothed route must keep at least its endpoints, but got %d points", len(smoothed))
	}
}

func TestSmoothLineStringDegenerate(t *testing.T) {
	empty, degraded := SmoothLineString(orb.LineString{}, DefaultSmoothOptions())
	if len(empty) != 0 || degraded {
		t.Errorf("Empty line must pass through unchanged")
	}
	single := orb.LineString{{37.61, 55.75}}
	smoothed, degraded := SmoothLineString(single, DefaultSmoothOptions())
	if degraded {
		t.Errorf("Single-point line must not degrade")
	}
	if len(smoothed) != 1 || smoothed[0] != single[0] {
		t.Errorf("Single-point line must pass through unchanged, but got %v", smoothed)
	}
	// Two identical points collapse to one after cleaning
	collapsed, _ := SmoothLineString(orb.LineString{{37.61, 55.75}, {37.61, 55.75}}, DefaultSmoothOptions())
	if len(collapsed) != 1 {
		t.Errorf("Zero-length line must collapse to a single point, but got %d points", len(collapsed))
	}
}

func TestSmoothLineStringSplineFailureDegrades(t *testing.T) {
	line := orb.LineString{
		{math.NaN(), 0.0},
		{0.001, 0.0},
		{0.002, 0.0},
	}
	smoothed, degraded := SmoothLineString(line, DefaultSmoothOptions())
	if !degraded {
		t.Errorf("Non-finite coordinates must surface as a degraded result, not as a panic or silent NaN curve")
	}
	if len(smoothed) < 2 {
		t.Errorf("Degraded result must still carry the pre-spline geometry")
	}
}

func TestSmoothMultiLineString(t *testing.T) {
	mls := orb.MultiLineString{
		{
			{37.563, 55.783},
			{37.565, 55.784},
			{37.567, 55.785},
		},
		{
			{37.570, 55.786},
			{37.572, 55.787},
		},
	}
	geometry, degraded := SmoothGeometry(mls, DefaultSmoothOptions())
	if degraded {
		t.Errorf("Smoothing must not degrade")
	}
	smoothed, ok := geometry.(orb.MultiLineString)
	if !ok {
		t.Errorf("MultiLineString must stay a MultiLineString, but got %T", geometry)
		return
	}
	if len(smoothed) != 2 {
		t.Errorf("Part count must be preserved, but got %d", len(smoothed))
	}
	for i, part := range smoothed {
		if part[0] != mls[i][0] || part[len(part)-1] != mls[i][len(mls[i])-1] {
			t.Errorf("Part %d endpoints must be preserved", i)
		}
	}
}

func TestSmoothGeometryPassThrough(t *testing.T) {
	pt := orb.Point{37.61, 55.75}
	geometry, degraded := SmoothGeometry(pt, DefaultSmoothOptions())
	if degraded {
		t.Errorf("Point geometry must not degrade")
	}
	if geometry != pt {
		t.Errorf("Point geometry must pass through unchanged")
	}
}

func TestSmoothFeaturePreservesProperties(t *testing.T) {
	feature := geojson.NewFeature(orb.LineString{
		{37.563, 55.783},
		{37.565, 55.784},
		{37.567, 55.785},
	})
	feature.ID = "route-42"
	feature.Properties["name"] = "office to station"
	feature.Properties["color"] = "#ff6600"
	feature.Properties["duration"] = 420.0

	smoothed, degraded := SmoothFeature(feature, DefaultSmoothOptions())
	if degraded {
		t.Errorf("Smoothing must not degrade")
	}
	if smoothed == feature {
		t.Errorf("Smoothing must produce a new feature")
	}
	if smoothed.ID != "route-42" {
		t.Errorf("Feature ID must be preserved, but got %v", smoothed.ID)
	}
	if len(smoothed.Properties) != 3 {
		t.Errorf("All 3 properties must be preserved, but got %d", len(smoothed.Properties))
	}
	if smoothed.Properties["name"] != "office to station" || smoothed.Properties["color"] != "#ff6600" || smoothed.Properties["duration"] != 420.0 {
		t.Errorf("Properties must be passed through unmodified, but got %v", smoothed.Properties)
	}
}

func TestSmoothFeatureCollectionMixedGeometries(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	lineFeature := geojson.NewFeature(orb.LineString{
		{37.563, 55.783},
		{37.565, 55.784},
		{37.567, 55.785},
	})
	lineFeature.Properties["kind"] = "route"
	pointFeature := geojson.NewFeature(orb.Point{37.61, 55.75})
	pointFeature.Properties["kind"] = "marker"
	fc.Append(lineFeature)
	fc.Append(pointFeature)

	smoothed, degraded := SmoothFeatureCollection(fc, DefaultSmoothOptions())
	if degraded {
		t.Errorf("Smoothing must not degrade")
	}
	if len(smoothed.Features) != 2 {
		t.Errorf("Feature count must be preserved, but got %d", len(smoothed.Features))
	}
	if smoothed.Features[1] != pointFeature {
		t.Errorf("Non-line features must pass through untouched")
	}
	smoothedLine, ok := smoothed.Features[0].Geometry.(orb.LineString)
	if !ok {
		t.Errorf("Line feature must keep LineString geometry, but got %T", smoothed.Features[0].Geometry)
		return
	}
	if len(smoothedLine) < 3 {
		t.Errorf("Line feature must be smoothed, but got %d points", len(smoothedLine))
	}
	if smoothed.Features[0].Properties["kind"] != "route" {
		t.Errorf("Line feature properties must be preserved")
	}
	// Original collection must stay intact
	originalLine := fc.Features[0].Geometry.(orb.LineString)
	if len(originalLine) != 3 {
		t.Errorf("Input collection must not be mutated")
	}
}

func TestSmoothFeatureCollectionExtraMembers(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.LineString{
		{37.563, 55.783},
		{37.565, 55.784},
		{37.567, 55.785},
	}))
	fc.ExtraMembers = geojson.Properties{
		"generator": "routing-engine",
		"timestamp": "2024-05-01T00:00:00Z",
	}

	smoothed, _ := SmoothFeatureCollection(fc, DefaultSmoothOptions())
	if len(smoothed.ExtraMembers) != 2 {
		t.Errorf("Foreign members must be carried over, but got %d of them", len(smoothed.ExtraMembers))
	}
	if smoothed.ExtraMembers["generator"] != "routing-engine" {
		t.Errorf("Foreign member 'generator' must be 'routing-engine', but got '%v'", smoothed.ExtraMembers["generator"])
	}
	if smoothed.ExtraMembers["timestamp"] != "2024-05-01T00:00:00Z" {
		t.Errorf("Foreign member 'timestamp' must be '2024-05-01T00:00:00Z', but got '%v'", smoothed.ExtraMembers["timestamp"])
	}
	// Mutating the copy must not leak back into the input
	smoothed.ExtraMembers["generator"] = "changed"
	if fc.ExtraMembers["generator"] != "routing-engine" {
		t.Errorf("Input collection foreign members must not be mutated")
	}
}

func TestSmoothFeatureNilSafety(t *testing.T) {
	if feature, degraded := SmoothFeature(nil, DefaultSmoothOptions()); feature != nil || degraded {
		t.Errorf("Nil feature must pass through")
	}
	if fc, degraded := SmoothFeatureCollection(nil, DefaultSmoothOptions()); fc != nil || degraded {
		t.Errorf("Nil collection must pass through")
	}
}
