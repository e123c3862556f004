package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/routesmooth/routesmooth"
)

var (
	inFileName = flag.String("file", "routes.geojson", "Filename of input GeoJSON file (Feature or FeatureCollection with LineString/MultiLineString geometries)")
	out        = flag.String("out", "routes_smoothed.geojson", "Filename of output file")
	geomFormat = flag.String("geomf", "geojson", "Format of output geometry. Expected values: wkt / geojson")
	tolerance  = flag.Float64("tolerance", 2.0, "Simplification tolerance (meters)")
	deflection = flag.Float64("deflection", 25.0, "Deflection threshold (degrees) at which a corner gets filleted")
	fillet     = flag.Float64("fillet", 0.2, "Fillet fraction. Clamped to [0.05, 0.45]")
	densify    = flag.Int("densify", 3, "Sub-segments per edge before spline fitting")
	spacing    = flag.Float64("spacing", 0.0, "Final resample spacing (meters). 0 means no final resample")
	spline     = flag.Bool("spline", true, "Fit a spline through the processed points")
	statsOut   = flag.String("stats", "", "Filename of 'Comma-Separated Values' (CSV) formatted file with per-route statistics. Empty value disables the export")
	verbose    = flag.Bool("verbose", false, "Print timing and route length information")
)

func main() {

	flag.Parse()

	opts := routesmooth.DefaultSmoothOptions()
	opts.SimplifyToleranceMeters = *tolerance
	opts.DeflectionThresholdDeg = *deflection
	opts.FilletFraction = *fillet
	opts.DensifySegments = *densify
	opts.ResampleSpacingMeters = *spacing
	opts.Spline = *spline

	data, err := os.ReadFile(*inFileName)
	if err != nil {
		fmt.Println(errors.Wrap(err, "Can't read input file"))
		return
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		// A single bare Feature is fine as input too
		feature, errFeature := geojson.UnmarshalFeature(data)
		if errFeature != nil {
			fmt.Println(errors.Wrap(err, "Can't parse input as GeoJSON"))
			return
		}
		fc = geojson.NewFeatureCollection()
		fc.Append(feature)
	}

	st := time.Now()
	smoothed, degraded := routesmooth.SmoothFeatureCollection(fc, opts)
	if degraded {
		fmt.Println("Warning. Some routes could not be spline-fitted and kept their pre-spline geometry")
	}
	if *verbose {
		fmt.Printf("Smoothed %d features in %v\n", len(smoothed.Features), time.Since(st))
		for i, feature := range smoothed.Features {
			if line, ok := feature.Geometry.(orb.LineString); ok {
				fmt.Printf("\tRoute #%d: %d points, %.2f meters\n", i, len(line), geo.LengthHaversign(line))
			}
		}
	}

	switch strings.ToLower(*geomFormat) {
	case "wkt":
		lines := make([]string, 0, len(smoothed.Features))
		for _, feature := range smoothed.Features {
			switch g := feature.Geometry.(type) {
			case orb.LineString:
				lines = append(lines, routesmooth.PrepareWKTLinestring(g))
			case orb.MultiLineString:
				for _, part := range g {
					lines = append(lines, routesmooth.PrepareWKTLinestring(part))
				}
			case orb.Point:
				lines = append(lines, routesmooth.PrepareWKTPoint(g))
			}
		}
		err = os.WriteFile(*out, []byte(strings.Join(lines, "\n")+"\n"), 0644)
		if err != nil {
			fmt.Println(errors.Wrap(err, "Can't write output file"))
			return
		}
	case "geojson":
		b, err := smoothed.MarshalJSON()
		if err != nil {
			fmt.Println(errors.Wrap(err, "Can't marshal smoothed collection"))
			return
		}
		err = os.WriteFile(*out, b, 0644)
		if err != nil {
			fmt.Println(errors.Wrap(err, "Can't write output file"))
			return
		}
	default:
		fmt.Printf("Unknown geometry format '%s'. Expected values: wkt / geojson\n", *geomFormat)
		return
	}

	if *statsOut != "" {
		fileStats, err := os.Create(*statsOut)
		if err != nil {
			fmt.Println(errors.Wrap(err, "Can't create statistics file"))
			return
		}
		defer fileStats.Close()
		writerStats := csv.NewWriter(fileStats)
		defer writerStats.Flush()
		writerStats.Comma = ';'
		// 		route_id - int, position of the route in the output collection
		// 		num_points - int, number of points in smoothed route
		// 		length_meters - float64, haversine length of smoothed route
		//      geom - geometry (WKT or GeoJSON representation)
		err = writerStats.Write([]string{"route_id", "num_points", "length_meters", "geom"})
		if err != nil {
			fmt.Println(err)
			return
		}
		routeID := 0
		for _, feature := range smoothed.Features {
			var parts []orb.LineString
			switch g := feature.Geometry.(type) {
			case orb.LineString:
				parts = append(parts, g)
			case orb.MultiLineString:
				parts = append(parts, g...)
			case orb.Point:
				geomStr := ""
				if strings.ToLower(*geomFormat) == "geojson" {
					geomStr = routesmooth.PrepareGeoJSONPoint(g)
				} else {
					geomStr = routesmooth.PrepareWKTPoint(g)
				}
				err = writerStats.Write([]string{
					fmt.Sprintf("%d", routeID),
					"1",
					"0.000000",
					geomStr,
				})
				if err != nil {
					fmt.Println(err)
					return
				}
				routeID++
				continue
			}
			for _, line := range parts {
				geomStr := ""
				if strings.ToLower(*geomFormat) == "geojson" {
					geomStr = routesmooth.PrepareGeoJSONLinestring(line)
				} else {
					geomStr = routesmooth.PrepareWKTLinestring(line)
				}
				err = writerStats.Write([]string{
					fmt.Sprintf("%d", routeID),
					fmt.Sprintf("%d", len(line)),
					fmt.Sprintf("%f", geo.LengthHaversign(line)),
					geomStr,
				})
				if err != nil {
					fmt.Println(err)
					return
				}
				routeID++
			}
		}
	}
}
