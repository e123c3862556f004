package routesmooth

const (
	defaultSimplifyToleranceMeters = 2.0
	defaultDeflectionThresholdDeg  = 25.0
	defaultFilletFraction          = 0.2
	defaultDensifySegments         = 3

	filletFractionMin = 0.05
	filletFractionMax = 0.45

	// Spacing for the two fixed resampling passes of the recipe
	coarseResampleSpacingMeters = 20.0
	lightResampleSpacingMeters  = 25.0

	// filletPassCount is how many times the corner filleter runs in
	// sequence. Two passes open enough room at very sharp hairpins; the
	// value is empirical, not a mathematical requirement.
	filletPassCount = 2

	// When a final resample will redistribute points anyway there is no
	// reason to densify aggressively beforehand
	densifySegmentsCapBeforeResample = 2

	splineResolution = 1000
	splineSharpness  = 0.85

	// maxSmoothedPoints caps output vertex count of the generating stages
	// to guard against pathological input geometry
	maxSmoothedPoints = 10000
)

// SmoothOptions controls the smoothing recipe for a single invocation.
// Zero/out-of-range fields are replaced by defaults, so the zero value is
// usable, but DefaultSmoothOptions is the intended starting point.
type SmoothOptions struct {
	// SimplifyToleranceMeters is the maximum perpendicular deviation
	// permitted when a vertex is removed from a path
	SimplifyToleranceMeters float64
	// DeflectionThresholdDeg is the deflection angle (degrees) at which a
	// vertex counts as a sharp corner and gets filleted
	DeflectionThresholdDeg float64
	// FilletFraction is how far along each adjacent segment the two
	// replacement points are placed. Effective range is [0.05, 0.45]
	FilletFraction float64
	// DensifySegments is the number of sub-segments each edge is split
	// into before spline fitting
	DensifySegments int
	// Spline disables the final spline fit when false
	Spline bool
	// ResampleSpacingMeters triggers a final uniform resample at the given
	// spacing when positive. Zero skips the final resample
	ResampleSpacingMeters float64
}

// DefaultSmoothOptions returns the recipe defaults
func DefaultSmoothOptions() SmoothOptions {
	return SmoothOptions{
		SimplifyToleranceMeters: defaultSimplifyToleranceMeters,
		DeflectionThresholdDeg:  defaultDeflectionThresholdDeg,
		FilletFraction:          defaultFilletFraction,
		DensifySegments:         defaultDensifySegments,
		Spline:                  true,
		ResampleSpacingMeters:   0.0,
	}
}

// normalize clamps or defaults invalid values so no stage can divide by
// zero or loop indefinitely
func (opts SmoothOptions) normalize() SmoothOptions {
	if opts.SimplifyToleranceMeters <= 0 {
		opts.SimplifyToleranceMeters = defaultSimplifyToleranceMeters
	}
	if opts.DeflectionThresholdDeg <= 0 || opts.DeflectionThresholdDeg > 180 {
		opts.DeflectionThresholdDeg = defaultDeflectionThresholdDeg
	}
	if opts.FilletFraction <= 0 {
		opts.FilletFraction = defaultFilletFraction
	}
	opts.FilletFraction = clampFloat(opts.FilletFraction, filletFractionMin, filletFractionMax)
	if opts.DensifySegments <= 0 {
		opts.DensifySegments = defaultDensifySegments
	}
	if opts.ResampleSpacingMeters < 0 {
		opts.ResampleSpacingMeters = 0.0
	}
	return opts
}
