package config

// Validate checks the run configuration. The first problem found is returned
// as an *Error wrapping ErrConfiguration.
//
// Order follows the original program: the output format is checked before
// anything else, so a bad format aborts before any image reading.
func (r Run) Validate() error {
	if r.OutputFormat != Raster && r.OutputFormat != Vector {
		return invalid("outputFormat", "format is expected to be either vector, or raster, got %q", r.OutputFormat)
	}
	switch r.Algorithm {
	case LevelSet, PhaseField, LocalLevelSet:
	default:
		return invalid("algo", "unknown algo %q, expected levelSet, phaseField or localLevelSet", r.Algorithm)
	}
	if r.TimeStep <= 0 {
		return invalid("timeStep", "must be positive, got %g", r.TimeStep)
	}
	if r.DisplayStep < 1 {
		return invalid("displayStep", "must be at least 1, got %d", r.DisplayStep)
	}
	if r.StepsNumber < 1 {
		return invalid("stepsNumber", "must be at least 1, got %d", r.StepsNumber)
	}
	if r.Algorithm == PhaseField && r.Epsilon <= 0 {
		return invalid("epsilon", "epsilon should be greater than 0, got %g", r.Epsilon)
	}
	if r.InputImage == "" && r.DomainSize < 1 {
		return invalid("domainSize", "must be at least 1, got %d", r.DomainSize)
	}
	if r.OutputFiles == "" {
		return invalid("outputFiles", "basename must not be empty")
	}
	if r.Render.Scale < 1 {
		return invalid("render.scale", "must be at least 1, got %d", r.Render.Scale)
	}
	if r.Render.Smooth < 0 {
		return invalid("render.smooth", "must not be negative, got %g", r.Render.Smooth)
	}
	if r.Algorithm == LocalLevelSet && r.Band.Width < 2 {
		return invalid("band.width", "must be at least 2, got %g", r.Band.Width)
	}
	if r.Speed.Noise < 0 || r.Speed.Noise >= 1 {
		return invalid("speed.noise", "amplitude must be in [0, 1), got %g", r.Speed.Noise)
	}
	return nil
}
