package main

import (
	"flag"

	"github.com/talgya/deformations/internal/config"
)

// registerFlags binds every option to fl, with the short aliases of the
// original program. It returns the -config path.
func registerFlags(fs *flag.FlagSet, fl *config.Run) *string {
	str := func(p *string, usage string, names ...string) {
		for _, n := range names {
			fs.StringVar(p, n, *p, usage)
		}
	}
	algo := (*string)(&fl.Algorithm)
	shape := (*string)(&fl.Shape)
	format := (*string)(&fl.OutputFormat)

	str(&fl.InputImage, "input binary image (pgm, pbm, ppm, png, tiff, bmp) to deform", "i", "inputImage")
	fs.IntVar(&fl.DomainSize, "d", fl.DomainSize, "domain size when no image is given")
	fs.IntVar(&fl.DomainSize, "domainSize", fl.DomainSize, "domain size when no image is given")
	str(shape, "starting shape: ball or flower", "s", "shape")
	fs.Float64Var(&fl.TimeStep, "t", fl.TimeStep, "time step")
	fs.Float64Var(&fl.TimeStep, "timeStep", fl.TimeStep, "time step")
	fs.IntVar(&fl.DisplayStep, "displayStep", fl.DisplayStep, "iterations between two artifacts")
	fs.IntVar(&fl.StepsNumber, "n", fl.StepsNumber, "number of iterations")
	fs.IntVar(&fl.StepsNumber, "stepsNumber", fl.StepsNumber, "number of iterations")
	str(algo, "algorithm: levelSet, phaseField or localLevelSet", "a", "algo")
	fs.Float64Var(&fl.BalloonForce, "k", fl.BalloonForce, "balloon force (levelSet)")
	fs.Float64Var(&fl.BalloonForce, "balloonForce", fl.BalloonForce, "balloon force (levelSet)")
	fs.Float64Var(&fl.Epsilon, "e", fl.Epsilon, "interface width (phaseField)")
	fs.Float64Var(&fl.Epsilon, "epsilon", fl.Epsilon, "interface width (phaseField)")
	fs.BoolVar(&fl.ConstVolume, "withCstVol", fl.ConstVolume, "keep the phase-field volume constant")
	str(&fl.WithFunction, "dump the starting implicit function to <basename>.pgm", "withFunction")
	str(&fl.OutputFiles, "artifact basename", "o", "outputFiles")
	str(format, "artifact format: raster or vector", "f", "outputFormat")

	fs.IntVar(&fl.Render.Scale, "scale", fl.Render.Scale, "raster pixels per grid point")
	fs.Float64Var(&fl.Render.Smooth, "smooth", fl.Render.Smooth, "vector contour simplification accuracy, 0 = off")
	fs.Float64Var(&fl.Band.Width, "bandWidth", fl.Band.Width, "narrow band width (localLevelSet)")
	fs.BoolVar(&fl.Band.NoTopology, "noTopology", fl.Band.NoTopology, "disable topology control (localLevelSet)")
	fs.Float64Var(&fl.Speed.Noise, "noise", fl.Speed.Noise, "speed noise amplitude in [0, 1)")
	fs.Int64Var(&fl.Speed.Seed, "seed", fl.Speed.Seed, "speed noise seed")
	str(&fl.Database, "sqlite run ledger path", "db")
	fs.BoolVar(&fl.Verbose, "v", fl.Verbose, "debug logging")

	return fs.String("config", "", "YAML run file, overridden by explicit flags")
}

// overrides copies one explicitly set flag from the flag values onto the
// layered configuration.
var overrides = map[string]func(dst, src *config.Run){
	"i":            func(d, s *config.Run) { d.InputImage = s.InputImage },
	"inputImage":   func(d, s *config.Run) { d.InputImage = s.InputImage },
	"d":            func(d, s *config.Run) { d.DomainSize = s.DomainSize },
	"domainSize":   func(d, s *config.Run) { d.DomainSize = s.DomainSize },
	"s":            func(d, s *config.Run) { d.Shape = s.Shape },
	"shape":        func(d, s *config.Run) { d.Shape = s.Shape },
	"t":            func(d, s *config.Run) { d.TimeStep = s.TimeStep },
	"timeStep":     func(d, s *config.Run) { d.TimeStep = s.TimeStep },
	"displayStep":  func(d, s *config.Run) { d.DisplayStep = s.DisplayStep },
	"n":            func(d, s *config.Run) { d.StepsNumber = s.StepsNumber },
	"stepsNumber":  func(d, s *config.Run) { d.StepsNumber = s.StepsNumber },
	"a":            func(d, s *config.Run) { d.Algorithm = s.Algorithm },
	"algo":         func(d, s *config.Run) { d.Algorithm = s.Algorithm },
	"k":            func(d, s *config.Run) { d.BalloonForce = s.BalloonForce },
	"balloonForce": func(d, s *config.Run) { d.BalloonForce = s.BalloonForce },
	"e":            func(d, s *config.Run) { d.Epsilon = s.Epsilon },
	"epsilon":      func(d, s *config.Run) { d.Epsilon = s.Epsilon },
	"withCstVol":   func(d, s *config.Run) { d.ConstVolume = s.ConstVolume },
	"withFunction": func(d, s *config.Run) { d.WithFunction = s.WithFunction },
	"o":            func(d, s *config.Run) { d.OutputFiles = s.OutputFiles },
	"outputFiles":  func(d, s *config.Run) { d.OutputFiles = s.OutputFiles },
	"f":            func(d, s *config.Run) { d.OutputFormat = s.OutputFormat },
	"outputFormat": func(d, s *config.Run) { d.OutputFormat = s.OutputFormat },
	"scale":        func(d, s *config.Run) { d.Render.Scale = s.Render.Scale },
	"smooth":       func(d, s *config.Run) { d.Render.Smooth = s.Render.Smooth },
	"bandWidth":    func(d, s *config.Run) { d.Band.Width = s.Band.Width },
	"noTopology":   func(d, s *config.Run) { d.Band.NoTopology = s.Band.NoTopology },
	"noise":        func(d, s *config.Run) { d.Speed.Noise = s.Speed.Noise },
	"seed":         func(d, s *config.Run) { d.Speed.Seed = s.Speed.Seed },
	"db":           func(d, s *config.Run) { d.Database = s.Database },
	"v":            func(d, s *config.Run) { d.Verbose = s.Verbose },
}
