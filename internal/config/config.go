// Package config holds the run configuration of an interface evolution.
//
// Values come from three layers, lowest priority first:
//  1. Default()
//  2. an optional YAML file (LoadFromPath)
//  3. command-line flags set explicitly by the user
//
// Validate is the single gate between configuration and field allocation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Algorithm names an evolution method.
type Algorithm string

const (
	LevelSet      Algorithm = "levelSet"
	PhaseField    Algorithm = "phaseField"
	LocalLevelSet Algorithm = "localLevelSet"
)

// Format names an artifact representation.
type Format string

const (
	Raster Format = "raster" // PNG image
	Vector Format = "vector" // SVG contour
)

// Shape names a synthetic starting interface.
type Shape string

const (
	Ball   Shape = "ball"
	Flower Shape = "flower"
)

// Run is the complete, immutable description of one evolution run.
type Run struct {
	Algorithm    Algorithm `yaml:"algo" json:"algo"`
	TimeStep     float64   `yaml:"timeStep" json:"time_step"`
	DisplayStep  int       `yaml:"displayStep" json:"display_step"`
	StepsNumber  int       `yaml:"stepsNumber" json:"steps_number"`
	BalloonForce float64   `yaml:"balloonForce" json:"balloon_force"`
	Epsilon      float64   `yaml:"epsilon" json:"epsilon"`
	ConstVolume  bool      `yaml:"withCstVol" json:"with_cst_vol"`

	InputImage string `yaml:"inputImage" json:"input_image,omitempty"`
	DomainSize int    `yaml:"domainSize" json:"domain_size"`
	Shape      Shape  `yaml:"shape" json:"shape"`

	OutputFiles  string `yaml:"outputFiles" json:"output_files"`
	OutputFormat Format `yaml:"outputFormat" json:"output_format"`
	WithFunction string `yaml:"withFunction" json:"with_function,omitempty"`

	Render RenderConfig `yaml:"render" json:"render"`
	Band   BandConfig   `yaml:"band" json:"band"`
	Speed  SpeedConfig  `yaml:"speed" json:"speed"`

	Database string `yaml:"db" json:"db,omitempty"`
	Verbose  bool   `yaml:"verbose" json:"verbose"`
}

// RenderConfig tunes artifact output.
type RenderConfig struct {
	Scale  int     `yaml:"scale" json:"scale"`   // raster pixels per grid point
	Smooth float64 `yaml:"smooth" json:"smooth"` // vector simplification accuracy, 0 = raw polylines
}

// BandConfig tunes the narrow band of the local level set.
type BandConfig struct {
	Width      float64 `yaml:"width" json:"width"`
	NoTopology bool    `yaml:"noTopology" json:"no_topology"`
}

// SpeedConfig perturbs the speed coefficient g with simplex noise.
type SpeedConfig struct {
	Noise float64 `yaml:"noise" json:"noise"` // amplitude, 0 = constant g
	Seed  int64   `yaml:"seed" json:"seed"`
}

// Default returns the defaults of the original demo program.
func Default() Run {
	return Run{
		Algorithm:    LevelSet,
		TimeStep:     0.25,
		DisplayStep:  1,
		StepsNumber:  1,
		BalloonForce: 0,
		Epsilon:      3.0,
		DomainSize:   64,
		Shape:        Ball,
		OutputFiles:  "interface",
		OutputFormat: Raster,
		Render:       RenderConfig{Scale: 4},
		Band:         BandConfig{Width: 3},
		Speed:        SpeedConfig{Seed: 42},
	}
}

// LoadFromPath reads a YAML run file layered on top of Default.
func LoadFromPath(path string) (Run, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores defaults for fields a file left at their zero value
// where zero is never meaningful.
func (r *Run) applyDefaults() {
	def := Default()
	if r.Algorithm == "" {
		r.Algorithm = def.Algorithm
	}
	if r.OutputFormat == "" {
		r.OutputFormat = def.OutputFormat
	}
	if r.OutputFiles == "" {
		r.OutputFiles = def.OutputFiles
	}
	if r.Shape == "" {
		r.Shape = def.Shape
	}
	if r.Render.Scale == 0 {
		r.Render.Scale = def.Render.Scale
	}
	if r.Band.Width == 0 {
		r.Band.Width = def.Band.Width
	}
}

// Threshold returns the iso-value that separates inside from outside for the
// configured algorithm.
func (r Run) Threshold() float64 {
	if r.Algorithm == PhaseField {
		return 0.5
	}
	return 0
}

// ShapeOrBall returns the configured shape, or Ball when the name is not
// recognized. The second result reports whether the fallback was taken.
func (r Run) ShapeOrBall() (Shape, bool) {
	switch r.Shape {
	case Ball, Flower:
		return r.Shape, false
	default:
		return Ball, true
	}
}
