package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/deformations/internal/config"
	"github.com/talgya/deformations/internal/distance"
	"github.com/talgya/deformations/internal/evolve"
	"github.com/talgya/deformations/internal/grid"
	"github.com/talgya/deformations/internal/imageio"
	"github.com/talgya/deformations/internal/render"
	"github.com/talgya/deformations/internal/shape"
)

// BuildLabels returns the starting partition: the imported image when one
// is configured, otherwise the synthetic shape on (0,0)..(size,size).
func BuildLabels(cfg config.Run) (*grid.Labels, error) {
	if cfg.InputImage != "" {
		slog.Info("image reading", "path", cfg.InputImage)
		labels, err := imageio.LoadLabels(cfg.InputImage)
		if err != nil {
			return nil, fmt.Errorf("load image: %w", err)
		}
		return labels, nil
	}

	d, err := grid.SquareDomain(cfg.DomainSize)
	if err != nil {
		return nil, fmt.Errorf("build domain: %w", err)
	}
	name, fellBack := cfg.ShapeOrBall()
	if fellBack {
		slog.Warn("unknown shape, using ball", "shape", cfg.Shape)
	}

	var pred shape.Predicate
	switch name {
	case config.Flower:
		pred = shape.DefaultFlower(cfg.DomainSize)
	default:
		pred = shape.DefaultBall(cfg.DomainSize)
	}
	labels := grid.NewLabels(d)
	n := shape.Rasterize(labels, pred)
	slog.Debug("shape rasterized", "shape", name, "domain", d, "points", n)
	return labels, nil
}

// BuildField turns the starting partition into the implicit function the
// configured algorithm evolves: a signed distance, mapped through the phase
// profile for the phase field.
func BuildField(cfg config.Run, labels *grid.Labels) *grid.Field {
	f := distance.SignedDistance(labels)
	if cfg.Algorithm == config.PhaseField {
		evolve.Profile{Epsilon: cfg.Epsilon}.Apply(f)
	}
	return f
}

// NewEvolver builds the configured evolver over domain d.
func NewEvolver(cfg config.Run, d grid.Domain) (evolve.Evolver, error) {
	ones := grid.NewField(d)
	ones.Fill(1)

	var pred evolve.TopologicalPredicate = evolve.SimplePoint{}
	if cfg.Band.NoTopology {
		pred = evolve.FreeTopology{}
	}

	ev, err := evolve.New(string(cfg.Algorithm), evolve.Params{
		A:           ones,
		B:           ones,
		G:           shape.SpeedField(d, cfg.Speed.Noise, cfg.Speed.Seed),
		K:           cfg.BalloonForce,
		Epsilon:     cfg.Epsilon,
		ConstVolume: cfg.ConstVolume,
		BandWidth:   cfg.Band.Width,
		Predicate:   pred,
	})
	if err != nil {
		return nil, fmt.Errorf("select evolver: %w", err)
	}
	return ev, nil
}

// NewWriter returns the artifact writer for the configured format.
func NewWriter(cfg config.Run) (render.Writer, error) {
	opts := render.Options{
		Threshold: cfg.Threshold(),
		Scale:     cfg.Render.Scale,
		Smooth:    cfg.Render.Smooth,
	}
	switch cfg.OutputFormat {
	case config.Raster:
		return render.Raster{Options: opts}, nil
	case config.Vector:
		return render.Vector{Options: opts}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.OutputFormat)
	}
}
