// Command deform2d evolves a 2D interface (an imported binary image or a
// synthetic ball/flower) by level-set, phase-field or narrow-band evolution
// and writes snapshots of it to PNG or SVG files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/deformations/internal/config"
	"github.com/talgya/deformations/internal/engine"
	"github.com/talgya/deformations/internal/persistence"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fs := flag.NewFlagSet("deform2d", flag.ExitOnError)
	fl := config.Default()
	configPath := registerFlags(fs, &fl)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: deform2d [options]\n\nDeforms a digital interface over time.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if len(os.Args) < 2 {
		fs.Usage()
		return
	}
	fs.Parse(os.Args[1:])

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFromPath(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply(&cfg, &fl)
		}
	})
	if cfg.Verbose {
		level.Set(slog.LevelDebug)
	}

	// ── Run ledger ────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.Database != "" {
		var err error
		db, err = persistence.Open(cfg.Database)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database opened", "path", cfg.Database)
	}

	// ── Evolution ─────────────────────────────────────────────────────
	sim := engine.NewSimulation(cfg)
	if db != nil {
		sim.Recorder = db
	}

	if err := sim.Run(); err != nil {
		if errors.Is(err, config.ErrConfiguration) {
			slog.Error("invalid configuration, nothing to do", "error", err)
			return
		}
		slog.Error("deformation failed", "error", err)
		if db != nil {
			db.Close()
		}
		os.Exit(1)
	}

	last := sim.Samples[len(sim.Samples)-1]
	slog.Info("summary",
		"artifacts", humanize.Comma(int64(len(sim.Artifacts))),
		"bytes", humanize.Bytes(uint64(sim.Stats.ArtifactBytes)),
		"failed", sim.Stats.ArtifactErrors,
		"final_area", humanize.Comma(int64(last.Area)),
		"evolution_time", fmt.Sprintf("%.3f", sim.Stats.Elapsed),
	)
	if sim.RunID != "" {
		slog.Info("run recorded", "run", sim.RunID)
	}
}
