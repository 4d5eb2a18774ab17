package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/talgya/deformations/internal/config"
)

func parse(t *testing.T, base config.Run, args ...string) config.Run {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fl := config.Default()
	registerFlags(fs, &fl)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply(&base, &fl)
		}
	})
	return base
}

func TestFlagAliases(t *testing.T) {
	short := parse(t, config.Default(), "-a", "phaseField", "-t", "0.5", "-n", "10", "-e", "2", "-o", "out", "-f", "vector", "-d", "32", "-s", "flower", "-k", "1")
	long := parse(t, config.Default(), "-algo", "phaseField", "-timeStep", "0.5", "-stepsNumber", "10", "-epsilon", "2", "-outputFiles", "out", "-outputFormat", "vector", "-domainSize", "32", "-shape", "flower", "-balloonForce", "1")
	if diff := cmp.Diff(short, long); diff != "" {
		t.Errorf("short and long flags differ (-short +long):\n%s", diff)
	}
	if short.Algorithm != config.PhaseField || short.StepsNumber != 10 || short.OutputFormat != config.Vector {
		t.Errorf("flags not applied: %+v", short)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("algo: localLevelSet\nstepsNumber: 7\nband:\n  width: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	base, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := parse(t, base, "-n", "3", "-noTopology")

	want := config.Default()
	want.Algorithm = config.LocalLevelSet
	want.StepsNumber = 3
	want.Band.Width = 4
	want.Band.NoTopology = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("layered config mismatch (-want +got):\n%s", diff)
	}
}

func TestEveryFlagHasOverride(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fl := config.Default()
	registerFlags(fs, &fl)
	fs.VisitAll(func(f *flag.Flag) {
		if f.Name == "config" {
			return
		}
		if _, ok := overrides[f.Name]; !ok {
			t.Errorf("flag -%s has no override", f.Name)
		}
	})
}
