package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Run)
		field string
	}{
		{"xml format", func(r *Run) { r.OutputFormat = "xml" }, "outputFormat"},
		{"unknown algo", func(r *Run) { r.Algorithm = "unknownAlgo" }, "algo"},
		{"zero epsilon", func(r *Run) { r.Algorithm = PhaseField; r.Epsilon = 0 }, "epsilon"},
		{"negative epsilon", func(r *Run) { r.Algorithm = PhaseField; r.Epsilon = -1 }, "epsilon"},
		{"zero time step", func(r *Run) { r.TimeStep = 0 }, "timeStep"},
		{"zero display step", func(r *Run) { r.DisplayStep = 0 }, "displayStep"},
		{"zero steps", func(r *Run) { r.StepsNumber = 0 }, "stepsNumber"},
		{"zero domain", func(r *Run) { r.DomainSize = 0 }, "domainSize"},
		{"empty basename", func(r *Run) { r.OutputFiles = "" }, "outputFiles"},
		{"narrow band", func(r *Run) { r.Algorithm = LocalLevelSet; r.Band.Width = 1 }, "band.width"},
		{"noise too large", func(r *Run) { r.Speed.Noise = 1 }, "speed.noise"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default()
			tt.edit(&r)
			err := r.Validate()
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("Validate() = %v, want ErrConfiguration", err)
			}
			var cfgErr *Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %T, want *Error", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestFormatCheckedFirst(t *testing.T) {
	r := Default()
	r.OutputFormat = "xml"
	r.Algorithm = "unknownAlgo"
	var cfgErr *Error
	if err := r.Validate(); !errors.As(err, &cfgErr) || cfgErr.Field != "outputFormat" {
		t.Fatalf("Validate() = %v, want outputFormat error", err)
	}
}

func TestEpsilonIgnoredOutsidePhaseField(t *testing.T) {
	r := Default()
	r.Epsilon = 0
	if err := r.Validate(); err != nil {
		t.Fatalf("levelSet with epsilon 0: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := `
algo: phaseField
epsilon: 2.5
withCstVol: true
stepsNumber: 20
displayStep: 5
shape: flower
render:
  smooth: 0.1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	want := Default()
	want.Algorithm = PhaseField
	want.Epsilon = 2.5
	want.ConstVolume = true
	want.StepsNumber = 20
	want.DisplayStep = 5
	want.Shape = Flower
	want.Render.Smooth = 0.1
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("LoadFromPath mismatch (-want +got):\n%s", d)
	}
}

func TestLoadFromPathMissing(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestThresholdAndShape(t *testing.T) {
	r := Default()
	if r.Threshold() != 0 {
		t.Errorf("levelSet threshold = %g", r.Threshold())
	}
	r.Algorithm = PhaseField
	if r.Threshold() != 0.5 {
		t.Errorf("phaseField threshold = %g", r.Threshold())
	}

	r.Shape = "square"
	if s, fellBack := r.ShapeOrBall(); s != Ball || !fellBack {
		t.Errorf("ShapeOrBall(square) = %v, %v", s, fellBack)
	}
	r.Shape = Flower
	if s, fellBack := r.ShapeOrBall(); s != Flower || fellBack {
		t.Errorf("ShapeOrBall(flower) = %v, %v", s, fellBack)
	}
}
