package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/deformations/internal/config"
	"github.com/talgya/deformations/internal/evolve"
	"github.com/talgya/deformations/internal/grid"
	"github.com/talgya/deformations/internal/persistence"
	"github.com/talgya/deformations/internal/render"
)

// State is the lifecycle state of a Simulation.
type State int

const (
	Idle State = iota
	Initialized
	Stepping
	Done
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Initialized:
		return "initialized"
	case Stepping:
		return "stepping"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Recorder receives the run ledger. *persistence.DB implements it.
type Recorder interface {
	BeginRun(algorithm, configJSON string) (string, error)
	SaveSamples(samples []persistence.Sample) error
	SaveArtifact(a persistence.Artifact) error
	FinishRun(id, state string, iterations int, elapsed float64) error
}

// Simulation owns the field of one run and wires the evolver, the artifact
// writer and the engine together.
type Simulation struct {
	Config   config.Run
	Field    *grid.Field
	Evolver  evolve.Evolver
	Writer   render.Writer
	Engine   *Engine
	Recorder Recorder // optional
	State    State
	RunID    string

	Samples   []Sample
	Artifacts []render.Artifact

	// Statistics of the run.
	Stats SimStats
}

// SimStats tracks aggregate run statistics.
type SimStats struct {
	Iterations     int           `json:"iterations"`
	Elapsed        float64       `json:"elapsed"` // accumulated evolution time
	ArtifactBytes  int64         `json:"artifact_bytes"`
	ArtifactErrors int           `json:"artifact_errors"`
	WallTime       time.Duration `json:"wall_time"`
}

// NewSimulation creates an idle simulation for cfg.
func NewSimulation(cfg config.Run) *Simulation {
	return &Simulation{Config: cfg, State: Idle}
}

// Threshold returns the iso-value of the interface.
func (s *Simulation) Threshold() float64 {
	return s.Config.Threshold()
}

// Initialize validates the configuration, builds the starting field and
// the evolver, writes the starting artifact and records sample 0. A
// configuration error leaves the simulation Aborted with nothing written.
func (s *Simulation) Initialize() error {
	if s.State != Idle {
		return fmt.Errorf("initialize: simulation is %s", s.State)
	}
	if err := s.Config.Validate(); err != nil {
		s.State = Aborted
		return err
	}

	writer, err := NewWriter(s.Config)
	if err != nil {
		s.State = Aborted
		return err
	}
	labels, err := BuildLabels(s.Config)
	if err != nil {
		s.State = Aborted
		return err
	}
	f := BuildField(s.Config, labels)
	ev, err := NewEvolver(s.Config, f.Domain())
	if err != nil {
		s.State = Aborted
		return err
	}
	s.Field, s.Evolver, s.Writer = f, ev, writer
	slog.Info("starting interface initialized", "domain", f.Domain(), "evolver", ev)

	if s.Config.WithFunction != "" {
		art, err := render.WriteFunction(f, s.Config.WithFunction)
		if err != nil {
			slog.Error("function dump failed", "error", err)
		} else {
			slog.Info("function dumped", "path", art.Path)
		}
	}

	s.beginLedger()
	s.Engine = NewEngine(s.Config.Algorithm, s.Config.DisplayStep, s.Config.StepsNumber)
	s.Engine.OnStep = s.step
	s.Engine.OnDisplay = s.display

	s.writeArtifact(1)
	s.record(Measure(f, s.Threshold(), 0, 0))
	s.State = Initialized
	return nil
}

// Run initializes the simulation if needed and iterates it to completion.
func (s *Simulation) Run() error {
	if s.State == Idle {
		if err := s.Initialize(); err != nil {
			return err
		}
	}
	if s.State != Initialized {
		return fmt.Errorf("run: simulation is %s", s.State)
	}

	s.State = Stepping
	slog.Info("deformation started",
		"algo", s.Config.Algorithm, "steps", s.Config.StepsNumber,
		"timeStep", s.Config.TimeStep, "displayStep", s.Config.DisplayStep)
	start := time.Now()

	s.Engine.Run()

	s.Stats.WallTime = time.Since(start)
	s.State = Done
	s.finishLedger()
	slog.Info("deformation finished",
		"iterations", s.Stats.Iterations, "time", s.Stats.Elapsed,
		"artifacts", len(s.Artifacts), "wall", s.Stats.WallTime.Round(time.Millisecond))
	return nil
}

// step advances the field by one time step.
func (s *Simulation) step(i int) {
	s.Evolver.Update(s.Field, s.Config.TimeStep)
	s.Stats.Iterations++
	s.Stats.Elapsed += s.Config.TimeStep
	slog.Debug("iteration", "i", i, "time", s.Stats.Elapsed)

	sample := Measure(s.Field, s.Threshold(), i, s.Stats.Elapsed)
	s.record(sample)
	slog.Info("area", "iteration", i, "area", sample.Area, "length", fmt.Sprintf("%.2f", sample.Length))
}

func (s *Simulation) display(i, seq int) {
	s.writeArtifact(seq)
}

// writeArtifact writes snapshot seq. Failures are logged and counted.
func (s *Simulation) writeArtifact(seq int) {
	name := render.Name(s.Config.OutputFiles, seq)
	art, err := s.Writer.Write(s.Field, name)
	if err != nil {
		s.Stats.ArtifactErrors++
		slog.Error("artifact write failed", "name", name, "error", err)
		return
	}
	s.Artifacts = append(s.Artifacts, art)
	s.Stats.ArtifactBytes += art.Bytes
	slog.Debug("artifact written", "path", art.Path, "bytes", art.Bytes, "contours", art.Contours)

	if s.Recorder != nil && s.RunID != "" {
		err := s.Recorder.SaveArtifact(persistence.Artifact{
			RunID: s.RunID, Sequence: seq, Path: art.Path, Bytes: art.Bytes,
		})
		if err != nil {
			slog.Warn("ledger artifact failed", "error", err)
		}
	}
}

func (s *Simulation) record(sample Sample) {
	s.Samples = append(s.Samples, sample)
}

func (s *Simulation) beginLedger() {
	if s.Recorder == nil {
		return
	}
	cfgJSON, err := json.Marshal(s.Config)
	if err != nil {
		slog.Warn("ledger config encode failed", "error", err)
		return
	}
	id, err := s.Recorder.BeginRun(string(s.Config.Algorithm), string(cfgJSON))
	if err != nil {
		slog.Warn("ledger begin failed", "error", err)
		return
	}
	s.RunID = id
	slog.Debug("ledger run started", "run", id)
}

func (s *Simulation) finishLedger() {
	if s.Recorder == nil || s.RunID == "" {
		return
	}
	rows := make([]persistence.Sample, len(s.Samples))
	for k, smp := range s.Samples {
		rows[k] = persistence.Sample{
			RunID: s.RunID, Iteration: smp.Iteration, Time: smp.Time,
			Area: smp.Area, Length: smp.Length,
		}
	}
	if err := s.Recorder.SaveSamples(rows); err != nil {
		slog.Warn("ledger samples failed", "error", err)
	}
	if err := s.Recorder.FinishRun(s.RunID, s.State.String(), s.Stats.Iterations, s.Stats.Elapsed); err != nil {
		slog.Warn("ledger finish failed", "error", err)
	}
}
