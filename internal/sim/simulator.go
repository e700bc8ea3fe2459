package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/dropsim/internal/dynamo"
)

// Simulator drives a World headlessly for a fixed duration, feeding it input
// from an InputSource and recording every frame.
type Simulator struct {
	world     *World
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(world *World) *Simulator {
	return &Simulator{
		world:     world,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) World() *World                 { return s.world }
func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Metrics() []dynamo.Metric      { return s.metrics }

func (s *Simulator) Run(ctx context.Context, input dynamo.InputSource, cfg Config) (*dynamo.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if input == nil {
		input = AutoStart{}
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &dynamo.Result{
		Frames:   make([][]dynamo.Sample, 0, steps+1),
		Times:    make([]float64, 0, steps+1),
		Contacts: make([]int, 0, steps+1),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	w := s.world
	result.Frames = append(result.Frames, w.Samples())
	result.Times = append(result.Times, w.Clock())
	result.Contacts = append(result.Contacts, 0)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		in := input.Input(i, w.Clock())
		contacts, err := w.Step(cfg.Dt, in)
		if err != nil {
			result.Errors = append(result.Errors, err)
			return result, err
		}
		result.StepsTaken++

		ps := w.Particles()
		for _, m := range s.metrics {
			m.Observe(ps, w.Clock())
		}
		for _, obs := range s.observers {
			obs.OnFrame(ps, w.Clock())
		}

		result.Frames = append(result.Frames, w.Samples())
		result.Times = append(result.Times, w.Clock())
		result.Contacts = append(result.Contacts, contacts)
	}

	result.Started = w.Started()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidTimestep, cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// RunWithCallback steps the world until the duration elapses or callback
// returns false. Nothing is recorded.
func (s *Simulator) RunWithCallback(ctx context.Context, input dynamo.InputSource, cfg Config, callback func(w *World, contacts int) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if input == nil {
		input = AutoStart{}
	}

	for i := 0; s.world.Clock() < cfg.Duration; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		contacts, err := s.world.Step(cfg.Dt, input.Input(i, s.world.Clock()))
		if err != nil {
			return err
		}
		if !callback(s.world, contacts) {
			return nil
		}
	}

	return nil
}
