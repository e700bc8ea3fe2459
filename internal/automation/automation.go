package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/dropsim/internal/config"
	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/experiment"
	"github.com/san-kum/dropsim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted run: a base configuration plus timed input events.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Preset      string    `yaml:"preset"`
	Config      yaml.Node `yaml:"config"`
	Duration    float64   `yaml:"duration"`
	Events      []Event   `yaml:"events"`
}

type Action string

const (
	ActionStart Action = "start"
	ActionBoost Action = "boost"
	ActionSpawn Action = "spawn"
	ActionClear Action = "clear"
)

// Event is one scripted input. Start, spawn and clear fire once on the first
// frame whose clock reaches At; boost is held while At <= t < Until.
type Event struct {
	At     float64 `yaml:"at"`
	Action Action  `yaml:"action"`
	Until  float64 `yaml:"until,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	for i, ev := range s.Events {
		switch ev.Action {
		case ActionStart, ActionSpawn, ActionClear:
		case ActionBoost:
			if !(ev.Until > ev.At) {
				return fmt.Errorf("event %d: boost needs until > at (%v, %v)", i+1, ev.At, ev.Until)
			}
		default:
			return fmt.Errorf("event %d: %w: action %q", i+1, dynamo.ErrUnknownComponent, ev.Action)
		}
		if ev.At < 0 {
			return fmt.Errorf("event %d: negative time %v", i+1, ev.At)
		}
	}
	return nil
}

// BaseConfig resolves the scenario's configuration: the preset (or the
// defaults) overlaid with any inline config block.
func (s *Scenario) BaseConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: preset %q", dynamo.ErrUnknownComponent, s.Preset)
		}
	}
	// A zero node means the scenario had no config block.
	if s.Config.Kind != 0 {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, fmt.Errorf("scenario %s config: %w", s.Name, err)
		}
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	return cfg, cfg.Validate()
}

// Script returns a fresh input source replaying the scenario's events.
func (s *Scenario) Script() *Script {
	return &Script{
		events: s.Events,
		fired:  make([]bool, len(s.Events)),
	}
}

// Script is the dynamo.InputSource for a scenario. It is stateful and must
// not be shared between runs.
type Script struct {
	events []Event
	fired  []bool
}

func (sc *Script) Input(frame int, t float64) dynamo.InputState {
	var in dynamo.InputState
	for i, ev := range sc.events {
		if ev.Action == ActionBoost {
			if t >= ev.At && t < ev.Until {
				in.Boost = true
			}
			continue
		}
		if sc.fired[i] || t < ev.At {
			continue
		}
		sc.fired[i] = true
		switch ev.Action {
		case ActionStart:
			in.Start = true
		case ActionClear:
			in.Clear = true
		case ActionSpawn:
			in.Spawns = append(in.Spawns, dynamo.Vec2{X: ev.X, Y: ev.Y})
		}
	}
	return in
}

// RunScenario builds the scenario's world and drives it with its script.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry) (*dynamo.Result, error) {
	cfg, err := scenario.BaseConfig()
	if err != nil {
		return nil, err
	}
	bounds, err := cfg.Bounds()
	if err != nil {
		return nil, err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(registry, registry.DefaultMetrics(bounds)); err != nil {
		return nil, fmt.Errorf("scenario %s setup: %w", scenario.Name, err)
	}

	var input dynamo.InputSource = scenario.Script()
	if len(scenario.Events) == 0 {
		input = sim.AutoStart{}
	}
	result, err := exp.Run(ctx, input)
	if err != nil {
		return result, fmt.Errorf("scenario %s run: %w", scenario.Name, err)
	}
	return result, nil
}
