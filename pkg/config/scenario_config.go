package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/decker502/particlebed/internal/valueparse"
)

// Config is the full testbed configuration.
//
// Configuration file location: data/scenarios.yaml (embedded defaults).
// A file passed with -config is layered on top of Default(): keys it omits
// keep their default value.
type Config struct {
	Testbed     TestbedConfig     `yaml:"testbed"`
	Logging     LoggingConfig     `yaml:"logging"`
	Faucet      FaucetConfig      `yaml:"faucet"`
	WaveMachine WaveMachineConfig `yaml:"waveMachine"`
}

// TestbedConfig holds the initial testbed settings.
type TestbedConfig struct {
	// Hertz is the simulation tick rate. 0 freezes the simulation.
	Hertz              float64 `yaml:"hertz"`
	VelocityIterations int     `yaml:"velocityIterations"`
	PositionIterations int     `yaml:"positionIterations"`

	// Scenario is the name of the scenario started first.
	Scenario string `yaml:"scenario"`

	// ParticleType is the name of the initially selected particle type.
	ParticleType string `yaml:"particleType"`

	// Seed feeds every scenario's random source.
	Seed uint64 `yaml:"seed"`

	WindowWidth  int `yaml:"windowWidth"`
	WindowHeight int `yaml:"windowHeight"`
}

// LoggingConfig selects the zap logger flavor.
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "console" or "json".
	Format string `yaml:"format"`
}

// FaucetConfig holds the faucet scenario constants.
//
// Faucet dimensions are relative: FaucetWidth is a fraction of the
// container width, FaucetHeight a multiple of the container height and
// FaucetLength a multiple of the particle diameter.
type FaucetConfig struct {
	// ParticleLifetime is the lifetime range in seconds, written "[30 50]".
	ParticleLifetime Range `yaml:"particleLifetime"`

	ParticleRadius   float64 `yaml:"particleRadius"`
	MaxParticleCount int     `yaml:"maxParticleCount"`
	DestructionByAge bool    `yaml:"destructionByAge"`

	ContainerHeight    float64 `yaml:"containerHeight"`
	ContainerWidth     float64 `yaml:"containerWidth"`
	ContainerThickness float64 `yaml:"containerThickness"`

	FaucetWidth  float64 `yaml:"faucetWidth"`
	FaucetHeight float64 `yaml:"faucetHeight"`
	FaucetLength float64 `yaml:"faucetLength"`
	SpoutWidth   float64 `yaml:"spoutWidth"`
	SpoutLength  float64 `yaml:"spoutLength"`

	// EmitRate is the initial rate in particles per second.
	EmitRate             float64 `yaml:"emitRate"`
	EmitRateChangeFactor float64 `yaml:"emitRateChangeFactor"`
	EmitRateMin          float64 `yaml:"emitRateMin"`
	EmitRateMax          float64 `yaml:"emitRateMax"`

	// MaxEmitRate is a hard ceiling enforced by the emitter. 0 disables it.
	MaxEmitRate float64 `yaml:"maxEmitRate"`
}

// WaveMachineConfig holds the wave machine scenario constants.
type WaveMachineConfig struct {
	ParticleRadius float64 `yaml:"particleRadius"`
	Damping        float64 `yaml:"damping"`

	// BodyDensity is the density of the four container walls.
	BodyDensity float64 `yaml:"bodyDensity"`

	// MotorAmplitude scales cos(phase)*pi into the motor speed.
	MotorAmplitude float64 `yaml:"motorAmplitude"`
	MaxMotorTorque float64 `yaml:"maxMotorTorque"`

	// FillHalfWidth and FillHalfHeight size the initial particle block.
	FillHalfWidth  float64 `yaml:"fillHalfWidth"`
	FillHalfHeight float64 `yaml:"fillHalfHeight"`
}

// Range is an inclusive float range. In YAML it is written as a value
// string ("40", "[30 50]") or as a {min, max} mapping.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	var s string
	switch value.Kind {
	case yaml.ScalarNode:
		s = value.Value
	case yaml.SequenceNode:
		// Unquoted [30 50] and [30, 50] both arrive as flow sequences.
		parts := make([]string, 0, len(value.Content))
		for _, n := range value.Content {
			parts = append(parts, n.Value)
		}
		s = "[" + strings.Join(parts, " ") + "]"
	}
	if s != "" {
		min, max, err := valueparse.ParseRange(s)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		r.Min, r.Max = min, max
		return nil
	}

	type plain Range
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = Range(p)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Range) MarshalYAML() (interface{}, error) {
	return valueparse.FormatRange(r.Min, r.Max), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Testbed: TestbedConfig{
			Hertz:              60,
			VelocityIterations: 8,
			PositionIterations: 3,
			Scenario:           "Faucet",
			ParticleType:       "water",
			Seed:               1,
			WindowWidth:        1024,
			WindowHeight:       640,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Faucet: FaucetConfig{
			ParticleLifetime:     Range{Min: 30, Max: 50},
			ParticleRadius:       0.035,
			MaxParticleCount:     1000,
			DestructionByAge:     true,
			ContainerHeight:      0.2,
			ContainerWidth:       1.0,
			ContainerThickness:   0.05,
			FaucetWidth:          0.1,
			FaucetHeight:         15.0,
			FaucetLength:         2.0,
			SpoutWidth:           1.1,
			SpoutLength:          2.0,
			EmitRate:             120,
			EmitRateChangeFactor: 1.05,
			EmitRateMin:          1,
			EmitRateMax:          240,
		},
		WaveMachine: WaveMachineConfig{
			ParticleRadius: 0.025,
			Damping:        0.2,
			BodyDensity:    5,
			MotorAmplitude: 0.05,
			MaxMotorTorque: 1e7,
			FillHalfWidth:  0.9,
			FillHalfHeight: 0.9,
		},
	}
}

// LoadConfig loads a configuration file on top of Default().
//
// Parameters:
//   - path: configuration file path (e.g. "data/scenarios.yaml")
//
// Returns:
//   - *Config: the validated configuration
//   - error: read, parse or validation failure
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses YAML on top of Default() and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every value is usable:
//   - tick rate and lifetimes are not negative
//   - iteration counts and particle radii are positive
//   - the emit rate bounds are ordered and the change factor exceeds 1
//   - the logging level and format are known
func (c *Config) Validate() error {
	t := c.Testbed
	if t.Hertz < 0 {
		return fmt.Errorf("testbed hertz must be >= 0, got %g", t.Hertz)
	}
	if t.VelocityIterations <= 0 || t.PositionIterations <= 0 {
		return fmt.Errorf("testbed iterations must be > 0, got velocity=%d position=%d",
			t.VelocityIterations, t.PositionIterations)
	}
	if t.WindowWidth <= 0 || t.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", t.WindowWidth, t.WindowHeight)
	}

	if err := c.Logging.Validate(); err != nil {
		return err
	}

	f := c.Faucet
	if f.ParticleLifetime.Min < 0 || f.ParticleLifetime.Min > f.ParticleLifetime.Max {
		return fmt.Errorf("faucet particleLifetime invalid: min(%g) max(%g)",
			f.ParticleLifetime.Min, f.ParticleLifetime.Max)
	}
	if f.ParticleRadius <= 0 {
		return fmt.Errorf("faucet particleRadius must be > 0, got %g", f.ParticleRadius)
	}
	if f.MaxParticleCount < 0 {
		return fmt.Errorf("faucet maxParticleCount must be >= 0, got %d", f.MaxParticleCount)
	}
	if f.ContainerWidth <= f.ContainerThickness {
		return fmt.Errorf("faucet containerWidth(%g) must exceed containerThickness(%g)",
			f.ContainerWidth, f.ContainerThickness)
	}
	if f.EmitRate < 0 {
		return fmt.Errorf("faucet emitRate must be >= 0, got %g", f.EmitRate)
	}
	if f.EmitRateChangeFactor <= 1 {
		return fmt.Errorf("faucet emitRateChangeFactor must be > 1, got %g", f.EmitRateChangeFactor)
	}
	if f.EmitRateMin < 0 || f.EmitRateMin > f.EmitRateMax {
		return fmt.Errorf("faucet emit rate bounds invalid: min(%g) max(%g)", f.EmitRateMin, f.EmitRateMax)
	}
	if f.MaxEmitRate < 0 {
		return fmt.Errorf("faucet maxEmitRate must be >= 0, got %g", f.MaxEmitRate)
	}

	w := c.WaveMachine
	if w.ParticleRadius <= 0 {
		return fmt.Errorf("waveMachine particleRadius must be > 0, got %g", w.ParticleRadius)
	}
	if w.Damping < 0 {
		return fmt.Errorf("waveMachine damping must be >= 0, got %g", w.Damping)
	}
	if w.FillHalfWidth <= 0 || w.FillHalfHeight <= 0 {
		return fmt.Errorf("waveMachine fill box must be positive, got %gx%g", w.FillHalfWidth, w.FillHalfHeight)
	}
	return nil
}

// Validate checks the logging level and format.
func (c LoggingConfig) Validate() error {
	if _, err := c.ZapLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("unknown logging format %q (want console or json)", c.Format)
	}
}

// ZapLevel parses Level. An empty level means info.
func (c LoggingConfig) ZapLevel() (zapcore.Level, error) {
	var level zapcore.Level
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return level, fmt.Errorf("invalid logging level %q: %w", c.Level, err)
	}
	return level, nil
}
