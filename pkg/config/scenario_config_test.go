package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// TestDefaultFileMatchesDefault tests that the shipped data file and Default() agree
func TestDefaultFileMatchesDefault(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "data", "scenarios.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("data/scenarios.yaml differs from Default():\nfile:    %+v\ndefault: %+v", cfg, Default())
	}
}

func TestDefault_FaucetConstants(t *testing.T) {
	f := Default().Faucet
	if f.ParticleLifetime != (Range{Min: 30, Max: 50}) {
		t.Errorf("ParticleLifetime = %+v", f.ParticleLifetime)
	}
	if f.ParticleRadius != 0.035 || f.MaxParticleCount != 1000 || !f.DestructionByAge {
		t.Errorf("particle store settings = %g/%d/%v", f.ParticleRadius, f.MaxParticleCount, f.DestructionByAge)
	}
	if f.EmitRate != 120 || f.EmitRateChangeFactor != 1.05 || f.EmitRateMin != 1 || f.EmitRateMax != 240 {
		t.Errorf("emit rate settings = %g/%g/%g/%g", f.EmitRate, f.EmitRateChangeFactor, f.EmitRateMin, f.EmitRateMax)
	}
	if f.MaxEmitRate != 0 {
		t.Errorf("MaxEmitRate = %g, want 0 (unbounded)", f.MaxEmitRate)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *Config)
	}{
		{
			name:        "empty document keeps defaults",
			yamlContent: ``,
			validate: func(t *testing.T, cfg *Config) {
				if !reflect.DeepEqual(cfg, Default()) {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name: "partial override",
			yamlContent: `
testbed:
  hertz: 30
  scenario: Wave machine
faucet:
  emitRate: 300
  particleLifetime: "40"
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Testbed.Hertz != 30 {
					t.Errorf("expected hertz = 30, got %g", cfg.Testbed.Hertz)
				}
				if cfg.Testbed.Scenario != "Wave machine" {
					t.Errorf("expected scenario = Wave machine, got %q", cfg.Testbed.Scenario)
				}
				if cfg.Testbed.VelocityIterations != 8 {
					t.Errorf("expected default velocityIterations = 8, got %d", cfg.Testbed.VelocityIterations)
				}
				if cfg.Faucet.EmitRate != 300 {
					t.Errorf("expected emitRate = 300, got %g", cfg.Faucet.EmitRate)
				}
				if cfg.Faucet.ParticleLifetime != (Range{Min: 40, Max: 40}) {
					t.Errorf("expected fixed lifetime 40, got %+v", cfg.Faucet.ParticleLifetime)
				}
				if !cfg.Faucet.DestructionByAge {
					t.Errorf("expected default destructionByAge = true")
				}
			},
		},
		{
			name: "flow sequence range",
			yamlContent: `
faucet:
  particleLifetime: [10, 20]
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Faucet.ParticleLifetime != (Range{Min: 10, Max: 20}) {
					t.Errorf("got %+v", cfg.Faucet.ParticleLifetime)
				}
			},
		},
		{
			name: "mapping range",
			yamlContent: `
faucet:
  particleLifetime:
    min: 5
    max: 6
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Faucet.ParticleLifetime != (Range{Min: 5, Max: 6}) {
					t.Errorf("got %+v", cfg.Faucet.ParticleLifetime)
				}
			},
		},
		{
			name: "descending lifetime",
			yamlContent: `
faucet:
  particleLifetime: "[50 30]"
`,
			wantErr:     true,
			errContains: "min(50) > max(30)",
		},
		{
			name: "negative hertz",
			yamlContent: `
testbed:
  hertz: -1
`,
			wantErr:     true,
			errContains: "hertz",
		},
		{
			name: "zero hertz is allowed",
			yamlContent: `
testbed:
  hertz: 0
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Testbed.Hertz != 0 {
					t.Errorf("expected hertz = 0, got %g", cfg.Testbed.Hertz)
				}
			},
		},
		{
			name: "change factor not above one",
			yamlContent: `
faucet:
  emitRateChangeFactor: 1
`,
			wantErr:     true,
			errContains: "emitRateChangeFactor",
		},
		{
			name: "rate bounds reversed",
			yamlContent: `
faucet:
  emitRateMin: 300
`,
			wantErr:     true,
			errContains: "emit rate bounds",
		},
		{
			name: "bad logging level",
			yamlContent: `
logging:
  level: loud
`,
			wantErr:     true,
			errContains: "logging level",
		},
		{
			name: "bad logging format",
			yamlContent: `
logging:
  format: xml
`,
			wantErr:     true,
			errContains: "logging format",
		},
		{
			name: "zero wave machine radius",
			yamlContent: `
waveMachine:
  particleRadius: 0
`,
			wantErr:     true,
			errContains: "particleRadius",
		},
		{
			name:        "malformed yaml",
			yamlContent: "testbed: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("faucet:\n  maxParticleCount: 10\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Faucet.MaxParticleCount != 10 {
		t.Errorf("expected maxParticleCount = 10, got %d", cfg.Faucet.MaxParticleCount)
	}
}

func TestRange_MarshalYAML(t *testing.T) {
	type doc struct {
		A Range `yaml:"a"`
		B Range `yaml:"b"`
	}
	in := doc{Range{30, 50}, Range{40, 40}}
	out, err := yaml.Marshal(in)
	if err != nil {
		t.Fatalf("yaml.Marshal() error: %v", err)
	}
	if !strings.Contains(string(out), "[30 50]") {
		t.Errorf("expected compact range string, got:\n%s", out)
	}

	var back doc
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error: %v", err)
	}
	if back != in {
		t.Errorf("round trip = %+v, want %+v", back, in)
	}
}

func TestLoggingConfig_ZapLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := LoggingConfig{Level: tt.level}.ZapLevel()
		if err != nil {
			t.Errorf("ZapLevel(%q) error: %v", tt.level, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ZapLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
