package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/particlebed/pkg/particle"
	"github.com/decker502/particlebed/pkg/physics"
	"github.com/decker502/particlebed/pkg/scenario"
)

// mockScenario records the calls made by the manager.
type mockScenario struct {
	name    string
	restart bool
	steps   int
	keys    []ebiten.Key
	closed  bool
}

func (m *mockScenario) Name() string                   { return m.name }
func (m *mockScenario) Step(*scenario.Settings)        { m.steps++ }
func (m *mockScenario) Keyboard(key ebiten.Key)        { m.keys = append(m.keys, key) }
func (m *mockScenario) Help() []string                 { return nil }
func (m *mockScenario) DefaultViewZoom() float64       { return 1 }
func (m *mockScenario) World() *physics.World          { return nil }
func (m *mockScenario) Particles() *particle.System    { return nil }
func (m *mockScenario) RestartOnParameterChange() bool { return m.restart }
func (m *mockScenario) Close()                         { m.closed = true }

type mockRegistry struct {
	reg     *scenario.Registry
	created map[string][]*mockScenario
}

func newMockRegistry(t *testing.T) *mockRegistry {
	t.Helper()
	mr := &mockRegistry{reg: scenario.NewRegistry(), created: make(map[string][]*mockScenario)}
	for _, def := range []struct {
		name    string
		restart bool
	}{{"A", true}, {"B", false}, {"C", true}} {
		def := def
		err := mr.reg.Register("Test", def.name, func() (scenario.Scenario, error) {
			m := &mockScenario{name: def.name, restart: def.restart}
			mr.created[def.name] = append(mr.created[def.name], m)
			return m, nil
		})
		if err != nil {
			t.Fatalf("Register() error: %v", err)
		}
	}
	return mr
}

func newTestManager(t *testing.T) (*ScenarioManager, *mockRegistry) {
	mr := newMockRegistry(t)
	settings := &scenario.Settings{Hertz: 60, VelocityIterations: 8, PositionIterations: 3}
	return NewScenarioManager(mr.reg, scenario.NewParameter(), settings, nil), mr
}

func TestScenarioManager_Load(t *testing.T) {
	sm, mr := newTestManager(t)
	if sm.Current() != nil {
		t.Fatal("expected no scenario initially")
	}
	if err := sm.Update(); err != nil {
		t.Fatalf("Update() without scenario error: %v", err)
	}

	if err := sm.Load("B"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if sm.Current().Name() != "B" || sm.Settings().Scenario != "B" {
		t.Errorf("current = %q, settings = %q", sm.Current().Name(), sm.Settings().Scenario)
	}

	if err := sm.Load("missing"); !errors.Is(err, scenario.ErrUnknownScenario) {
		t.Errorf("expected ErrUnknownScenario, got %v", err)
	}
	if sm.Current().Name() != "B" {
		t.Error("failed load replaced the running scenario")
	}

	if err := sm.Load("A"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !mr.created["B"][0].closed {
		t.Error("previous scenario not closed")
	}
}

func TestScenarioManager_NextPrevWrap(t *testing.T) {
	sm, _ := newTestManager(t)
	sm.Load("C")

	if err := sm.Next(); err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if sm.Current().Name() != "A" {
		t.Errorf("Next() from last = %q, want A", sm.Current().Name())
	}
	if err := sm.Prev(); err != nil {
		t.Fatalf("Prev() error: %v", err)
	}
	if sm.Current().Name() != "C" {
		t.Errorf("Prev() from first = %q, want C", sm.Current().Name())
	}
}

func TestScenarioManager_UpdateAndKeyboard(t *testing.T) {
	sm, mr := newTestManager(t)
	sm.Load("A")

	sm.Keyboard(ebiten.KeyW)
	for i := 0; i < 3; i++ {
		if err := sm.Update(); err != nil {
			t.Fatalf("Update() error: %v", err)
		}
	}

	m := mr.created["A"][0]
	if m.steps != 3 {
		t.Errorf("steps = %d, want 3", m.steps)
	}
	if len(m.keys) != 1 || m.keys[0] != ebiten.KeyW {
		t.Errorf("keys = %v", m.keys)
	}
}

// TestScenarioManager_RestartOnParameterChange tests that only scenarios asking for it are rebuilt
func TestScenarioManager_RestartOnParameterChange(t *testing.T) {
	sm, mr := newTestManager(t)

	sm.Load("A")
	sm.Parameter().SelectName("powder")
	sm.Update()
	if got := len(mr.created["A"]); got != 2 {
		t.Fatalf("A built %d times, want 2", got)
	}
	if !mr.created["A"][0].closed || mr.created["A"][1].steps != 1 {
		t.Error("restart did not replace and step the scenario")
	}
	if sm.Settings().ParticleType != "powder" {
		t.Errorf("settings particle type = %q", sm.Settings().ParticleType)
	}

	sm.Update()
	if got := len(mr.created["A"]); got != 2 {
		t.Errorf("unchanged selection restarted the scenario")
	}

	sm.Load("B")
	sm.Parameter().SelectName("tensile")
	sm.Update()
	if got := len(mr.created["B"]); got != 1 {
		t.Errorf("B built %d times, want 1", got)
	}
	if sm.Settings().ParticleType != "tensile" {
		t.Errorf("settings particle type = %q", sm.Settings().ParticleType)
	}
}

func TestScenarioManager_Restart(t *testing.T) {
	sm, mr := newTestManager(t)
	if err := sm.Restart(); err == nil {
		t.Error("Restart() without scenario should fail")
	}
	sm.Load("B")
	if err := sm.Restart(); err != nil {
		t.Fatalf("Restart() error: %v", err)
	}
	if len(mr.created["B"]) != 2 || sm.Current() != mr.created["B"][1] {
		t.Error("Restart() did not rebuild the scenario")
	}

	sm.Close()
	if sm.Current() != nil || !mr.created["B"][1].closed {
		t.Error("Close() left the scenario running")
	}
}

func TestScenarioManager_FactoryError(t *testing.T) {
	reg := scenario.NewRegistry()
	boom := errors.New("boom")
	reg.Register("Test", "broken", func() (scenario.Scenario, error) { return nil, boom })
	sm := NewScenarioManager(reg, scenario.NewParameter(), &scenario.Settings{}, nil)

	if err := sm.Load("broken"); !errors.Is(err, boom) {
		t.Errorf("expected factory error, got %v", err)
	}
	if sm.Current() != nil {
		t.Error("failed factory installed a scenario")
	}
}

// TestScenarioManager_Builtins runs the real scenarios through the manager
func TestScenarioManager_Builtins(t *testing.T) {
	reg := scenario.NewRegistry()
	parameter := scenario.NewParameter()
	if err := scenario.RegisterBuiltins(reg, scenario.Env{Seed: 1, Parameter: parameter}); err != nil {
		t.Fatalf("RegisterBuiltins() error: %v", err)
	}
	settings := &scenario.Settings{Hertz: 60, VelocityIterations: 8, PositionIterations: 3}
	sm := NewScenarioManager(reg, parameter, settings, nil)
	defer sm.Close()

	if err := sm.Load(scenario.FaucetName); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	faucet := sm.Current()
	for i := 0; i < 10; i++ {
		sm.Update()
	}
	sm.Keyboard(ebiten.KeyQ)
	sm.Update()
	if sm.Current() != faucet {
		t.Error("faucet restarted on particle type change")
	}
	if settings.ParticleType != "powder" {
		t.Errorf("settings particle type = %q", settings.ParticleType)
	}

	if err := sm.Next(); err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if sm.Current().Name() != scenario.WaveMachineName {
		t.Fatalf("Next() = %q", sm.Current().Name())
	}
	if len(parameter.Values()) != len(scenario.DefaultParameterValues) {
		t.Error("particle type list not reset for the wave machine")
	}
	if parameter.Value().Name != "powder" {
		t.Errorf("selection lost across scenarios: %q", parameter.Value().Name)
	}

	wave := sm.Current()
	parameter.SelectName("viscous")
	sm.Update()
	if sm.Current() == wave {
		t.Error("wave machine not restarted on particle type change")
	}
	if !sm.Current().Particles().AllFlags().Has(particle.Viscous) {
		t.Error("restarted wave machine does not use the new particle type")
	}
}
