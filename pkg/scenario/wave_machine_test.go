package scenario

import (
	"math"
	"testing"

	"github.com/ByteArena/box2d"

	"github.com/decker502/particlebed/pkg/particle"
)

func newTestWaveMachine(t *testing.T, env Env) *WaveMachine {
	t.Helper()
	w, err := NewWaveMachine(env)
	if err != nil {
		t.Fatalf("NewWaveMachine() error: %v", err)
	}
	t.Cleanup(w.Close)
	return w
}

func TestWaveMachine_Construction(t *testing.T) {
	w := newTestWaveMachine(t, newTestEnv(t, nil))

	ps := w.Particles()
	if ps.Count() == 0 || ps.Count() != w.Group().Count() {
		t.Fatalf("group count = %d, store count = %d", w.Group().Count(), ps.Count())
	}
	if ps.Radius() != 0.025 || ps.Damping() != 0.2 {
		t.Errorf("particle store = radius %v damping %v", ps.Radius(), ps.Damping())
	}
	for i := 0; i < ps.Count(); i++ {
		p := ps.Position(i)
		if p.X < -0.9-1e-9 || p.X > 0.9+1e-9 || p.Y < 0.1-1e-9 || p.Y > 1.9+1e-9 {
			t.Fatalf("particle %d at %v outside the fill box", i, p)
		}
		if ps.Color(i) != particle.White {
			t.Fatalf("particle %d color = %v", i, ps.Color(i))
		}
	}

	if got := w.Joint().GetMotorSpeed(); math.Abs(got-0.05*math.Pi) > 1e-12 {
		t.Errorf("initial motor speed = %v", got)
	}
	if got := len(w.World().Boxes()); got != 4 {
		t.Errorf("len(Boxes()) = %d, want 4", got)
	}
	if !w.RestartOnParameterChange() {
		t.Error("wave machine should restart on particle type change")
	}
	if w.DefaultViewZoom() != 0.1 {
		t.Errorf("DefaultViewZoom() = %v", w.DefaultViewZoom())
	}
	if w.Help() != nil {
		t.Errorf("unexpected help text %v", w.Help())
	}
}

func TestWaveMachine_ColorMixingGroup(t *testing.T) {
	env := newTestEnv(t, nil)
	env.Parameter.SelectName("color mixing")
	w := newTestWaveMachine(t, env)

	ps := w.Particles()
	if !ps.AllFlags().Has(particle.ColorMixing) {
		t.Fatal("group particles lack the color mixing flag")
	}
	seen := make(map[particle.Color]bool)
	for i := 0; i < ps.Count(); i++ {
		seen[ps.Color(i)] = true
	}
	for i, c := range particle.Palette {
		if !seen[c] {
			t.Errorf("palette color %d not used", i)
		}
	}
	if seen[particle.White] {
		t.Error("colored group still has white particles")
	}
}

// TestWaveMachine_PauseFreezesMotorPhase tests that paused ticks keep writing the motor speed without advancing the phase
func TestWaveMachine_PauseFreezesMotorPhase(t *testing.T) {
	w := newTestWaveMachine(t, newTestEnv(t, nil))
	s := running()

	s.Pause = true
	stepN(w, s, 30)
	if w.Oscillator().Phase() != 0 {
		t.Fatalf("phase advanced while paused: %v", w.Oscillator().Phase())
	}
	if got := w.Joint().GetMotorSpeed(); math.Abs(got-0.05*math.Pi) > 1e-12 {
		t.Errorf("paused motor speed = %v", got)
	}
	if angle := w.body.GetAngle(); angle != 0 {
		t.Errorf("body rotated while paused: %v", angle)
	}

	s.Pause = false
	stepN(w, s, 60)
	phase := w.Oscillator().Phase()
	if math.Abs(phase-1) > 1e-9 {
		t.Fatalf("phase after 60 ticks = %v, want 1", phase)
	}
	want := 0.05 * math.Cos(phase) * math.Pi
	if got := w.Joint().GetMotorSpeed(); math.Abs(got-want) > 1e-12 {
		t.Errorf("motor speed = %v, want %v", got, want)
	}
	if w.body.GetAngle() == 0 {
		t.Error("body did not rotate")
	}

	zero := running()
	zero.Hertz = 0
	stepN(w, zero, 10)
	if w.Oscillator().Phase() != phase {
		t.Error("zero tick rate advanced the phase")
	}
}

func TestWaveMachine_ResetsParameterList(t *testing.T) {
	env := newTestEnv(t, nil)
	f, err := NewFaucet(env)
	if err != nil {
		t.Fatalf("NewFaucet() error: %v", err)
	}
	f.Close()

	w := newTestWaveMachine(t, env)
	if len(w.Parameter().Values()) != len(DefaultParameterValues) {
		t.Errorf("parameter list still restricted: %d values", len(w.Parameter().Values()))
	}
}

func TestWaveMachine_Close(t *testing.T) {
	w, err := NewWaveMachine(newTestEnv(t, nil))
	if err != nil {
		t.Fatalf("NewWaveMachine() error: %v", err)
	}
	w.Close()
	if w.Particles().Count() != 0 || w.Group().Count() != 0 {
		t.Error("particles survived Close")
	}
	if w.World().Contains(box2d.MakeB2Vec2(2, 1)) {
		t.Error("fixtures survived Close")
	}
}
