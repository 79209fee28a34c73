package scenario

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestRegisterBuiltins(t *testing.T) {
	reg := NewRegistry()
	env := Env{Logger: zaptest.NewLogger(t), Seed: 1, Parameter: NewParameter()}
	if err := RegisterBuiltins(reg, env); err != nil {
		t.Fatalf("RegisterBuiltins() error: %v", err)
	}

	entries := reg.Entries()
	want := []string{FaucetName, WaveMachineName}
	if len(entries) != len(want) {
		t.Fatalf("len(Entries()) = %d, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].Name != name || entries[i].Category != "Particles" {
			t.Errorf("entry %d = %s/%s", i, entries[i].Category, entries[i].Name)
		}
		sc, err := entries[i].Factory()
		if err != nil {
			t.Fatalf("%s factory error: %v", name, err)
		}
		if sc.Name() != name {
			t.Errorf("factory for %q built %q", name, sc.Name())
		}
		sc.Close()
	}

	if err := RegisterBuiltins(reg, env); err == nil {
		t.Error("registering the builtins twice should fail")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()
	if err := RegisterBuiltins(reg, Env{Seed: 1}); err != nil {
		t.Fatalf("RegisterBuiltins() error: %v", err)
	}

	e, err := reg.Lookup(WaveMachineName)
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if e.Name != WaveMachineName {
		t.Errorf("Lookup() = %q", e.Name)
	}

	_, err = reg.Lookup("Dam break")
	if !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("expected ErrUnknownScenario, got %v", err)
	}
	if reg.Index("Dam break") != -1 {
		t.Error("Index() of unknown name should be -1")
	}

	if reg.At(-1).Name != WaveMachineName || reg.At(2).Name != FaucetName {
		t.Errorf("At() does not wrap: %q %q", reg.At(-1).Name, reg.At(2).Name)
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	reg := NewRegistry()
	f := func() (Scenario, error) { return NewFaucet(Env{}) }
	if err := reg.Register("Particles", "", f); err == nil {
		t.Error("empty name accepted")
	}
	if err := reg.Register("Particles", "x", nil); err == nil {
		t.Error("nil factory accepted")
	}
	if err := reg.Register("Particles", "x", f); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := reg.Register("Other", "x", f); err == nil {
		t.Error("duplicate name accepted")
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

// TestRegistry_FactoriesBuildIdenticalInstances tests that every construction starts from the same state
func TestRegistry_FactoriesBuildIdenticalInstances(t *testing.T) {
	reg := NewRegistry()
	if err := RegisterBuiltins(reg, Env{Seed: 7, Parameter: NewParameter()}); err != nil {
		t.Fatalf("RegisterBuiltins() error: %v", err)
	}
	entry, _ := reg.Lookup(FaucetName)

	run := func() *Faucet {
		sc, err := entry.Factory()
		if err != nil {
			t.Fatalf("factory error: %v", err)
		}
		s := &Settings{Hertz: 60, VelocityIterations: 8, PositionIterations: 3}
		for i := 0; i < 30; i++ {
			sc.Step(s)
		}
		return sc.(*Faucet)
	}

	a, b := run(), run()
	if a == b {
		t.Fatal("factory returned the same instance twice")
	}
	pa, pb := a.Particles(), b.Particles()
	if pa.Count() == 0 || pa.Count() != pb.Count() {
		t.Fatalf("counts differ: %d vs %d", pa.Count(), pb.Count())
	}
	for i := 0; i < pa.Count(); i++ {
		if pa.Position(i) != pb.Position(i) || pa.ParticleLifetime(i) != pb.ParticleLifetime(i) {
			t.Fatalf("particle %d differs", i)
		}
	}
}
