package scenario

import (
	"errors"
	"fmt"
)

// ErrUnknownScenario is returned when a name is not registered.
var ErrUnknownScenario = errors.New("unknown scenario")

// Factory builds a fresh scenario instance.
type Factory func() (Scenario, error)

// Entry is one registered scenario.
type Entry struct {
	Category string
	Name     string
	Factory  Factory
}

// Registry lists the scenarios in registration order.
type Registry struct {
	entries []Entry
	byName  map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a scenario. Names must be unique.
func (r *Registry) Register(category, name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("register scenario %q: name and factory are required", name)
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("register scenario %q: already registered", name)
	}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, Entry{Category: category, Name: name, Factory: f})
	return nil
}

// Entries returns every entry in registration order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Index returns the position of name, or -1.
func (r *Registry) Index(name string) int {
	if i, ok := r.byName[name]; ok {
		return i
	}
	return -1
}

// At returns the entry at i, wrapping around in both directions.
func (r *Registry) At(i int) Entry {
	n := len(r.entries)
	i %= n
	if i < 0 {
		i += n
	}
	return r.entries[i]
}

// Lookup returns the entry called name.
func (r *Registry) Lookup(name string) (Entry, error) {
	i := r.Index(name)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return r.entries[i], nil
}

// RegisterBuiltins registers the bundled scenarios. Every factory call
// builds a new instance from env.
func RegisterBuiltins(r *Registry, env Env) error {
	builtins := []Entry{
		{"Particles", FaucetName, func() (Scenario, error) {
			f, err := NewFaucet(env)
			if err != nil {
				return nil, err
			}
			return f, nil
		}},
		{"Particles", WaveMachineName, func() (Scenario, error) {
			w, err := NewWaveMachine(env)
			if err != nil {
				return nil, err
			}
			return w, nil
		}},
	}
	for _, e := range builtins {
		if err := r.Register(e.Category, e.Name, e.Factory); err != nil {
			return err
		}
	}
	return nil
}
