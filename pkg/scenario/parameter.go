package scenario

import "github.com/decker502/particlebed/pkg/particle"

// Options modify how a particle type is simulated beyond its flags.
type Options uint32

const (
	// OptionStrictContacts enables the particle store's strict contact check.
	OptionStrictContacts Options = 1 << iota
)

// ParameterValue is one selectable particle type.
type ParameterValue struct {
	Flags   particle.Flags
	Options Options
	Name    string
}

// DefaultParameterValues lists every particle type a scenario can select
// unless it restricts the list.
var DefaultParameterValues = []ParameterValue{
	{particle.Water, 0, "water"},
	{particle.Water, OptionStrictContacts, "water (strict)"},
	{particle.Spring, 0, "spring"},
	{particle.Elastic, 0, "elastic"},
	{particle.Viscous, 0, "viscous"},
	{particle.Powder, 0, "powder"},
	{particle.Tensile, 0, "tensile"},
	{particle.ColorMixing, 0, "color mixing"},
	{particle.Wall, 0, "wall"},
	{particle.Barrier | particle.Wall, 0, "barrier"},
	{particle.StaticPressure, 0, "static pressure"},
	{particle.Repulsive | particle.Wall, 0, "repulsive wall"},
	{particle.Reactive, 0, "reactive"},
}

// Parameter is the particle type selector. It outlives scenario restarts
// so the selection survives them.
type Parameter struct {
	values  []ParameterValue
	index   int
	changed bool
}

// NewParameter creates a selector over DefaultParameterValues with the
// first value selected.
func NewParameter() *Parameter {
	return &Parameter{values: DefaultParameterValues}
}

// Values returns the selectable values.
func (p *Parameter) Values() []ParameterValue {
	return p.values
}

// Index returns the index of the selected value.
func (p *Parameter) Index() int {
	return p.index
}

// Value returns the selected value.
func (p *Parameter) Value() ParameterValue {
	return p.values[p.index]
}

// Select selects values[i]. Out of range indices wrap around, so the
// testbed can cycle with i+1 and i-1.
func (p *Parameter) Select(i int) {
	n := len(p.values)
	i %= n
	if i < 0 {
		i += n
	}
	if i != p.index {
		p.index = i
		p.changed = true
	}
}

// SelectFlags selects the first value with exactly flags f and reports
// whether one exists.
func (p *Parameter) SelectFlags(f particle.Flags) bool {
	for i, v := range p.values {
		if v.Flags == f {
			p.Select(i)
			return true
		}
	}
	return false
}

// SelectName selects the value called name and reports whether one exists.
func (p *Parameter) SelectName(name string) bool {
	for i, v := range p.values {
		if v.Name == name {
			p.Select(i)
			return true
		}
	}
	return false
}

// Restrict limits the selectable values. The current selection is kept
// when its name is still available, otherwise the first value is selected.
// An empty list restores the defaults.
func (p *Parameter) Restrict(values []ParameterValue) {
	if len(values) == 0 {
		values = DefaultParameterValues
	}
	name := p.Value().Name
	p.values = values
	p.index = 0
	for i, v := range values {
		if v.Name == name {
			p.index = i
			break
		}
	}
}

// Reset restores the default value list, keeping the selection by name.
func (p *Parameter) Reset() {
	p.Restrict(nil)
}

// Changed reports whether the selection changed since the last call.
func (p *Parameter) Changed() bool {
	c := p.changed
	p.changed = false
	return c
}
