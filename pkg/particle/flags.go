package particle

import "strings"

// Flags is the bitset that selects the simulated material behavior of a
// particle. The zero value is plain water.
type Flags uint32

const (
	Water               Flags = 0
	Zombie              Flags = 1 << 1
	Wall                Flags = 1 << 2
	Spring              Flags = 1 << 3
	Elastic             Flags = 1 << 4
	Viscous             Flags = 1 << 5
	Powder              Flags = 1 << 6
	Tensile             Flags = 1 << 7
	ColorMixing         Flags = 1 << 8
	DestructionListener Flags = 1 << 9
	Barrier             Flags = 1 << 10
	StaticPressure      Flags = 1 << 11
	Reactive            Flags = 1 << 12
	Repulsive           Flags = 1 << 13
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{Zombie, "zombie"},
	{Wall, "wall"},
	{Spring, "spring"},
	{Elastic, "elastic"},
	{Viscous, "viscous"},
	{Powder, "powder"},
	{Tensile, "tensile"},
	{ColorMixing, "color mixing"},
	{DestructionListener, "destruction listener"},
	{Barrier, "barrier"},
	{StaticPressure, "static pressure"},
	{Reactive, "reactive"},
	{Repulsive, "repulsive"},
}

// Has reports whether every bit of other is set in f.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// String returns the behavior names joined by "|", or "water" for the zero value.
func (f Flags) String() string {
	if f == Water {
		return "water"
	}
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, "|")
}
