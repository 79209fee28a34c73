package particle

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
	"go.uber.org/zap"
)

// stride is the lattice spacing of group particles as a fraction of the diameter.
const stride = 0.75

// GroupDef describes a block of particles filling an axis-aligned box.
type GroupDef struct {
	Flags      Flags
	Center     box2d.B2Vec2
	HalfWidth  float64
	HalfHeight float64
	Velocity   box2d.B2Vec2
	Color      Color
	Lifetime   float64
}

// Group is a set of particles created together.
type Group struct {
	flags Flags
	count int
}

// Flags returns the flags the group was created with.
func (g *Group) Flags() Flags {
	return g.flags
}

// Count returns the number of live particles in the group.
func (g *Group) Count() int {
	return g.count
}

// CreateParticleGroup fills def's box with particles on a lattice aligned to
// the particle stride. If the store fills up the group is truncated and the
// returned error wraps ErrMaxParticles; the partial group is still returned.
func (s *System) CreateParticleGroup(def GroupDef) (*Group, error) {
	g := &Group{flags: def.Flags}
	step := s.radius * 2 * stride
	if step <= 0 {
		return g, fmt.Errorf("create particle group: invalid radius %g", s.radius)
	}

	lowerX, upperX := def.Center.X-def.HalfWidth, def.Center.X+def.HalfWidth
	lowerY, upperY := def.Center.Y-def.HalfHeight, def.Center.Y+def.HalfHeight
	for y := math.Floor(lowerY/step) * step; y < upperY; y += step {
		if y < lowerY {
			continue
		}
		for x := math.Floor(lowerX/step) * step; x < upperX; x += step {
			if x < lowerX {
				continue
			}
			_, err := s.CreateParticle(Def{
				Flags:    def.Flags,
				Position: box2d.MakeB2Vec2(x, y),
				Velocity: def.Velocity,
				Color:    def.Color,
				Lifetime: def.Lifetime,
				Group:    g,
			})
			if err != nil {
				s.logger.Warn("particle group truncated", zap.Int("created", g.count))
				return g, fmt.Errorf("create particle group: %w", err)
			}
		}
	}

	s.logger.Debug("created particle group",
		zap.Stringer("flags", def.Flags),
		zap.Int("count", g.count))
	return g, nil
}

// ColorParticleGroup assigns palette colors to the group's particles in
// bands of particlesPerColor. 0 spreads the whole palette evenly over the group.
func (s *System) ColorParticleGroup(g *Group, particlesPerColor int) {
	if g == nil || g.count == 0 {
		return
	}
	if particlesPerColor <= 0 {
		particlesPerColor = g.count / len(Palette)
		if particlesPerColor == 0 {
			particlesPerColor = 1
		}
	}
	k := 0
	for i, owner := range s.groups {
		if owner != g {
			continue
		}
		s.colors[i] = PaletteColor(k / particlesPerColor)
		k++
	}
}
