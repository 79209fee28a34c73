package emitter

import "math/rand/v2"

// LifetimeRandomizer assigns each created particle a lifetime drawn
// uniformly from [Min, Max] seconds.
type LifetimeRandomizer struct {
	min, max float64
	rng      *rand.Rand
}

// NewLifetimeRandomizer creates a randomizer. Swapped bounds are reordered.
func NewLifetimeRandomizer(min, max float64, rng *rand.Rand) *LifetimeRandomizer {
	if min > max {
		min, max = max, min
	}
	return &LifetimeRandomizer{min: min, max: max, rng: rng}
}

// ParticleCreated sets the lifetime of the new particle.
func (r *LifetimeRandomizer) ParticleCreated(sys ParticleSystem, index int) {
	sys.SetParticleLifetime(index, r.min+r.rng.Float64()*(r.max-r.min))
}

// Bounds returns the lifetime range.
func (r *LifetimeRandomizer) Bounds() (min, max float64) {
	return r.min, r.max
}
