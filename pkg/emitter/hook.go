package emitter

// Hook is notified once for every particle an Emitter creates, synchronously
// and before the next particle of the same tick is created.
type Hook interface {
	ParticleCreated(sys ParticleSystem, index int)
}

// HookFunc adapts a plain function to Hook.
type HookFunc func(sys ParticleSystem, index int)

// ParticleCreated calls f(sys, index).
func (f HookFunc) ParticleCreated(sys ParticleSystem, index int) {
	f(sys, index)
}

// Hooks fans a notification out to several hooks in order.
type Hooks []Hook

// ParticleCreated notifies every non-nil hook.
func (hs Hooks) ParticleCreated(sys ParticleSystem, index int) {
	for _, h := range hs {
		if h != nil {
			h.ParticleCreated(sys, index)
		}
	}
}
