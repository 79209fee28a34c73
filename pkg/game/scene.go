package game

// Saveable is implemented by components that persist state when the
// testbed window closes.
type Saveable interface {
	// SaveOnExit saves state. false means saving failed; the testbed
	// still exits.
	SaveOnExit() bool
}
