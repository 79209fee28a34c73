package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/particlebed/pkg/scenario"
)

// ScenarioManager owns the running scenario. Only one scenario is alive
// at a time; switching or restarting closes the previous one.
type ScenarioManager struct {
	registry  *scenario.Registry
	parameter *scenario.Parameter
	settings  *scenario.Settings
	logger    *zap.Logger

	current scenario.Scenario
	index   int
}

// NewScenarioManager creates a manager with no running scenario; call
// Load to start one.
func NewScenarioManager(registry *scenario.Registry, parameter *scenario.Parameter, settings *scenario.Settings, logger *zap.Logger) *ScenarioManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioManager{
		registry:  registry,
		parameter: parameter,
		settings:  settings,
		logger:    logger.Named("scenarios"),
		index:     -1,
	}
}

// Load starts the scenario called name.
func (sm *ScenarioManager) Load(name string) error {
	i := sm.registry.Index(name)
	if i < 0 {
		_, err := sm.registry.Lookup(name)
		return err
	}
	return sm.LoadIndex(i)
}

// LoadIndex starts the scenario at registry position i. Indices wrap.
func (sm *ScenarioManager) LoadIndex(i int) error {
	if sm.registry.Len() == 0 {
		return fmt.Errorf("load scenario: registry is empty")
	}
	entry := sm.registry.At(i)

	if sm.current != nil && sm.current.Name() != entry.Name {
		// Each scenario starts from the full particle type list.
		sm.parameter.Reset()
	}
	next, err := entry.Factory()
	if err != nil {
		return fmt.Errorf("load scenario %q: %w", entry.Name, err)
	}
	sm.parameter.Changed()

	if sm.current != nil {
		sm.current.Close()
	}
	sm.current = next
	sm.index = sm.registry.Index(entry.Name)
	sm.settings.Scenario = entry.Name
	sm.settings.ParticleType = sm.parameter.Value().Name

	sm.logger.Info("scenario loaded",
		zap.String("scenario", entry.Name),
		zap.String("particleType", sm.settings.ParticleType))
	return nil
}

// Restart rebuilds the running scenario.
func (sm *ScenarioManager) Restart() error {
	if sm.current == nil {
		return fmt.Errorf("restart: no scenario loaded")
	}
	return sm.LoadIndex(sm.index)
}

// Next starts the scenario after the running one.
func (sm *ScenarioManager) Next() error {
	return sm.LoadIndex(sm.index + 1)
}

// Prev starts the scenario before the running one.
func (sm *ScenarioManager) Prev() error {
	return sm.LoadIndex(sm.index - 1)
}

// Current returns the running scenario, or nil.
func (sm *ScenarioManager) Current() scenario.Scenario {
	return sm.current
}

// Settings returns the settings scenarios are stepped with.
func (sm *ScenarioManager) Settings() *scenario.Settings {
	return sm.settings
}

// Parameter returns the particle type selector.
func (sm *ScenarioManager) Parameter() *scenario.Parameter {
	return sm.parameter
}

// Keyboard forwards a key press to the running scenario.
func (sm *ScenarioManager) Keyboard(key ebiten.Key) {
	if sm.current != nil {
		sm.current.Keyboard(key)
	}
}

// Update applies a pending particle type change, restarting the scenario
// if it asks for that, then steps it once.
func (sm *ScenarioManager) Update() error {
	if sm.current == nil {
		return nil
	}
	if sm.parameter.Changed() {
		sm.settings.ParticleType = sm.parameter.Value().Name
		sm.logger.Debug("particle type changed", zap.String("particleType", sm.settings.ParticleType))
		if sm.current.RestartOnParameterChange() {
			if err := sm.Restart(); err != nil {
				return err
			}
		}
	}
	sm.current.Step(sm.settings)
	return nil
}

// Close stops the running scenario.
func (sm *ScenarioManager) Close() {
	if sm.current != nil {
		sm.current.Close()
		sm.current = nil
	}
}
