package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/decker502/particlebed/pkg/scenario"
)

// Storage location of the persisted settings.
const (
	settingsObject   = "settings"
	settingsProperty = "testbed"
)

// MaxHertz bounds the tick rate the testbed can be set to.
const MaxHertz = 240

// SettingsManager loads, holds and saves the testbed settings.
//
// Only the tick rate, iteration counts and the selected scenario and
// particle type are persisted; pause state is not.
type SettingsManager struct {
	gdataManager *gdata.Manager // nil runs in memory only
	defaults     scenario.Settings
	settings     *scenario.Settings
	logger       *zap.Logger
}

// NewSettingsManager creates a settings manager and loads saved settings.
//
// Parameters:
//   - gdataManager: cross-platform storage, may be nil (memory only)
//   - defaults: values used for anything not saved yet
//   - logger: may be nil
//
// A failed load is logged and leaves the defaults in place.
func NewSettingsManager(gdataManager *gdata.Manager, defaults *scenario.Settings, logger *zap.Logger) (*SettingsManager, error) {
	if defaults == nil {
		return nil, fmt.Errorf("settings manager: defaults are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     *defaults,
		logger:       logger.Named("settings"),
	}
	sm.reset()

	if err := sm.Load(); err != nil {
		sm.logger.Warn("failed to load settings, using defaults", zap.Error(err))
	}
	return sm, nil
}

func (sm *SettingsManager) reset() {
	s := sm.defaults
	sm.settings = &s
}

// Load reads the settings from storage. Missing storage or a missing
// entry leaves the defaults. Keys absent from the saved entry keep their
// default value.
func (sm *SettingsManager) Load() error {
	sm.reset()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := sm.defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.Hertz < 0 || loaded.Hertz > MaxHertz {
		return fmt.Errorf("saved hertz %g out of range [0, %d]", loaded.Hertz, MaxHertz)
	}
	if loaded.VelocityIterations <= 0 || loaded.PositionIterations <= 0 {
		return fmt.Errorf("saved iteration counts must be positive")
	}

	sm.settings = &loaded
	sm.logger.Debug("settings loaded",
		zap.String("scenario", loaded.Scenario),
		zap.String("particleType", loaded.ParticleType))
	return nil
}

// Save writes the settings to storage. Without storage it does nothing.
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.logger.Debug("settings saved")
	return nil
}

// SaveOnExit implements Saveable.
func (sm *SettingsManager) SaveOnExit() bool {
	if err := sm.Save(); err != nil {
		sm.logger.Warn("failed to save settings on exit", zap.Error(err))
		return false
	}
	return true
}

// GetSettings returns the live settings. Scenarios read them every tick.
func (sm *SettingsManager) GetSettings() *scenario.Settings {
	return sm.settings
}

// SetHertz sets the tick rate, clamped to [0, MaxHertz].
func (sm *SettingsManager) SetHertz(hertz float64) {
	sm.settings.Hertz = max(0, min(hertz, MaxHertz))
}

// TogglePause pauses or resumes the simulation.
func (sm *SettingsManager) TogglePause() {
	sm.settings.Pause = !sm.settings.Pause
}

// RequestSingleStep pauses the simulation and advances it by one tick.
func (sm *SettingsManager) RequestSingleStep() {
	sm.settings.Pause = true
	sm.settings.SingleStep = true
}
