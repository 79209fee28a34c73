// Package app is the ebiten front end of the particle testbed.
//
// It polls the keyboard, applies testbed controls (pause, single step,
// restart, scenario and particle type selection), forwards every other
// key to the running scenario and draws the world with debug primitives.
package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/decker502/particlebed/pkg/config"
	"github.com/decker502/particlebed/pkg/game"
	"github.com/decker502/particlebed/pkg/scenario"
)

// hertzStep is the tick rate change per Home/End press.
const hertzStep = 10

// Config holds what NewApp needs besides the testbed configuration.
type Config struct {
	// Testbed is the loaded configuration.
	Testbed *config.Config

	// Settings persists the live settings. nil keeps them in memory.
	Settings *game.SettingsManager

	// Saveables are saved when the testbed quits, after Settings.
	Saveables []game.Saveable

	Logger *zap.Logger
}

// App implements ebiten.Game.
type App struct {
	scenarios *game.ScenarioManager
	settings  *game.SettingsManager
	saveables []game.Saveable
	logger    *zap.Logger

	camera    Camera
	drag      drag
	keys      []ebiten.Key
	showHelp  bool
	width     int
	height    int
	lastError error
	saved     bool
}

// NewApp builds the registry and starts the scenario named in the settings.
func NewApp(cfg Config) (*App, error) {
	if cfg.Testbed == nil {
		cfg.Testbed = config.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Settings == nil {
		sm, err := game.NewSettingsManager(nil, scenario.DefaultSettings(cfg.Testbed.Testbed), cfg.Logger)
		if err != nil {
			return nil, err
		}
		cfg.Settings = sm
	}
	logger := cfg.Logger.Named("app")
	settings := cfg.Settings.GetSettings()

	parameter := scenario.NewParameter()
	if settings.ParticleType != "" && !parameter.SelectName(settings.ParticleType) {
		logger.Warn("unknown particle type, using default",
			zap.String("particleType", settings.ParticleType))
	}

	registry := scenario.NewRegistry()
	env := scenario.Env{
		Logger:    cfg.Logger,
		Config:    cfg.Testbed,
		Seed:      cfg.Testbed.Testbed.Seed,
		Parameter: parameter,
	}
	if err := scenario.RegisterBuiltins(registry, env); err != nil {
		return nil, fmt.Errorf("register scenarios: %w", err)
	}

	a := &App{
		scenarios: game.NewScenarioManager(registry, parameter, settings, cfg.Logger),
		settings:  cfg.Settings,
		saveables: append([]game.Saveable{cfg.Settings}, cfg.Saveables...),
		logger:    logger,
		showHelp:  true,
		width:     cfg.Testbed.Testbed.WindowWidth,
		height:    cfg.Testbed.Testbed.WindowHeight,
	}

	name := settings.Scenario
	if registry.Index(name) < 0 {
		logger.Warn("unknown scenario, starting the first one", zap.String("scenario", name))
		name = registry.At(0).Name
	}
	if err := a.scenarios.Load(name); err != nil {
		return nil, err
	}
	a.resetCamera()

	logger.Info("testbed started",
		zap.String("scenario", name),
		zap.Float64("hertz", settings.Hertz))
	return a, nil
}

func (a *App) resetCamera() {
	a.camera = NewCamera(a.scenarios.Current().DefaultViewZoom(), a.width, a.height)
}

// Update polls input and steps the running scenario once.
func (a *App) Update() error {
	a.drag.update(&a.camera, readPointer())
	if _, dy := ebiten.Wheel(); dy != 0 {
		a.camera.ZoomBy(wheelZoom(dy))
	}

	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, key := range a.keys {
		if err := a.HandleKey(key); err != nil {
			return err
		}
	}

	if err := a.scenarios.Update(); err != nil {
		a.logger.Error("scenario update failed", zap.Error(err))
		return err
	}
	return nil
}

// HandleKey applies a testbed control or forwards the key to the scenario.
// It returns ebiten.Termination when the testbed should quit.
func (a *App) HandleKey(key ebiten.Key) error {
	var err error
	switch key {
	case ebiten.KeyEscape:
		a.SaveOnExit()
		return ebiten.Termination
	case ebiten.KeyF11:
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	case ebiten.KeyP:
		a.settings.TogglePause()
	case ebiten.KeyO:
		a.settings.RequestSingleStep()
	case ebiten.KeyHome:
		a.settings.SetHertz(a.settings.GetSettings().Hertz + hertzStep)
	case ebiten.KeyEnd:
		a.settings.SetHertz(a.settings.GetSettings().Hertz - hertzStep)
	case ebiten.KeyR:
		err = a.scenarios.Restart()
	case ebiten.KeyBracketLeft:
		err = a.scenarios.Prev()
		a.resetCamera()
	case ebiten.KeyBracketRight:
		err = a.scenarios.Next()
		a.resetCamera()
	case ebiten.KeyComma:
		p := a.scenarios.Parameter()
		p.Select(p.Index() - 1)
	case ebiten.KeyPeriod:
		p := a.scenarios.Parameter()
		p.Select(p.Index() + 1)
	case ebiten.KeyH:
		a.showHelp = !a.showHelp
	case ebiten.KeyZ:
		a.camera.ZoomBy(1.1)
	case ebiten.KeyX:
		a.camera.ZoomBy(1 / 1.1)
	default:
		a.scenarios.Keyboard(key)
	}
	if err != nil {
		a.lastError = err
		a.logger.Error("testbed control failed", zap.Stringer("key", key), zap.Error(err))
	}
	return nil
}

// SaveOnExit saves the settings and every other Saveable. Only the first
// call saves.
func (a *App) SaveOnExit() {
	if a.saved {
		return
	}
	a.saved = true
	for _, s := range a.saveables {
		if !s.SaveOnExit() {
			a.logger.Warn("save on exit failed")
		}
	}
}

// Draw renders the world, the particles and the text overlay.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff})
	sc := a.scenarios.Current()
	if sc == nil {
		return
	}
	drawWorld(screen, a.camera, sc.World())
	drawParticles(screen, a.camera, sc.Particles())
	drawOverlay(screen, a.overlayLines())
}

// Layout returns the fixed logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Scenarios returns the scenario manager.
func (a *App) Scenarios() *game.ScenarioManager {
	return a.scenarios
}

// Camera returns the current view.
func (a *App) Camera() Camera {
	return a.camera
}

// Close stops the running scenario.
func (a *App) Close() {
	a.scenarios.Close()
}
