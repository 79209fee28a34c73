// Command particlebed is an interactive testbed for rate-driven particle
// emitters: a faucet pouring finite-lifetime particles into a trough and a
// wave machine sloshing a block of particles in a rotating box.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>     YAML file layered on the embedded defaults
//	--scenario <name>   Start with this scenario (e.g. --scenario="Wave machine")
//	--seed <n>          Random seed for particle placement
//	--verbose           Enable debug logging
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/decker502/particlebed/pkg/app"
	"github.com/decker502/particlebed/pkg/config"
	"github.com/decker502/particlebed/pkg/embedded"
	"github.com/decker502/particlebed/pkg/game"
	"github.com/decker502/particlebed/pkg/logging"
	"github.com/decker502/particlebed/pkg/scenario"
)

// appName names the per-user storage directory used by gdata.
const appName = "particlebed"

var (
	configFlag   = flag.String("config", "", "YAML configuration layered on the embedded defaults")
	scenarioFlag = flag.String("scenario", "", "Scenario to start with (overrides saved settings)")
	seedFlag     = flag.Uint64("seed", 0, "Random seed (0 keeps the configured seed)")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()
	embedded.Init(dataFS)

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Testbed.Seed = *seedFlag
	}

	logger, err := logging.New(logging.Verbose(cfg.Logging, *verboseFlag))
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("testbed failed", zap.Error(err))
	}
	logger.Info("testbed closed")
}

// loadConfig parses the embedded defaults, or path when one is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}
	data, err := embedded.ReadFile(embedded.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}
	return config.ParseConfig(data)
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Settings persistence is optional: without storage the testbed still runs.
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("settings storage unavailable", zap.Error(err))
		store = nil
	}

	settings, err := game.NewSettingsManager(store, scenario.DefaultSettings(cfg.Testbed), logger)
	if err != nil {
		return err
	}
	if *scenarioFlag != "" {
		settings.GetSettings().Scenario = *scenarioFlag
	}

	testbed, err := app.NewApp(app.Config{
		Testbed:  cfg,
		Settings: settings,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize testbed: %w", err)
	}
	defer testbed.Close()

	ebiten.SetWindowSize(cfg.Testbed.WindowWidth, cfg.Testbed.WindowHeight)
	ebiten.SetWindowTitle("Particle Testbed")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(testbed)
	// Closing the window skips the Escape handler.
	testbed.SaveOnExit()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
