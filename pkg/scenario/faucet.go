package scenario

import (
	"github.com/ByteArena/box2d"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/particlebed/pkg/config"
	"github.com/decker502/particlebed/pkg/emitter"
	"github.com/decker502/particlebed/pkg/particle"
)

// FaucetName is the registered name of the faucet scenario.
const FaucetName = "Faucet"

// FaucetParameterValues are the particle types the faucet offers.
var FaucetParameterValues = []ParameterValue{
	{particle.Water, 0, "water"},
	{particle.Water, OptionStrictContacts, "water (strict)"},
	{particle.Viscous, 0, "viscous"},
	{particle.Powder, 0, "powder"},
	{particle.Tensile, 0, "tensile"},
	{particle.ColorMixing, 0, "color mixing"},
	{particle.StaticPressure, 0, "static pressure"},
}

var faucetHelp = []string{
	"Keys: (w) water, (q) powder",
	"      (t) tensile, (v) viscous",
	"      (c) color mixing, (s) static pressure",
	"      (+) increase flow, (-) decrease flow",
	"      (space) shut off / reopen",
}

// faucetKeys maps particle type keys to flags.
var faucetKeys = map[ebiten.Key]particle.Flags{
	ebiten.KeyW: particle.Water,
	ebiten.KeyQ: particle.Powder,
	ebiten.KeyT: particle.Tensile,
	ebiten.KeyV: particle.Viscous,
	ebiten.KeyC: particle.ColorMixing,
	ebiten.KeyS: particle.StaticPressure,
}

// Faucet pours finite-lifetime particles from a spout into a trough.
// Changing the particle type does not restart it: new particles take the
// new type while old ones keep theirs.
type Faucet struct {
	Base

	cfg      config.FaucetConfig
	emitter  *emitter.Emitter
	lifetime *emitter.LifetimeRandomizer

	// colorPhase cycles through the palette, one color per second.
	colorPhase float64

	// shutOffRate is the rate restored when the faucet is reopened.
	shutOffRate float64
}

// NewFaucet builds the faucet scenario.
func NewFaucet(env Env) (*Faucet, error) {
	cfg := env.config().Faucet
	f := &Faucet{
		Base: newBase(env, FaucetName),
		cfg:  cfg,
	}
	f.parameter.Restrict(FaucetParameterValues)

	ps := f.particles
	ps.SetRadius(cfg.ParticleRadius)
	ps.SetMaxParticleCount(cfg.MaxParticleCount)
	ps.SetDestructionByAge(cfg.DestructionByAge)

	ground := f.world.StaticBody()

	// Trough.
	height := cfg.ContainerHeight + cfg.ContainerThickness
	f.world.AddBox(ground, cfg.ContainerWidth-cfg.ContainerThickness, cfg.ContainerThickness,
		box2d.MakeB2Vec2(0, 0), 0)
	f.world.AddBox(ground, cfg.ContainerThickness, height,
		box2d.MakeB2Vec2(-cfg.ContainerWidth, cfg.ContainerHeight), 0)
	f.world.AddBox(ground, cfg.ContainerThickness, height,
		box2d.MakeB2Vec2(cfg.ContainerWidth, cfg.ContainerHeight), 0)

	// Ground under the trough catches the overflow.
	f.world.AddBox(ground, cfg.ContainerWidth*5, cfg.ContainerThickness,
		box2d.MakeB2Vec2(0, cfg.ContainerThickness*-2), 0)

	// Spout.
	diameter := ps.Radius() * 2
	faucetLength := cfg.FaucetLength * diameter
	{
		length := faucetLength * cfg.SpoutLength
		width := cfg.ContainerWidth * cfg.FaucetWidth * cfg.SpoutWidth
		h := cfg.ContainerHeight*cfg.FaucetHeight + length*0.5
		f.world.AddBox(ground, diameter, length, box2d.MakeB2Vec2(-width, h), 0)
		f.world.AddBox(ground, diameter, length, box2d.MakeB2Vec2(width, h), 0)
		f.world.AddBox(ground, width-diameter, diameter, box2d.MakeB2Vec2(0, h+length-diameter), 0)
	}

	rng := env.rand(1)
	f.lifetime = emitter.NewLifetimeRandomizer(cfg.ParticleLifetime.Min, cfg.ParticleLifetime.Max, rng)

	e := emitter.New(rng, f.logger)
	e.SetParticleSystem(ps)
	e.SetHook(f.lifetime)
	e.SetPosition(box2d.MakeB2Vec2(cfg.ContainerWidth*cfg.FaucetWidth,
		cfg.ContainerHeight*cfg.FaucetHeight+faucetLength*0.5))
	e.SetVelocity(box2d.MakeB2Vec2(0, 0))
	e.SetSize(box2d.MakeB2Vec2(0, faucetLength))
	e.SetColor(particle.White)
	e.SetMaxEmitRate(cfg.MaxEmitRate)
	e.SetEmitRate(cfg.EmitRate)
	e.SetFlags(f.parameter.Value().Flags)
	f.emitter = e

	f.logger.Info("faucet created",
		zap.Float64("emitRate", e.EmitRate()),
		zap.Int("maxParticles", cfg.MaxParticleCount),
		zap.String("particleType", f.parameter.Value().Name))
	return f, nil
}

// Step advances the simulation, updates the emitted particle type and
// color, then emits.
func (f *Faucet) Step(s *Settings) {
	dt := f.advance(s)

	n := float64(len(particle.Palette))
	f.colorPhase += dt
	for f.colorPhase >= n {
		f.colorPhase -= n
	}

	// The selection may have changed since the last tick.
	flags := f.parameter.Value().Flags
	f.emitter.SetFlags(flags)
	if flags.Has(particle.ColorMixing) {
		f.emitter.SetColor(particle.PaletteColor(int(f.colorPhase)))
	} else {
		f.emitter.SetColor(particle.White)
	}

	f.emitter.Step(dt, nil)
}

// Keyboard selects particle types and adjusts the flow.
func (f *Faucet) Keyboard(key ebiten.Key) {
	if flags, ok := faucetKeys[key]; ok {
		f.parameter.SelectFlags(flags)
		return
	}
	switch key {
	case ebiten.KeyEqual, ebiten.KeyNumpadAdd:
		f.IncreaseFlow()
	case ebiten.KeyMinus, ebiten.KeyNumpadSubtract:
		f.DecreaseFlow()
	case ebiten.KeySpace:
		f.ToggleFlow()
	}
}

// IncreaseFlow multiplies the rate by the change factor and raises it to
// at least the minimum rate.
func (f *Faucet) IncreaseFlow() {
	rate := f.emitter.EmitRate() * f.cfg.EmitRateChangeFactor
	f.emitter.SetEmitRate(max(rate, f.cfg.EmitRateMin))
}

// DecreaseFlow divides the rate by the change factor and lowers it to at
// most the maximum rate.
func (f *Faucet) DecreaseFlow() {
	rate := f.emitter.EmitRate() / f.cfg.EmitRateChangeFactor
	f.emitter.SetEmitRate(min(rate, f.cfg.EmitRateMax))
}

// ToggleFlow shuts the faucet off, or reopens it at the rate it had.
func (f *Faucet) ToggleFlow() {
	if rate := f.emitter.EmitRate(); rate > 0 {
		f.shutOffRate = rate
		f.emitter.SetEmitRate(0)
		f.logger.Debug("faucet shut off", zap.Float64("emitRate", rate))
		return
	}
	rate := f.shutOffRate
	if rate <= 0 {
		rate = f.cfg.EmitRate
	}
	f.emitter.SetEmitRate(rate)
	f.logger.Debug("faucet reopened", zap.Float64("emitRate", rate))
}

// Flowing reports whether the faucet emits.
func (f *Faucet) Flowing() bool {
	return f.emitter.EmitRate() > 0
}

// Emitter returns the faucet's emitter.
func (f *Faucet) Emitter() *emitter.Emitter {
	return f.emitter
}

// ColorPhase returns the palette phase in [0, len(Palette)).
func (f *Faucet) ColorPhase() float64 {
	return f.colorPhase
}

func (f *Faucet) Help() []string { return faucetHelp }

func (f *Faucet) DefaultViewZoom() float64 { return 0.1 }

func (f *Faucet) RestartOnParameterChange() bool { return false }
