package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/particlebed/pkg/particle"
	"github.com/decker502/particlebed/pkg/physics"
)

const lineHeight = 16

var (
	staticColor  = color.RGBA{R: 0x80, G: 0xe6, B: 0x80, A: 0xff}
	dynamicColor = color.RGBA{R: 0xe6, G: 0xb2, B: 0xb2, A: 0xff}
)

var testbedHelp = []string{
	"(p) pause, (o) single step, (r) restart",
	"([) / (]) scenario, (,) / (.) particle type",
	"(home) / (end) hertz, (z) / (x) zoom",
	"(h) help, (f11) fullscreen, (esc) quit",
}

func drawWorld(screen *ebiten.Image, cam Camera, w *physics.World) {
	if w == nil {
		return
	}
	for _, b := range w.Boxes() {
		clr := staticColor
		if b.Body.GetMass() > 0 {
			clr = dynamicColor
		}
		corners := b.Corners()
		for i := range corners {
			x0, y0 := cam.WorldToScreen(corners[i])
			x1, y1 := cam.WorldToScreen(corners[(i+1)%len(corners)])
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, false)
		}
	}
}

func drawParticles(screen *ebiten.Image, cam Camera, ps *particle.System) {
	if ps == nil {
		return
	}
	size := float32(ps.Radius() * 2 * cam.Scale())
	if size < 1 {
		size = 1
	}
	colors := ps.Colors()
	for i, p := range ps.Positions() {
		x, y := cam.WorldToScreen(p)
		vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, colors[i], false)
	}
}

func drawOverlay(screen *ebiten.Image, lines []string) {
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 5, 5+i*lineHeight)
	}
}

// overlayLines builds the text drawn in the top left corner.
func (a *App) overlayLines() []string {
	sc := a.scenarios.Current()
	s := a.settings.GetSettings()

	state := "running"
	switch {
	case s.Hertz <= 0:
		state = "stopped (0 Hz)"
	case s.Pause:
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("%s  [%s]  %.0f Hz  %.0f FPS", sc.Name(), state, s.Hertz, ebiten.ActualFPS()),
		fmt.Sprintf("particle type: %s  particles: %d", a.scenarios.Parameter().Value().Name, sc.Particles().Count()),
	}
	if a.lastError != nil {
		lines = append(lines, "error: "+a.lastError.Error())
	}
	if a.showHelp {
		lines = append(lines, testbedHelp...)
		lines = append(lines, sc.Help()...)
	}
	return lines
}
