package particle

import "image/color"

// Color is an 8-bit RGBA particle color.
type Color struct {
	R, G, B, A uint8
}

// White is the opaque white used for particles that do not mix colors.
var White = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Palette is the fixed color cycle used for color-mixing particles.
var Palette = [...]Color{
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // red
	{R: 0x00, G: 0xff, B: 0x00, A: 0xff}, // green
	{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, // blue
	{R: 0xff, G: 0x8c, B: 0x00, A: 0xff}, // orange
	{R: 0x00, G: 0xce, B: 0xd1, A: 0xff}, // turquoise
	{R: 0xff, G: 0x00, B: 0xff, A: 0xff}, // magenta
	{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, // gold
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff}, // cyan
}

// PaletteColor returns the palette entry for i, wrapping in both directions.
func PaletteColor(i int) Color {
	n := len(Palette)
	i %= n
	if i < 0 {
		i += n
	}
	return Palette[i]
}

// RGBA implements color.Color so particle colors can be handed to ebiten directly.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}
