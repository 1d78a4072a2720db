package anim

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Engine hues. The cycling palette feeds the background glow / active color
// so long idle periods still drift through hues instead of sitting static.
var cyclePalette = []string{
	"#4dd8e8", // cyan
	"#b07aff", // violet
	"#69d98a", // green
	"#e8c84d", // amber
	"#5e8bff", // blue
}

const (
	baseHue   = "#2c3e66"
	activeHue = "#7de2ff"
	errorHue  = "#ff4d5e"
)

// Palette owns the color-cycle cursor consumed by TriggerNextColor and the
// constant-cadence background cycle.
type Palette struct {
	cursor int
}

// Next advances the palette cursor by one step
func (p *Palette) Next() {
	p.cursor = (p.cursor + 1) % len(cyclePalette)
}

// Current returns the color under the cursor
func (p *Palette) Current() string {
	return cyclePalette[p.cursor]
}

// CycleAt interpolates through the palette at a constant cadence, t in
// seconds. Decoupled from activity state.
func (p *Palette) CycleAt(t float64) string {
	n := float64(len(cyclePalette))
	pos := math.Mod(t*0.12, n)
	if pos < 0 {
		pos += n
	}
	i := int(pos) % len(cyclePalette)
	j := (i + 1) % len(cyclePalette)
	return blendHex(cyclePalette[i], cyclePalette[j], pos-math.Floor(pos))
}

// blendHex mixes two hex colors in Luv space, which keeps perceived
// brightness stable mid-blend.
func blendHex(a, b string, t float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		if errA == nil {
			return a
		}
		return b
	}
	return ca.BlendLuv(cb, clamp01(t)).Clamped().Hex()
}
