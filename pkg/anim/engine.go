// Package anim renders the ghost's live state indicator. Two engines share
// one contract: a proximity point-graph and a noise-displaced surface. Both
// are driven by the same debounced state machine and are swappable without
// the caller caring which is active.
package anim

import (
	"fmt"
	"time"
)

// Engine is the shared contract implemented by both animation variants.
// The host owns the tick cadence: it calls Step once per frame and View for
// the latest frame. All methods are called from the host's single update
// thread; engines start no goroutines of their own.
type Engine interface {
	// Init builds the fixed particle/mesh structures. Without bounds from a
	// prior Resize the engine stays dormant and View returns "". Never
	// panics past the caller.
	Init()
	// Destroy releases frame resources. Idempotent; Destroy on an engine
	// that was never initialized is a no-op.
	Destroy()

	SetWorkingState(active bool)
	SetWaitingState(active bool)

	// TriggerSpike forces the error channel to full, returning to zero
	// after a fixed two-second window.
	TriggerSpike()
	// TriggerPulse bumps transient render magnitude with an optional tint.
	// It never touches control-state targets.
	TriggerPulse(color string)
	TriggerSmallPulse()
	// TriggerNextColor advances the internal palette cursor one step and
	// raises the color-blend channel consumed by the per-frame hue
	// interpolation.
	TriggerNextColor()
	// UpdateSphereColor retints the base hue where the variant supports it;
	// kept on the contract for API symmetry and may be a no-op.
	UpdateSphereColor(color string)

	// Resize sets the drawing bounds (the terminal-host analogue of
	// container sizing)
	Resize(width, height int)
	// Step advances the debounce machinery, smoothing and geometry by one
	// frame
	Step(now time.Time)
	// View returns the latest rendered frame
	View() string
}

// Engine kinds selectable by configuration
const (
	KindGraph   = "graph"
	KindSurface = "surface"
)

// New constructs an engine by kind. Selection happens here, once; callers
// hold only the interface.
func New(kind string) (Engine, error) {
	switch kind {
	case KindGraph, "":
		return NewGraphEngine(), nil
	case KindSurface:
		return NewSurfaceEngine(), nil
	default:
		return nil, fmt.Errorf("unknown engine kind %q", kind)
	}
}
