package events

import (
	"github.com/vventirozos/GhostAgent-v2/pkg/anim"
	"github.com/vventirozos/GhostAgent-v2/pkg/classify"
)

// Outcome is what an event produced beyond engine calls: the raw signal
// (for the UI flash) and an optional caption from a planner monologue line.
type Outcome struct {
	Signal     classify.Signal
	Caption    string
	HasCaption bool
}

// Apply classifies one event and forwards the result into the engine.
// Called on the host thread, one event at a time, in arrival order; the
// engine sees each event fully applied before the next is considered.
func Apply(ev LogEvent, eng anim.Engine) Outcome {
	sig := classify.Classify(ev.Content)

	switch sig.Category {
	case classify.CategoryWorking:
		eng.SetWorkingState(true)
	case classify.CategoryIdle:
		eng.SetWorkingState(false)
	}

	if ev.IsError {
		eng.TriggerSpike()
	}

	if sig.Category != classify.CategoryNone {
		eng.TriggerPulse(sig.Color)
	}

	out := Outcome{Signal: sig}
	if caption, ok := classify.ExtractMonologue(ev.Content); ok {
		out.Caption = caption
		out.HasCaption = true
	}
	return out
}
