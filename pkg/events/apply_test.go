package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vventirozos/GhostAgent-v2/pkg/classify"
)

// fakeEngine records contract calls in order
type fakeEngine struct {
	calls []string
}

func (f *fakeEngine) Init()    { f.calls = append(f.calls, "init") }
func (f *fakeEngine) Destroy() { f.calls = append(f.calls, "destroy") }
func (f *fakeEngine) SetWorkingState(active bool) {
	if active {
		f.calls = append(f.calls, "working:on")
	} else {
		f.calls = append(f.calls, "working:off")
	}
}
func (f *fakeEngine) SetWaitingState(active bool) {
	if active {
		f.calls = append(f.calls, "waiting:on")
	} else {
		f.calls = append(f.calls, "waiting:off")
	}
}
func (f *fakeEngine) TriggerSpike()                 { f.calls = append(f.calls, "spike") }
func (f *fakeEngine) TriggerPulse(color string)     { f.calls = append(f.calls, "pulse:"+color) }
func (f *fakeEngine) TriggerSmallPulse()            { f.calls = append(f.calls, "smallpulse") }
func (f *fakeEngine) TriggerNextColor()             { f.calls = append(f.calls, "nextcolor") }
func (f *fakeEngine) UpdateSphereColor(color string) { f.calls = append(f.calls, "color:"+color) }
func (f *fakeEngine) Resize(w, h int)               {}
func (f *fakeEngine) Step(now time.Time)            {}
func (f *fakeEngine) View() string                  { return "" }

func TestApplyWorkingEvent(t *testing.T) {
	eng := &fakeEngine{}
	out := Apply(LogEvent{Type: "log", Content: "🔍 searching web"}, eng)

	assert.Equal(t, []string{"working:on", "pulse:" + classify.ColorTool}, eng.calls)
	assert.Equal(t, classify.CategoryWorking, out.Signal.Category)
	assert.False(t, out.HasCaption)
}

func TestApplyIdleEvent(t *testing.T) {
	eng := &fakeEngine{}
	Apply(LogEvent{Type: "log", Content: "✅ Task Complete"}, eng)

	assert.Equal(t, []string{"working:off", "pulse:" + classify.ColorTerminal}, eng.calls)
}

func TestApplyErrorFlagTriggersSpike(t *testing.T) {
	eng := &fakeEngine{}
	Apply(LogEvent{Type: "log", Content: "Exception in tool runner", IsError: true}, eng)

	assert.Equal(t, []string{"spike"}, eng.calls, "unclassified error lines still spike")
}

func TestApplyErrorIconAndFlag(t *testing.T) {
	eng := &fakeEngine{}
	Apply(LogEvent{Type: "log", Content: "❌ Tool Failed", IsError: true}, eng)

	assert.Equal(t, []string{"working:off", "spike", "pulse:" + classify.ColorError}, eng.calls)
}

func TestApplyPlainLineTouchesNothing(t *testing.T) {
	eng := &fakeEngine{}
	out := Apply(LogEvent{Type: "log", Content: "INFO booting"}, eng)

	assert.Empty(t, eng.calls)
	assert.Equal(t, classify.CategoryNone, out.Signal.Category)
}

func TestApplyMonologueCaption(t *testing.T) {
	eng := &fakeEngine{}
	out := Apply(LogEvent{Type: "log", Content: "🧠 PLANNER MONOLOGUE: weighing options"}, eng)

	assert.True(t, out.HasCaption)
	assert.Equal(t, "weighing options", out.Caption)
	// The monologue line is itself a working signal
	assert.Contains(t, eng.calls, "working:on")
}
