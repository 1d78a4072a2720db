package anim

import "time"

// Per-frame smoothing rates, tuned for the ~30 fps tick. Activation is
// faster than decay so the indicator reacts quickly and relaxes slowly.
const (
	riseRate  = 0.08
	fallRate  = 0.02
	errorRate = 0.05
	blendRate = 0.03

	spikeBaseline = 0.15
	spikeSpan     = 0.55

	errorResetDelay = 2 * time.Second
)

// channel is one continuous control scalar. target is flipped by external
// triggers; current only ever eases toward it.
type channel struct {
	current, target float64
}

func (c *channel) ease(rate float64) {
	c.current += (c.target - c.current) * rate
}

// ControlState is a read-only snapshot of the smoothed control channels
type ControlState struct {
	Error      float64
	Working    float64
	Waiting    float64
	Spike      float64
	ColorBlend float64
}

// StateMachine owns the debounced control channels shared by both engines.
// Boolean channels activate through a delayed deadline checked on each
// frame; deactivation is immediate and cancels the deadline. All methods
// run on the host's single update thread.
type StateMachine struct {
	delay time.Duration

	errCh   channel
	working channel
	waiting channel
	spike   channel
	blend   channel

	workingPending time.Time
	waitingPending time.Time
	errorResetAt   time.Time
}

// NewStateMachine creates a state machine with the given activation delay
func NewStateMachine(delay time.Duration) *StateMachine {
	return &StateMachine{delay: delay}
}

// SetWorking requests activation (debounced) or immediate deactivation of
// the working channel.
func (m *StateMachine) SetWorking(active bool, now time.Time) {
	m.setBool(&m.working, &m.workingPending, active, now)
}

// SetWaiting requests activation (debounced) or immediate deactivation of
// the waiting channel.
func (m *StateMachine) SetWaiting(active bool, now time.Time) {
	m.setBool(&m.waiting, &m.waitingPending, active, now)
}

func (m *StateMachine) setBool(ch *channel, pending *time.Time, active bool, now time.Time) {
	if !active {
		// Deactivation overrides: cancel any pending activation and drop
		// the target in the same call. This is what keeps rapid on/off
		// bursts from flickering the engine.
		*pending = time.Time{}
		ch.target = 0
		return
	}
	if ch.target >= 1 || !pending.IsZero() {
		// Already active, or a timer is in flight. At most one pending
		// activation per channel.
		return
	}
	*pending = now.Add(m.delay)
}

// TriggerError forces the error channel to full immediately and schedules
// its return to zero. A second trigger inside the window moves the reset
// deadline forward: latest trigger wins, and at most one deadline exists
// per channel.
func (m *StateMachine) TriggerError(now time.Time) {
	m.errCh.target = 1
	m.errorResetAt = now.Add(errorResetDelay)
}

// SetColorBlendTarget sets the blend scalar consumed by the per-frame color
// interpolation.
func (m *StateMachine) SetColorBlendTarget(v float64) {
	m.blend.target = clamp01(v)
}

// Step fires due deadlines and eases every channel toward its target.
// Called exactly once per animation frame.
func (m *StateMachine) Step(now time.Time) {
	if !m.workingPending.IsZero() && !now.Before(m.workingPending) {
		m.working.target = 1
		m.workingPending = time.Time{}
	}
	if !m.waitingPending.IsZero() && !now.Before(m.waitingPending) {
		m.waiting.target = 1
		m.waitingPending = time.Time{}
	}
	if !m.errorResetAt.IsZero() && !now.Before(m.errorResetAt) {
		m.errCh.target = 0
		m.errorResetAt = time.Time{}
	}

	m.working.ease(m.directionalRate(m.working))
	m.waiting.ease(m.directionalRate(m.waiting))
	m.errCh.ease(errorRate)
	m.blend.ease(blendRate)

	// Spike baseline follows activity; a live error overrides it to full
	// and takes priority over the activity-derived value.
	activity := m.working.current
	if m.waiting.current > activity {
		activity = m.waiting.current
	}
	m.spike.target = spikeBaseline + spikeSpan*activity
	if m.errCh.target >= 1 {
		m.spike.target = 1
	}
	m.spike.ease(m.directionalRate(m.spike))
}

func (m *StateMachine) directionalRate(ch channel) float64 {
	if ch.target > ch.current {
		return riseRate
	}
	return fallRate
}

// Snapshot returns the current smoothed values
func (m *StateMachine) Snapshot() ControlState {
	return ControlState{
		Error:      m.errCh.current,
		Working:    m.working.current,
		Waiting:    m.waiting.current,
		Spike:      m.spike.current,
		ColorBlend: m.blend.current,
	}
}

// WorkingTarget exposes the working channel's target for tests and the
// connectivity logic.
func (m *StateMachine) WorkingTarget() float64 { return m.working.target }

// WaitingTarget exposes the waiting channel's target
func (m *StateMachine) WaitingTarget() float64 { return m.waiting.target }

// ErrorTarget exposes the error channel's target
func (m *StateMachine) ErrorTarget() float64 { return m.errCh.target }

// HasPendingWorking reports whether a working activation timer is in flight
func (m *StateMachine) HasPendingWorking() bool { return !m.workingPending.IsZero() }
