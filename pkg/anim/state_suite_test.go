package anim_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vventirozos/GhostAgent-v2/pkg/anim"
)

func TestAnim(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Anim Suite")
}

var _ = Describe("StateMachine", func() {
	var (
		sm    *anim.StateMachine
		now   time.Time
		delay = 500 * time.Millisecond
	)

	step := func(n int) {
		for i := 0; i < n; i++ {
			now = now.Add(33 * time.Millisecond)
			sm.Step(now)
		}
	}

	BeforeEach(func() {
		sm = anim.NewStateMachine(delay)
		now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})

	Describe("debounced activation", func() {
		It("does not flip the target before the delay elapses", func() {
			sm.SetWorking(true, now)
			now = now.Add(200 * time.Millisecond)
			sm.Step(now)
			Expect(sm.WorkingTarget()).To(BeZero())
			Expect(sm.HasPendingWorking()).To(BeTrue())
		})

		It("flips the target once the delay has elapsed", func() {
			sm.SetWorking(true, now)
			now = now.Add(delay + time.Millisecond)
			sm.Step(now)
			Expect(sm.WorkingTarget()).To(Equal(1.0))
			Expect(sm.HasPendingWorking()).To(BeFalse())
		})

		It("keeps a single pending activation under repeated calls", func() {
			sm.SetWorking(true, now)
			first := now
			// Later repeats must not push the deadline forward
			now = now.Add(400 * time.Millisecond)
			sm.SetWorking(true, now)
			sm.Step(first.Add(delay + time.Millisecond))
			Expect(sm.WorkingTarget()).To(Equal(1.0))
		})

		It("ignores activation requests while already active", func() {
			sm.SetWorking(true, now)
			now = now.Add(delay + time.Millisecond)
			sm.Step(now)
			sm.SetWorking(true, now)
			Expect(sm.HasPendingWorking()).To(BeFalse())
		})
	})

	Describe("deactivation override", func() {
		It("cancels a pending activation before it fires", func() {
			sm.SetWorking(true, now)
			sm.SetWorking(false, now.Add(100*time.Millisecond))
			now = now.Add(2 * delay)
			sm.Step(now)
			Expect(sm.WorkingTarget()).To(BeZero())
			Expect(sm.HasPendingWorking()).To(BeFalse())
		})

		It("drops the target immediately while active", func() {
			sm.SetWorking(true, now)
			now = now.Add(delay + time.Millisecond)
			sm.Step(now)
			sm.SetWorking(false, now)
			Expect(sm.WorkingTarget()).To(BeZero())
		})
	})

	Describe("smoothing", func() {
		It("rises faster than it falls", func() {
			sm.SetWorking(true, now)
			now = now.Add(delay + time.Millisecond)
			step(30)
			afterRise := sm.Snapshot().Working
			Expect(afterRise).To(BeNumerically(">", 0.5))

			sm.SetWorking(false, now)
			step(30)
			afterFall := sm.Snapshot().Working
			// The same number of frames decays far less than it grew
			Expect(afterRise - afterFall).To(BeNumerically("<", afterRise))
			Expect(afterFall).To(BeNumerically(">", 0.2))
		})

		It("never jumps current to target", func() {
			sm.SetWorking(true, now)
			now = now.Add(delay + time.Millisecond)
			sm.Step(now)
			Expect(sm.Snapshot().Working).To(BeNumerically("<", 0.2))
		})
	})

	Describe("error channel", func() {
		It("raises the target immediately on trigger", func() {
			sm.TriggerError(now)
			Expect(sm.ErrorTarget()).To(Equal(1.0))
		})

		It("resets the target after the fixed window", func() {
			sm.TriggerError(now)
			now = now.Add(2*time.Second + time.Millisecond)
			sm.Step(now)
			Expect(sm.ErrorTarget()).To(BeZero())
		})

		It("keeps latest-trigger-wins semantics for rapid re-triggers", func() {
			sm.TriggerError(now)
			now = now.Add(1500 * time.Millisecond)
			sm.TriggerError(now)
			// The first deadline would have fired here; the re-trigger
			// replaced it, so the error must still be held high.
			sm.Step(now.Add(600 * time.Millisecond))
			Expect(sm.ErrorTarget()).To(Equal(1.0))
			sm.Step(now.Add(2*time.Second + time.Millisecond))
			Expect(sm.ErrorTarget()).To(BeZero())
		})
	})

	Describe("spike strength", func() {
		It("sits near its baseline when idle", func() {
			step(200)
			Expect(sm.Snapshot().Spike).To(BeNumerically("~", 0.15, 0.03))
		})

		It("grows with activity", func() {
			sm.SetWorking(true, now)
			now = now.Add(delay + time.Millisecond)
			step(200)
			Expect(sm.Snapshot().Spike).To(BeNumerically(">", 0.5))
		})

		It("is overridden to maximum by an error", func() {
			sm.TriggerError(now)
			sm.Step(now)
			// Error takes priority over the activity-derived baseline
			step(30)
			Expect(sm.Snapshot().Spike).To(BeNumerically(">", 0.7))
		})
	})
})
