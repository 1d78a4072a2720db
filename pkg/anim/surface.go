package anim

import (
	"math"
	"time"
)

const (
	surfaceActivationWait = 2 * time.Second

	// Noise displacement profiles: slow idle breathing against sharper
	// active spiking, blended by the working/waiting magnitude.
	idleNoiseFreq   = 1.6
	idleNoiseSpeed  = 0.15
	idleNoiseAmp    = 0.30
	idleNoiseOct    = 3
	spikeNoiseFreq  = 3.4
	spikeNoiseSpeed = 0.65
	spikeNoiseAmp   = 0.85
	spikeNoiseOct   = 4

	rimPower = 2.0
)

var surfaceRamp = []rune(" .:-=+*#%@")

var surfaceLights = []struct {
	dir    vec3
	weight float64
}{
	{dir: vec3{-0.55, 0.65, 0.52}, weight: 0.55},
	{dir: vec3{0.7, -0.2, 0.68}, weight: 0.25},
	{dir: vec3{0.1, -0.85, 0.5}, weight: 0.12},
}

// SurfaceEngine animates a noise-displaced sphere: a fixed mesh whose
// surface breathes along its normals, lit by three directional terms plus a
// view-angle rim.
type SurfaceEngine struct {
	sm      *StateMachine
	palette Palette

	fb            *framebuffer
	width, height int

	baseColor string
	glowColor string

	pulse      float64
	pulseColor string

	animTime float64
	lastStep time.Time
	inited   bool
}

// NewSurfaceEngine builds an uninitialized surface engine
func NewSurfaceEngine() *SurfaceEngine {
	return &SurfaceEngine{
		sm:        NewStateMachine(surfaceActivationWait),
		baseColor: baseHue,
		glowColor: activeHue,
	}
}

// Init prepares the render surface; dormant without bounds
func (s *SurfaceEngine) Init() {
	if s.inited {
		return
	}
	if s.width > 0 && s.height > 0 {
		s.fb = newFramebuffer(s.width, s.height)
	}
	s.inited = true
}

// Destroy drops the render buffer; idempotent
func (s *SurfaceEngine) Destroy() {
	s.fb = nil
	s.inited = false
}

// Resize updates the drawing bounds
func (s *SurfaceEngine) Resize(width, height int) {
	s.width, s.height = width, height
	if s.inited && width > 0 && height > 0 {
		s.fb = newFramebuffer(width, height)
	} else {
		s.fb = nil
	}
}

// SetWorkingState feeds the debounced working channel
func (s *SurfaceEngine) SetWorkingState(active bool) {
	s.sm.SetWorking(active, time.Now())
}

// SetWaitingState feeds the debounced waiting channel
func (s *SurfaceEngine) SetWaitingState(active bool) {
	s.sm.SetWaiting(active, time.Now())
}

// TriggerSpike forces the error channel high for the fixed window
func (s *SurfaceEngine) TriggerSpike() {
	s.sm.TriggerError(time.Now())
}

// TriggerPulse bumps transient glow, optionally tinted
func (s *SurfaceEngine) TriggerPulse(color string) {
	s.pulse = 1
	if color != "" {
		s.pulseColor = color
	} else {
		s.pulseColor = s.glowColor
	}
}

// TriggerSmallPulse bumps the glow without resetting a larger one
func (s *SurfaceEngine) TriggerSmallPulse() {
	if s.pulse < 0.45 {
		s.pulse = 0.45
		s.pulseColor = s.glowColor
	}
}

// TriggerNextColor advances the palette cursor and raises the color-blend
// channel, shifting the glow target from the ambient cycle to the cursor.
func (s *SurfaceEngine) TriggerNextColor() {
	s.palette.Next()
	s.sm.SetColorBlendTarget(1)
}

// UpdateSphereColor retints the surface base hue
func (s *SurfaceEngine) UpdateSphereColor(color string) {
	if color != "" {
		s.baseColor = color
	}
}

// Step advances one frame
func (s *SurfaceEngine) Step(now time.Time) {
	if !s.inited {
		return
	}

	dt := 1.0 / 30
	if !s.lastStep.IsZero() {
		dt = now.Sub(s.lastStep).Seconds()
		if dt < 0 {
			dt = 0
		}
		if dt > 0.1 {
			dt = 0.1
		}
	}
	s.lastStep = now
	s.animTime += dt

	s.sm.Step(now)
	st := s.sm.Snapshot()

	// The glow chases a palette target that cycles at constant cadence,
	// decoupled from activity so long idle stretches still drift in hue.
	// The smoothed color-blend channel mixes the cursor color into that
	// target, so TriggerNextColor pulls the glow toward its selection.
	cycleTarget := blendHex(s.palette.CycleAt(s.animTime), s.palette.Current(), st.ColorBlend)
	s.glowColor = blendHex(s.glowColor, cycleTarget, 0.02)
	s.pulse *= 0.9

	s.draw(st)
}

// displacement evaluates the layered noise field along a unit direction
func (s *SurfaceEngine) displacement(n vec3, activity, spike float64) float64 {
	idle := ridgedFBM(n.scale(idleNoiseFreq).add(vec3{s.animTime * idleNoiseSpeed, 0, 0}), idleNoiseOct) * idleNoiseAmp
	active := ridgedFBM(n.scale(spikeNoiseFreq).add(vec3{0, s.animTime * spikeNoiseSpeed, 0}), spikeNoiseOct) * spikeNoiseAmp
	return lerp(idle, active, clamp01(activity)) * (0.25 + spike)
}

// displacedPoint returns the surface point for a unit direction
func (s *SurfaceEngine) displacedPoint(n vec3, activity, spike float64) vec3 {
	return n.scale(1 + s.displacement(n, activity, spike))
}

// surfaceNormal estimates the displaced surface normal by finite
// differences of neighboring samples, so lighting holds up under heavy
// deformation instead of reusing the undisplaced sphere normal.
func (s *SurfaceEngine) surfaceNormal(n vec3, activity, spike float64) vec3 {
	const eps = 0.02
	// Tangent basis around n
	up := vec3{0, 1, 0}
	if math.Abs(n.Y) > 0.99 {
		up = vec3{1, 0, 0}
	}
	tu := n.cross(up).normalized()
	tv := n.cross(tu).normalized()

	p := s.displacedPoint(n, activity, spike)
	pu := s.displacedPoint(n.add(tu.scale(eps)).normalized(), activity, spike)
	pv := s.displacedPoint(n.add(tv.scale(eps)).normalized(), activity, spike)

	return pu.sub(p).cross(pv.sub(p)).normalized()
}

func (s *SurfaceEngine) draw(st ControlState) {
	if s.fb == nil {
		return
	}
	s.fb.clear()

	activity := st.Working
	if st.Waiting > activity {
		activity = st.Waiting
	}

	w, h := float64(s.width), float64(s.height)
	radius := w
	if h2 := h * 2; h2 < radius {
		radius = h2
	}
	radius *= 0.46
	if radius < 1 {
		return
	}
	cx, cy := w/2, h/2
	view := vec3{0, 0, 1}

	errPulse := 0.5 + 0.5*math.Sin(s.animTime*6)

	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			// Cell → normalized sphere coords, correcting the ~2:1 cell
			// aspect before the hit test
			px := (float64(x) - cx) / radius
			py := (float64(y) - cy) * 2 / radius
			r2 := px*px + py*py
			if r2 >= 1 {
				continue
			}
			n := vec3{px, -py, math.Sqrt(1 - r2)}

			normal := s.surfaceNormal(n, activity, st.Spike)

			lum := 0.08
			for _, l := range surfaceLights {
				d := normal.dot(l.dir.normalized())
				if d > 0 {
					lum += d * l.weight
				}
			}
			facing := normal.dot(view)
			rim := math.Pow(1-clamp01(math.Abs(facing)), rimPower)
			lum += rim * 0.35
			lum = clamp01(lum)

			col := blendHex(s.baseColor, s.glowColor, lum*(0.4+0.6*activity))
			if st.Error > 0.01 {
				col = blendHex(col, errorHue, st.Error*errPulse)
			}
			if s.pulse > 0.05 {
				col = blendHex(col, s.pulseColor, s.pulse*0.4)
			}

			idx := int(lum * float64(len(surfaceRamp)-1))
			s.fb.set(x, y, surfaceRamp[idx], col)
		}
	}
}

// View returns the latest frame; dormant engines render nothing
func (s *SurfaceEngine) View() string {
	if !s.inited || s.fb == nil {
		return ""
	}
	return s.fb.render()
}
