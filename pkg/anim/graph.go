package anim

import (
	"math"
	"math/rand"
	"time"
)

const (
	graphNodeCount      = 250
	graphEdgeCap        = 220
	graphConnectDistSq  = 0.115 // squared distance threshold on the unit cloud
	graphOscAmp         = 0.07
	graphActivationWait = 500 * time.Millisecond

	// shape-time advance: idle drift up to full working churn, with the
	// per-frame rate change clamped so speed shifts never snap visibly
	shapeRateIdle   = 0.35
	shapeRateSpan   = 2.4
	shapeRateMaxDel = 0.015

	nodeVisRate = 0.08
)

type node struct {
	base  vec3
	phase [3]float64
	speed float64

	pos       vec3 // recomputed every frame
	vis       float64
	connected bool
}

type edge struct {
	a, b int
}

// GraphEngine animates a proximity point-graph: a fixed pool of drifting
// points on a sphere, connected frame-by-frame wherever they pass close to
// each other.
type GraphEngine struct {
	sm      *StateMachine
	palette Palette

	nodes []node
	edges []edge

	fb            *framebuffer
	width, height int

	shapeTime   float64
	shapeRate   float64
	activeColor string
	baseColor   string

	pulse      float64
	pulseColor string

	lastStep time.Time
	inited   bool
}

// NewGraphEngine builds an uninitialized graph engine
func NewGraphEngine() *GraphEngine {
	return &GraphEngine{
		sm:          NewStateMachine(graphActivationWait),
		shapeRate:   shapeRateIdle,
		baseColor:   baseHue,
		activeColor: activeHue,
	}
}

// Init allocates the node pool. Without bounds the engine stays dormant;
// Resize later completes the setup.
func (g *GraphEngine) Init() {
	if g.inited {
		return
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	g.nodes = make([]node, graphNodeCount)
	for i := range g.nodes {
		g.nodes[i] = node{
			base:  randomOnSphere(rng),
			phase: [3]float64{rng.Float64() * 2 * math.Pi, rng.Float64() * 2 * math.Pi, rng.Float64() * 2 * math.Pi},
			speed: 0.5 + rng.Float64()*1.2,
		}
	}
	g.edges = make([]edge, 0, graphEdgeCap)
	if g.width > 0 && g.height > 0 {
		g.fb = newFramebuffer(g.width, g.height)
	}
	g.inited = true
}

// Destroy drops the render buffer and node pool. Safe to call repeatedly or
// before Init.
func (g *GraphEngine) Destroy() {
	g.fb = nil
	g.nodes = nil
	g.edges = nil
	g.inited = false
}

// Resize updates the drawing bounds
func (g *GraphEngine) Resize(width, height int) {
	g.width, g.height = width, height
	if g.inited && width > 0 && height > 0 {
		g.fb = newFramebuffer(width, height)
	} else {
		g.fb = nil
	}
}

// SetWorkingState feeds the debounced working channel
func (g *GraphEngine) SetWorkingState(active bool) {
	g.sm.SetWorking(active, time.Now())
}

// SetWaitingState feeds the debounced waiting channel
func (g *GraphEngine) SetWaitingState(active bool) {
	g.sm.SetWaiting(active, time.Now())
}

// TriggerSpike forces the error channel high for the fixed window
func (g *GraphEngine) TriggerSpike() {
	g.sm.TriggerError(time.Now())
}

// TriggerPulse bumps the transient flash, optionally tinted
func (g *GraphEngine) TriggerPulse(color string) {
	g.pulse = 1
	if color != "" {
		g.pulseColor = color
	} else {
		g.pulseColor = g.activeColor
	}
}

// TriggerSmallPulse bumps the flash without resetting a larger one
func (g *GraphEngine) TriggerSmallPulse() {
	if g.pulse < 0.45 {
		g.pulse = 0.45
		g.pulseColor = g.activeColor
	}
}

// TriggerNextColor advances the palette cursor and raises the color-blend
// channel, so the cursor color starts folding into the active hue.
func (g *GraphEngine) TriggerNextColor() {
	g.palette.Next()
	g.sm.SetColorBlendTarget(1)
}

// UpdateSphereColor is a no-op on the graph variant, kept for contract
// symmetry with the surface engine.
func (g *GraphEngine) UpdateSphereColor(color string) {}

// Step advances one frame: state smoothing, node motion, edge formation
func (g *GraphEngine) Step(now time.Time) {
	if !g.inited {
		return
	}

	dt := 1.0 / 30
	if !g.lastStep.IsZero() {
		dt = now.Sub(g.lastStep).Seconds()
		if dt < 0 {
			dt = 0
		}
		if dt > 0.1 {
			dt = 0.1
		}
	}
	g.lastStep = now

	g.sm.Step(now)
	st := g.sm.Snapshot()

	// Shape time accelerates with work, easing so the motion never snaps
	targetRate := shapeRateIdle + shapeRateSpan*st.Working
	delta := targetRate - g.shapeRate
	if delta > shapeRateMaxDel {
		delta = shapeRateMaxDel
	} else if delta < -shapeRateMaxDel {
		delta = -shapeRateMaxDel
	}
	g.shapeRate += delta
	g.shapeTime += g.shapeRate * dt

	// The active hue chases a target mixed from the default accent and the
	// palette cursor, weighted by the smoothed color-blend channel. Until
	// the first TriggerNextColor the blend is zero and the accent holds.
	activeTarget := blendHex(activeHue, g.palette.Current(), st.ColorBlend)
	g.activeColor = blendHex(g.activeColor, activeTarget, 0.05)
	g.pulse *= 0.9

	g.stepNodes()
	g.formEdges(st.Error)

	for i := range g.nodes {
		target := 0.0
		if g.nodes[i].connected {
			target = 1
		}
		g.nodes[i].vis += (target - g.nodes[i].vis) * nodeVisRate
	}

	g.draw(now, st)
}

// stepNodes recomputes every node's position from its immutable base plus
// phase-shifted sinusoidal drift.
func (g *GraphEngine) stepNodes() {
	for i := range g.nodes {
		n := &g.nodes[i]
		t := g.shapeTime * n.speed
		n.pos = n.base.add(vec3{
			math.Sin(t + n.phase[0]),
			math.Sin(t*1.31 + n.phase[1]),
			math.Cos(t*0.87 + n.phase[2]),
		}.scale(graphOscAmp))
		n.connected = false
	}
}

// formEdges recomputes the ephemeral edge set from pairwise distances.
// A saturated error state suppresses all connectivity; past the cap,
// qualifying pairs are dropped in iteration order.
func (g *GraphEngine) formEdges(errLevel float64) {
	g.edges = g.edges[:0]
	if errLevel > 0.95 {
		return
	}
	for i := 0; i < len(g.nodes) && len(g.edges) < graphEdgeCap; i++ {
		for j := i + 1; j < len(g.nodes); j++ {
			d := g.nodes[i].pos.sub(g.nodes[j].pos)
			if d.dot(d) < graphConnectDistSq {
				g.edges = append(g.edges, edge{a: i, b: j})
				g.nodes[i].connected = true
				g.nodes[j].connected = true
				if len(g.edges) >= graphEdgeCap {
					break
				}
			}
		}
	}
}

func (g *GraphEngine) draw(now time.Time, st ControlState) {
	if g.fb == nil {
		return
	}
	g.fb.clear()

	yaw := g.shapeTime * 0.3
	scale := float64(g.width)
	if h := float64(g.height) * 2; h < scale {
		scale = h
	}
	scale *= 0.42
	cx, cy := float64(g.width)/2, float64(g.height)/2
	timeSec := float64(now.UnixNano()) / 1e9

	project := func(p vec3) (int, int) {
		r := p.rotateY(yaw)
		return int(cx + r.X*scale), int(cy - r.Y*scale*0.5)
	}

	for idx, e := range g.edges {
		ax, ay := project(g.nodes[e.a].pos)
		bx, by := project(g.nodes[e.b].pos)
		col := g.edgeColor(g.nodes[e.a].pos, timeSec, st)
		// Traveling highlight, constant pace regardless of activity
		travel := math.Mod(timeSec*0.6+float64(idx)*0.137, 1)
		g.fb.line(ax, ay, bx, by, func(x, y, step, steps int) {
			if steps > 0 && step == int(travel*float64(steps)) {
				g.fb.set(x, y, '•', blendHex(col, "#ffffff", 0.6))
				return
			}
			g.fb.set(x, y, '·', col)
		})
	}

	for i := range g.nodes {
		n := &g.nodes[i]
		if n.vis < 0.2 {
			continue
		}
		x, y := project(n.pos)
		ch := '·'
		switch {
		case n.vis > 0.8:
			ch = '●'
		case n.vis > 0.5:
			ch = '•'
		}
		g.fb.set(x, y, ch, g.nodeColor(n.pos, timeSec, st))
	}
}

// nodeColor blends base toward active by a position/time oscillation, then
// toward the error hue by the smoothed error level, then toward any live
// pulse tint.
func (g *GraphEngine) nodeColor(p vec3, timeSec float64, st ControlState) string {
	osc := 0.5 + 0.5*math.Sin(timeSec*0.8+p.X*2.1+p.Y*1.3)
	c := blendHex(g.baseColor, g.activeColor, osc)
	if st.Error > 0.01 {
		c = blendHex(c, errorHue, st.Error)
	}
	if g.pulse > 0.05 {
		c = blendHex(c, g.pulseColor, g.pulse*0.5)
	}
	return c
}

func (g *GraphEngine) edgeColor(p vec3, timeSec float64, st ControlState) string {
	c := g.nodeColor(p, timeSec, st)
	return blendHex(c, "#000000", 0.45)
}

// View returns the latest frame; dormant engines render nothing
func (g *GraphEngine) View() string {
	if !g.inited || g.fb == nil {
		return ""
	}
	return g.fb.render()
}

func randomOnSphere(rng *rand.Rand) vec3 {
	// Uniform over the sphere via normal deviates
	v := vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	return v.normalized()
}
