package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/vventirozos/GhostAgent-v2/pkg/anim"
	"github.com/vventirozos/GhostAgent-v2/pkg/events"
	"github.com/vventirozos/GhostAgent-v2/pkg/logger"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		frameTick(),
		waitForLogEvent(m.listener),
		m.spin.Tick,
		m.textarea.Focus(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		return m.handleFrame(time.Time(msg))

	case logEventMsg:
		out := events.Apply(events.LogEvent(msg), m.engine)
		if out.HasCaption {
			m.caption = out.Caption
			m.captionUntil = time.Now().Add(captionHold)
		}
		return m, waitForLogEvent(m.listener)

	case eventsClosedMsg:
		// Shutdown path; the listener only closes when the context dies
		return m, nil

	case streamStartedMsg:
		m.streamCh = msg.ch
		return m, waitForStreamEvent(msg.ch)

	case streamFailedMsg:
		return m.handleTurnFailure(msg.err), nil

	case streamEventMsg:
		return m.handleStreamEvent(msg)

	case streamClosedMsg:
		m.streamCh = nil
		return m, nil

	default:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height

	m.engineHeight = msg.Height * 2 / 5
	if m.engineHeight < 6 {
		m.engineHeight = 6
	}
	chrome := m.engineHeight + 1 + 1 + 2 // caption, status, input
	vpHeight := msg.Height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.viewport.Width = msg.Width
	m.viewport.Height = vpHeight
	m.textarea.SetWidth(msg.Width - 2)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(msg.Width-4),
	)
	if err == nil {
		m.renderer = renderer
	}

	m.engine.Resize(msg.Width, m.engineHeight)
	if !m.ready {
		m.engine.Init()
		m.ready = true
	}

	m.refreshViewport()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.engine.Destroy()
		return m, tea.Quit

	case "enter":
		return m.submitTurn()

	case "ctrl+e":
		return m.swapEngine(), nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	default:
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
}

func (m Model) submitTurn() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" || m.manager.InFlight() {
		return m, nil
	}

	req := m.manager.BeginTurn(text)
	m.textarea.Reset()
	m.notice = ""
	m.engine.SetWaitingState(true)

	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, startStream(m, req)
}

func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.engine.Step(now)

	// Captions linger for a fixed hold, or as long as a turn is running
	if m.caption != "" && now.After(m.captionUntil) && !m.manager.InFlight() {
		m.caption = ""
	}

	return m, frameTick()
}

func (m Model) handleStreamEvent(ev streamEventMsg) (tea.Model, tea.Cmd) {
	switch {
	case ev.Err != nil:
		return m.handleTurnFailure(ev.Err), waitForStreamEvent(m.streamCh)

	case ev.Done:
		if m.manager.InFlight() {
			m.manager.CompleteTurn()
			m.engine.SetWaitingState(false)
			m.engine.TriggerNextColor()
			m.refreshViewport()
		}
		return m, waitForStreamEvent(m.streamCh)

	default:
		if !m.manager.InFlight() {
			// Stray fragment after a failure; nothing to apply it to
			return m, waitForStreamEvent(m.streamCh)
		}
		m.manager.ApplyFragment(ev.Content)
		m.engine.TriggerSmallPulse()
		m.refreshViewport()
		return m, waitForStreamEvent(m.streamCh)
	}
}

func (m Model) handleTurnFailure(err error) Model {
	if !m.manager.InFlight() {
		return m
	}
	m.manager.FailTurn(err)
	m.manager.RecordErrorNotice("request failed: " + err.Error())
	m.engine.SetWaitingState(false)
	m.engine.TriggerSpike()
	m.notice = "request failed: " + err.Error()
	m.refreshViewport()
	return m
}

// swapEngine replaces the running engine with the other variant. The
// outgoing instance is fully destroyed before the incoming one starts, so
// at most one engine ever holds the pane.
func (m Model) swapEngine() Model {
	next := anim.KindSurface
	if m.engineKind == anim.KindSurface {
		next = anim.KindGraph
	}

	eng, err := anim.New(next)
	if err != nil {
		logger.WithComponent("tui").Errorf("engine swap failed: %v", err)
		return m
	}

	m.engine.Destroy()
	m.engine = eng
	m.engineKind = next
	m.engine.Resize(m.width, m.engineHeight)
	m.engine.Init()
	return m
}
