package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vventirozos/GhostAgent-v2/pkg/events"
	"github.com/vventirozos/GhostAgent-v2/pkg/stream"
)

// One render frame per tick; events and stream fragments interleave
// between frames in arrival order.
const frameInterval = time.Second / 30

type (
	frameMsg        time.Time
	logEventMsg     events.LogEvent
	eventsClosedMsg struct{}

	streamStartedMsg struct{ ch <-chan stream.Event }
	streamFailedMsg  struct{ err error }
	streamEventMsg   stream.Event
	streamClosedMsg  struct{}
)

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// waitForLogEvent hands the next websocket event back to the update loop
func waitForLogEvent(l *events.Listener) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-l.Events()
		if !ok {
			return eventsClosedMsg{}
		}
		return logEventMsg(ev)
	}
}

// startStream issues the chat request off-thread; the result comes back as
// a message either way.
func startStream(m Model, req stream.Request) tea.Cmd {
	return func() tea.Msg {
		ch, err := m.client.Stream(m.ctx, req)
		if err != nil {
			return streamFailedMsg{err: err}
		}
		return streamStartedMsg{ch: ch}
	}
}

// waitForStreamEvent hands the next response fragment back to the update
// loop, one at a time so each is fully applied before the next.
func waitForStreamEvent(ch <-chan stream.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return streamEventMsg(ev)
	}
}
