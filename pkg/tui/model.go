// Package tui hosts the ghost interface: the animation pane on top, the
// chat transcript below it, a caption overlay for planner monologue, and
// the input line. The bubbletea update loop is the single cooperative
// thread everything mutates on.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vventirozos/GhostAgent-v2/pkg/anim"
	"github.com/vventirozos/GhostAgent-v2/pkg/chat"
	"github.com/vventirozos/GhostAgent-v2/pkg/config"
	"github.com/vventirozos/GhostAgent-v2/pkg/events"
	"github.com/vventirozos/GhostAgent-v2/pkg/stream"
)

const captionHold = 6 * time.Second

type Model struct {
	cfg *config.Config
	ctx context.Context

	engine     anim.Engine
	engineKind string

	manager  *chat.Manager
	client   *stream.Client
	listener *events.Listener

	viewport viewport.Model
	textarea textarea.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	width        int
	height       int
	engineHeight int
	ready        bool

	caption      string
	captionUntil time.Time
	notice       string

	streamCh <-chan stream.Event
}

// NewModel wires the host model. The engine arrives constructed but not
// initialized; Init happens once bounds are known.
func NewModel(ctx context.Context, cfg *config.Config, eng anim.Engine, manager *chat.Manager, client *stream.Client, listener *events.Listener) Model {
	ta := textarea.New()
	ta.Placeholder = "Speak to the ghost..."
	ta.Focus()
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return Model{
		cfg:        cfg,
		ctx:        ctx,
		engine:     eng,
		engineKind: cfg.Engine,
		manager:    manager,
		client:     client,
		listener:   listener,
		viewport:   viewport.New(80, 20),
		textarea:   ta,
		spin:       sp,
	}
}
