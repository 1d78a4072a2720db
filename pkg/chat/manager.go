package chat

import (
	"github.com/vventirozos/GhostAgent-v2/pkg/logger"
	"github.com/vventirozos/GhostAgent-v2/pkg/stream"
)

// EmptyResponsePlaceholder replaces an assistant turn whose stream
// completed without delivering any content. It is recorded to history as a
// real turn, not treated as an error.
const EmptyResponsePlaceholder = "*silence*"

// Manager owns the conversation history and the in-flight stream assembly.
// Every method mutates state synchronously and is called from the host's
// single update thread; the network goroutine only delivers events, it
// never touches the manager.
type Manager struct {
	conv Conversation

	inFlight    bool
	accumulated string
	gotContent  bool
}

// NewManager creates a manager with an optional system prompt
func NewManager(model, systemPrompt string) *Manager {
	return &Manager{
		conv: NewConversationWithSystem(model, systemPrompt),
	}
}

// BeginTurn appends the user turn and returns the outbound request
// carrying the full ordered history with streaming on.
func (m *Manager) BeginTurn(content string) stream.Request {
	m.conv = AddMessage(m.conv, NewUserMessage(content))
	m.inFlight = true
	m.accumulated = ""
	m.gotContent = false

	messages := make([]stream.RequestMessage, 0, len(m.conv.Messages))
	for _, msg := range m.conv.Messages {
		if msg.IsError() {
			// Visible failure notices are UI state, not model context
			continue
		}
		messages = append(messages, stream.RequestMessage{Role: msg.Role, Content: msg.Content})
	}

	return stream.Request{
		Model:    m.conv.Model,
		Messages: messages,
		Stream:   true,
	}
}

// ApplyFragment appends one content fragment to the in-flight assembly and
// returns the full accumulated text plus whether this was the turn's first
// content (the caller swaps out its placeholder on first).
func (m *Manager) ApplyFragment(text string) (accumulated string, first bool) {
	if text != "" && !m.gotContent {
		m.gotContent = true
		first = true
	}
	m.accumulated += text
	return m.accumulated, first
}

// CompleteTurn records the assistant turn to history. An empty stream is
// substituted with the placeholder and still recorded.
func (m *Manager) CompleteTurn() Message {
	content := m.accumulated
	if content == "" {
		content = EmptyResponsePlaceholder
	}
	msg := NewAssistantMessage(content)
	m.conv = AddMessage(m.conv, msg)
	m.inFlight = false
	m.accumulated = ""
	m.gotContent = false
	return msg
}

// FailTurn rolls the just-appended user turn back out of history. The
// turn is not retried automatically; the human resends.
func (m *Manager) FailTurn(err error) {
	logger.WithComponent("chat").Warnf("turn failed, rolling back user message: %v", err)
	m.conv = RollbackLastUser(m.conv)
	m.inFlight = false
	m.accumulated = ""
	m.gotContent = false
}

// RecordErrorNotice appends a visible failure notice to the transcript.
// Notices are excluded from outbound requests by BeginTurn.
func (m *Manager) RecordErrorNotice(text string) {
	m.conv = AddMessage(m.conv, NewErrorMessage(text))
}

// History returns a copy of the conversation messages
func (m *Manager) History() []Message {
	return GetMessages(m.conv)
}

// InFlight reports whether a turn is currently streaming
func (m *Manager) InFlight() bool {
	return m.inFlight
}

// Accumulated returns the in-flight assistant text so far
func (m *Manager) Accumulated() string {
	return m.accumulated
}

// Model returns the conversation's model name
func (m *Manager) Model() string {
	return m.conv.Model
}
