package chat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginTurn(t *testing.T) {
	m := NewManager("ghost-local", "be helpful")
	req := m.BeginTurn("hello there")

	assert.Equal(t, "ghost-local", req.Model)
	assert.True(t, req.Stream)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, RoleSystem, req.Messages[0].Role)
	assert.Equal(t, RoleUser, req.Messages[1].Role)
	assert.Equal(t, "hello there", req.Messages[1].Content)
	assert.True(t, m.InFlight())
}

func TestBeginTurnExcludesErrorNotices(t *testing.T) {
	m := NewManager("m", "")
	m.BeginTurn("first")
	m.FailTurn(errors.New("network down"))
	m.RecordErrorNotice("request failed")

	req := m.BeginTurn("second")
	require.Len(t, req.Messages, 1, "error notices never reach the model")
	assert.Equal(t, "second", req.Messages[0].Content)

	history := m.History()
	require.Len(t, history, 2, "the notice stays visible in history")
	assert.True(t, history[0].IsError())
}

func TestApplyFragment(t *testing.T) {
	m := NewManager("m", "")
	m.BeginTurn("hi")

	acc, first := m.ApplyFragment("Hel")
	assert.Equal(t, "Hel", acc)
	assert.True(t, first)

	acc, first = m.ApplyFragment("lo")
	assert.Equal(t, "Hello", acc)
	assert.False(t, first)
}

func TestApplyFragmentEmptyNotFirst(t *testing.T) {
	m := NewManager("m", "")
	m.BeginTurn("hi")

	_, first := m.ApplyFragment("")
	assert.False(t, first, "an empty fragment does not replace the placeholder")

	_, first = m.ApplyFragment("x")
	assert.True(t, first)
}

func TestCompleteTurn(t *testing.T) {
	m := NewManager("m", "")
	m.BeginTurn("hi")
	m.ApplyFragment("Hello")
	msg := m.CompleteTurn()

	assert.Equal(t, RoleAssistant, msg.Role)
	assert.Equal(t, "Hello", msg.Content)
	assert.False(t, m.InFlight())

	history := m.History()
	require.Len(t, history, 2)
	assert.Equal(t, "hi", history[0].Content)
	assert.Equal(t, "Hello", history[1].Content)
}

func TestCompleteTurnEmptyStream(t *testing.T) {
	m := NewManager("m", "")
	m.BeginTurn("hi")
	msg := m.CompleteTurn()

	assert.Equal(t, EmptyResponsePlaceholder, msg.Content)
	history := m.History()
	require.Len(t, history, 2, "the placeholder turn is recorded as real history")
	assert.Equal(t, EmptyResponsePlaceholder, history[1].Content)
}

func TestFailTurnRollsBackExactlyOneMessage(t *testing.T) {
	m := NewManager("m", "")
	m.BeginTurn("keep me")
	m.ApplyFragment("partial")
	m.CompleteTurn()

	before := len(m.History())
	m.BeginTurn("doomed")
	assert.Equal(t, before+1, len(m.History()))

	m.FailTurn(errors.New("connection reset"))
	history := m.History()
	assert.Equal(t, before, len(history), "history shrinks by exactly the rolled-back user turn")
	assert.Equal(t, "partial", history[len(history)-1].Content, "no assistant turn was appended")
	assert.False(t, m.InFlight())
	assert.Equal(t, "", m.Accumulated())
}

func TestRollbackLastUser(t *testing.T) {
	t.Run("removes trailing user turn", func(t *testing.T) {
		conv := NewConversation("m")
		conv = AddMessage(conv, NewUserMessage("a"))
		conv = RollbackLastUser(conv)
		assert.Equal(t, 0, GetMessageCount(conv))
	})

	t.Run("leaves non-user tail alone", func(t *testing.T) {
		conv := NewConversation("m")
		conv = AddMessage(conv, NewUserMessage("a"))
		conv = AddMessage(conv, NewAssistantMessage("b"))
		conv = RollbackLastUser(conv)
		assert.Equal(t, 2, GetMessageCount(conv))
	})

	t.Run("empty conversation is a no-op", func(t *testing.T) {
		conv := NewConversation("m")
		conv = RollbackLastUser(conv)
		assert.Equal(t, 0, GetMessageCount(conv))
	})
}

func TestNewUserMessageTrimsWhitespace(t *testing.T) {
	msg := NewUserMessage("  hi  \n")
	assert.Equal(t, "hi", msg.Content)
}
