package chat

import (
	"strings"
	"time"
)

// Message is one turn of the conversation
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleError     = "error"
)

func NewUserMessage(content string) Message {
	return Message{
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Timestamp: time.Now(),
	}
}

func NewAssistantMessage(content string) Message {
	return Message{
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func NewSystemMessage(content string) Message {
	return Message{
		Role:      RoleSystem,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewErrorMessage is the user-visible system notice for a failed turn
func NewErrorMessage(content string) Message {
	return Message{
		Role:      RoleError,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func (m Message) IsUser() bool      { return m.Role == RoleUser }
func (m Message) IsAssistant() bool { return m.Role == RoleAssistant }
func (m Message) IsSystem() bool    { return m.Role == RoleSystem }
func (m Message) IsError() bool     { return m.Role == RoleError }
