package chat

// Conversation is the ordered, append-only message history for a model.
// The single exception to append-only is RollbackLastUser, used once per
// failed request.
type Conversation struct {
	Messages []Message
	Model    string
}

func NewConversation(model string) Conversation {
	return Conversation{
		Messages: make([]Message, 0),
		Model:    model,
	}
}

func NewConversationWithSystem(model, systemPrompt string) Conversation {
	conv := NewConversation(model)
	if systemPrompt != "" {
		conv = AddMessage(conv, NewSystemMessage(systemPrompt))
	}
	return conv
}

func AddMessage(conv Conversation, msg Message) Conversation {
	messages := make([]Message, len(conv.Messages)+1)
	copy(messages, conv.Messages)
	messages[len(conv.Messages)] = msg

	return Conversation{
		Messages: messages,
		Model:    conv.Model,
	}
}

// RollbackLastUser removes the most recent message if it is a user turn.
// Called when the request that followed the turn failed before producing
// any assistant content.
func RollbackLastUser(conv Conversation) Conversation {
	n := len(conv.Messages)
	if n == 0 || !conv.Messages[n-1].IsUser() {
		return conv
	}
	messages := make([]Message, n-1)
	copy(messages, conv.Messages[:n-1])
	return Conversation{
		Messages: messages,
		Model:    conv.Model,
	}
}

func GetMessages(conv Conversation) []Message {
	result := make([]Message, len(conv.Messages))
	copy(result, conv.Messages)
	return result
}

func GetMessageCount(conv Conversation) int {
	return len(conv.Messages)
}

func GetLastMessage(conv Conversation) (Message, bool) {
	if len(conv.Messages) == 0 {
		return Message{}, false
	}
	return conv.Messages[len(conv.Messages)-1], true
}
