package models

// ChatRole identifies the author of a conversation message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the user's conversation with the assistant,
// carried into follow-up generation so the model sees prior context.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// LastMessages returns the trailing n messages of history, or all of them if
// fewer exist.
func LastMessages(history []ChatMessage, n int) []ChatMessage {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
