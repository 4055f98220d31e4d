package ai

// Role is the author of a conversation entry.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation entry.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// WithoutSystem returns the conversation minus its system-role entries, in
// their original order. Vendors that carry the system prompt in a dedicated
// field use it so a stray system entry never lands in the message array.
func WithoutSystem(messages []Message) []Message {
	filtered := make([]Message, 0, len(messages))
	for _, message := range messages {
		if message.Role == RoleSystem {
			continue
		}
		filtered = append(filtered, message)
	}
	return filtered
}
