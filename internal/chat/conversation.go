// Package chat talks to an OpenAI-compatible chat-completions endpoint on
// behalf of the portfolio assistant and keeps the visible conversation.
package chat

import "sync"

// Role tags who wrote a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation.
type Message struct {
	Role    Role   `json:"role" jsonschema:"enum=user,enum=assistant,enum=system"`
	Content string `json:"content"`
}

// Conversation is an append-only, ordered list of messages. An assistant
// message identical to one already present is not appended again.
// It is safe for concurrent use.
type Conversation struct {
	mu       sync.RWMutex
	messages []Message
}

// NewConversation starts a conversation with an assistant greeting.
// An empty greeting starts it empty.
func NewConversation(greeting string) *Conversation {
	c := &Conversation{}
	if greeting != "" {
		c.messages = append(c.messages, Message{Role: RoleAssistant, Content: greeting})
	}
	return c
}

// Append adds m and reports whether it was added.
func (c *Conversation) Append(m Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m.Role == RoleAssistant {
		for _, existing := range c.messages {
			if existing.Role == RoleAssistant && existing.Content == m.Content {
				return false
			}
		}
	}
	c.messages = append(c.messages, m)
	return true
}

// Messages returns a copy of the conversation.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Message(nil), c.messages...)
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Last returns the newest message with the given role.
func (c *Conversation) Last(role Role) (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == role {
			return c.messages[i], true
		}
	}
	return Message{}, false
}
