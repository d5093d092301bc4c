package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Fixed replies shown in place of a model answer.
const (
	NotConfiguredReply = "⚠️ OpenAI API key is not configured. Please add your API key to the .env file as OPENAI_API_KEY."
	EmptyReply         = "Sorry, I couldn't generate a response."
)

// ErrorReply formats a failed request as a conversation message.
func ErrorReply(err error) string {
	return fmt.Sprintf("⚠️ Error: %s. Please check your API key and try again.", err.Error())
}

// Assistant answers questions about the profile and keeps its conversation.
// Failures never escape as errors: they become warning replies.
type Assistant struct {
	client Completer
	system string
	conv   *Conversation
	logger *log.Logger
}

// NewAssistant creates an assistant with a fixed system prompt and a
// conversation that opens with greeting.
func NewAssistant(client Completer, systemPrompt, greeting string) *Assistant {
	return &Assistant{
		client: client,
		system: systemPrompt,
		conv:   NewConversation(greeting),
	}
}

// WithLogger logs failed requests to logger.
func (a *Assistant) WithLogger(logger *log.Logger) *Assistant {
	a.logger = logger
	return a
}

// Conversation returns the assistant's conversation.
func (a *Assistant) Conversation() *Conversation {
	return a.conv
}

// Ask appends the question, asks the model with the whole conversation and
// appends the reply. It returns the reply and whether it was appended; a
// reply identical to an earlier one is returned but not appended.
// Blank questions are ignored.
func (a *Assistant) Ask(ctx context.Context, question string) (string, bool) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", false
	}
	a.conv.Append(Message{Role: RoleUser, Content: question})

	reply := a.Reply(ctx, a.conv.Messages())
	added := a.conv.Append(Message{Role: RoleAssistant, Content: reply})
	return reply, added
}

// Reply asks the model for the next message after history without touching
// the assistant's own conversation. System messages in history are dropped;
// the assistant's prompt always comes first.
func (a *Assistant) Reply(ctx context.Context, history []Message) string {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: RoleSystem, Content: a.system})
	for _, m := range history {
		if m.Role == RoleUser || m.Role == RoleAssistant {
			messages = append(messages, m)
		}
	}

	text, err := a.client.Complete(ctx, messages)
	switch {
	case errors.Is(err, ErrNotConfigured):
		return NotConfiguredReply
	case err != nil:
		if a.logger != nil {
			a.logger.Warn("chat request failed", "error", err)
		}
		return ErrorReply(err)
	case strings.TrimSpace(text) == "":
		return EmptyReply
	}
	return text
}
