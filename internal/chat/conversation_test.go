package chat

import "testing"

func TestConversationDeduplicatesAssistant(t *testing.T) {
	c := NewConversation("hello")

	if !c.Append(Message{Role: RoleUser, Content: "hi"}) {
		t.Error("user message should be appended")
	}
	if !c.Append(Message{Role: RoleUser, Content: "hi"}) {
		t.Error("repeated user messages should be appended")
	}
	if !c.Append(Message{Role: RoleAssistant, Content: "answer"}) {
		t.Error("new assistant message should be appended")
	}
	if c.Append(Message{Role: RoleAssistant, Content: "answer"}) {
		t.Error("duplicate assistant message should be suppressed")
	}
	if c.Append(Message{Role: RoleAssistant, Content: "hello"}) {
		t.Error("greeting duplicate should be suppressed")
	}

	if c.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", c.Len())
	}
}

func TestConversationMessagesCopy(t *testing.T) {
	c := NewConversation("")
	if c.Len() != 0 {
		t.Fatalf("empty greeting should start empty, Len() = %d", c.Len())
	}

	c.Append(Message{Role: RoleUser, Content: "q"})
	msgs := c.Messages()
	msgs[0].Content = "changed"

	if c.Messages()[0].Content != "q" {
		t.Error("Messages() should return a copy")
	}
}

func TestConversationLast(t *testing.T) {
	c := NewConversation("greet")
	c.Append(Message{Role: RoleUser, Content: "q"})

	m, ok := c.Last(RoleAssistant)
	if !ok || m.Content != "greet" {
		t.Errorf("Last(assistant) = %+v, %v", m, ok)
	}
	if _, ok := c.Last(RoleSystem); ok {
		t.Error("Last(system) should not be found")
	}
}
