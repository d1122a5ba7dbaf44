// Package ai provides the chat message model shared by the token estimator,
// the console reporter and the transcript viewer.
package ai

// Role constants define the different roles in a chat conversation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"

	// RoleUnknown is reported for messages without a string role.
	RoleUnknown = "unknown"
)

// Well-known message field keys.
const (
	FieldRole    = "role"
	FieldContent = "content"
	FieldName    = "name"
)

// Common model name constants for easy reference.
const (
	ModelGPT35Turbo       = "gpt-3.5-turbo"
	ModelGPT35Turbo16k    = "gpt-3.5-turbo-16k"
	ModelGPT4             = "gpt-4"
	ModelGPT432k          = "gpt-4-32k"
	ModelGPT4Turbo        = "gpt-4-turbo"
	ModelGPT4TurboPreview = "gpt-4-turbo-preview"
	DefaultModel          = ModelGPT35Turbo
)

// Message represents a chat message in a conversation.
//
// A message is an open mapping: it carries at least a role and a content
// string, optionally a name, and any other fields a chat request may hold
// (tool calls, function calls, structured content parts). Only string-valued
// fields take part in token accounting.
//
// Example user message:
//
//	Message{
//	    "role":    RoleUser,
//	    "content": "What is the weather like today?",
//	}
type Message map[string]any

// NewMessage creates a message with the given role and content.
func NewMessage(role, content string) Message {
	return Message{
		FieldRole:    role,
		FieldContent: content,
	}
}

// Role returns the message role, or RoleUnknown when it is missing or not a string.
func (m Message) Role() string {
	if role, ok := m[FieldRole].(string); ok {
		return role
	}
	return RoleUnknown
}

// Content returns the message content, or an empty string when it is missing
// or not a string.
func (m Message) Content() string {
	content, _ := m[FieldContent].(string)
	return content
}

// Name returns the optional sender name and whether one is present.
func (m Message) Name() (string, bool) {
	name, ok := m[FieldName].(string)
	return name, ok
}

// WithName returns a copy of the message carrying the given name.
func (m Message) WithName(name string) Message {
	out := m.Clone()
	out[FieldName] = name
	return out
}

// Clone returns a shallow copy of the message.
func (m Message) Clone() Message {
	out := make(Message, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
