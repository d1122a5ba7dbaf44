package ai

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageAccessors(t *testing.T) {
	t.Run("role and content", func(t *testing.T) {
		msg := NewMessage(RoleUser, "hello")
		assert.Equal(t, RoleUser, msg.Role())
		assert.Equal(t, "hello", msg.Content())
		_, ok := msg.Name()
		assert.False(t, ok)
	})

	t.Run("missing role is unknown", func(t *testing.T) {
		msg := Message{"content": "orphan"}
		assert.Equal(t, RoleUnknown, msg.Role())
	})

	t.Run("non-string content reads as empty", func(t *testing.T) {
		msg := Message{"role": RoleAssistant, "content": []any{"part"}}
		assert.Equal(t, "", msg.Content())
	})

	t.Run("with name does not mutate the original", func(t *testing.T) {
		msg := NewMessage(RoleUser, "hi")
		named := msg.WithName("alice")

		name, ok := named.Name()
		assert.True(t, ok)
		assert.Equal(t, "alice", name)

		_, ok = msg.Name()
		assert.False(t, ok)
	})
}

func TestParseTranscript(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantModel string
		wantLen   int
	}{
		{
			name:    "json list",
			input:   `[{"role": "system", "content": "be brief"}, {"role": "user", "content": "hi"}]`,
			wantLen: 2,
		},
		{
			name:      "json request object",
			input:     `{"model": "gpt-4", "messages": [{"role": "user", "content": "hi"}]}`,
			wantModel: "gpt-4",
			wantLen:   1,
		},
		{
			name: "yaml list",
			input: `
- role: user
  content: hello
- role: assistant
  content: hi there
  name: bot
`,
			wantLen: 2,
		},
		{
			name:    "empty messages list",
			input:   `{"messages": []}`,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcript, err := ParseTranscript([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, transcript.Model)
			assert.Len(t, transcript.Messages, tt.wantLen)
		})
	}
}

func TestParseTranscriptKeepsNonStringFields(t *testing.T) {
	input := `[{"role": "assistant", "content": "ok", "tool_calls": [{"id": "call_1"}], "index": 3}]`

	transcript, err := ParseTranscript([]byte(input))
	require.NoError(t, err)
	require.Len(t, transcript.Messages, 1)

	msg := transcript.Messages[0]
	assert.Equal(t, "ok", msg.Content())
	assert.IsType(t, []any{}, msg["tool_calls"])
	assert.EqualValues(t, 3, msg["index"])
}

func TestParseTranscriptJSONEscapes(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantContent string
	}{
		{
			name:        "escaped slash",
			input:       `[{"role": "user", "content": "a\/b"}]`,
			wantContent: "a/b",
		},
		{
			name:        "surrogate pair",
			input:       `[{"role": "user", "content": "hi \ud83d\ude00"}]`,
			wantContent: "hi \U0001F600",
		},
		{
			name:        "repeated key keeps the last value",
			input:       `[{"role": "user", "content": "x", "content": "y"}]`,
			wantContent: "y",
		},
		{
			name:        "request object with escapes",
			input:       "  \n" + `{"model": "gpt-4", "messages": [{"role": "user", "content": "\u00e9t\u00e9 \/ \ud83d\ude00"}]}`,
			wantContent: "\u00e9t\u00e9 / \U0001F600",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcript, err := ParseTranscript([]byte(tt.input))
			require.NoError(t, err)
			require.Len(t, transcript.Messages, 1)
			assert.Equal(t, tt.wantContent, transcript.Messages[0].Content())
		})
	}
}

func TestParseTranscriptErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "scalar document", input: `42`},
		{name: "object without messages", input: `{"model": "gpt-4"}`},
		{name: "messages not a list", input: `{"messages": "hi"}`},
		{name: "message not an object", input: `["hi"]`},
		{name: "malformed", input: `[{"role": "user"`},
		{name: "empty document", input: ``},
		{name: "whitespace only", input: " \n\t\n"},
		{name: "yaml null", input: "~\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTranscript([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTranscript))
		})
	}
}

func TestTranscriptErrorIndex(t *testing.T) {
	_, err := ParseTranscript([]byte(`[{"role": "user"}, 7]`))

	var terr *TranscriptError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 1, terr.Index)
	assert.Contains(t, err.Error(), "message 1")
}

func TestLoadTranscript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"role": "user", "content": "hi"}]`), 0644))

	transcript, err := LoadTranscript(path)
	require.NoError(t, err)
	assert.Len(t, transcript.Messages, 1)

	_, err = LoadTranscript(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFromOpenAI(t *testing.T) {
	req := openai.ChatCompletionRequest{
		Model: openai.GPT4,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful assistant."},
			{Role: openai.ChatMessageRoleUser, Content: "Hello!", Name: "alice"},
			{
				Role: openai.ChatMessageRoleAssistant,
				ToolCalls: []openai.ToolCall{
					{ID: "call_1", Type: openai.ToolTypeFunction, Function: openai.FunctionCall{Name: "lookup"}},
				},
			},
			{Role: openai.ChatMessageRoleTool, Content: "42", ToolCallID: "call_1"},
		},
	}

	transcript := FromOpenAIRequest(req)
	require.Len(t, transcript.Messages, 4)
	assert.Equal(t, openai.GPT4, transcript.Model)

	user := transcript.Messages[1]
	assert.Equal(t, "Hello!", user.Content())
	name, ok := user.Name()
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	assistant := transcript.Messages[2]
	_, hasContent := assistant[FieldContent]
	assert.False(t, hasContent)
	assert.IsType(t, []openai.ToolCall{}, assistant["tool_calls"])

	tool := transcript.Messages[3]
	assert.Equal(t, "call_1", tool["tool_call_id"])
}

func TestParseOpenAIRequest(t *testing.T) {
	body := []byte(`{
		"model": "gpt-4",
		"messages": [
			{"role": "system", "content": "Be brief."},
			{"role": "user", "name": "alice", "content": "hi"},
			{"role": "assistant", "tool_calls": [
				{"id": "call_1", "type": "function", "function": {"name": "lookup", "arguments": "{}"}}
			]}
		]
	}`)

	tr, err := ParseOpenAIRequest(body)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4", tr.Model)
	require.Len(t, tr.Messages, 3)
	assert.Equal(t, "Be brief.", tr.Messages[0].Content())
	name, ok := tr.Messages[1].Name()
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	_, isString := tr.Messages[2]["tool_calls"].(string)
	assert.False(t, isString)
	assert.Equal(t, "", tr.Messages[2].Content())

	_, err = ParseOpenAIRequest([]byte(`{"messages": "nope"}`))
	assert.True(t, errors.Is(err, ErrInvalidTranscript))
}
