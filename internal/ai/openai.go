package ai

import (
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// FromOpenAI converts go-openai chat messages into the open message form used
// for token estimation.
//
// Fields left empty on the go-openai side are omitted, matching how the
// request is serialized on the wire. Structured fields (multi-part content,
// tool calls, function calls) are carried as their go-openai values, so the
// estimator skips them.
func FromOpenAI(messages []openai.ChatCompletionMessage) []Message {
	out := make([]Message, len(messages))
	for i, msg := range messages {
		m := Message{FieldRole: msg.Role}

		if len(msg.MultiContent) > 0 {
			m[FieldContent] = msg.MultiContent
		} else if msg.Content != "" {
			m[FieldContent] = msg.Content
		}
		if msg.Name != "" {
			m[FieldName] = msg.Name
		}
		if msg.Refusal != "" {
			m["refusal"] = msg.Refusal
		}
		if msg.ReasoningContent != "" {
			m["reasoning_content"] = msg.ReasoningContent
		}
		if msg.ToolCallID != "" {
			m["tool_call_id"] = msg.ToolCallID
		}
		if msg.FunctionCall != nil {
			m["function_call"] = *msg.FunctionCall
		}
		if len(msg.ToolCalls) > 0 {
			m["tool_calls"] = msg.ToolCalls
		}

		out[i] = m
	}
	return out
}

// FromOpenAIRequest converts a go-openai chat completion request into a transcript.
func FromOpenAIRequest(req openai.ChatCompletionRequest) *Transcript {
	return &Transcript{
		Model:    req.Model,
		Messages: FromOpenAI(req.Messages),
	}
}

// ParseOpenAIRequest decodes a JSON chat completion request body, as sent to
// the chat completions endpoint, into a transcript.
func ParseOpenAIRequest(data []byte) (*Transcript, error) {
	var req openai.ChatCompletionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTranscript, err)
	}
	return FromOpenAIRequest(req), nil
}
