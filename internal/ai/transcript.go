package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transcript is a list of chat messages, optionally tagged with the model
// they were written for.
type Transcript struct {
	Model    string
	Messages []Message
}

// ParseTranscript decodes a transcript from JSON or YAML.
//
// Two shapes are accepted: a bare list of message objects, or a chat request
// object with a "messages" list and an optional "model" string.
func ParseTranscript(data []byte) (*Transcript, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	switch v := doc.(type) {
	case nil:
		return nil, &TranscriptError{Index: -1, Reason: "empty document"}
	case []any:
		messages, err := toMessages(v)
		if err != nil {
			return nil, err
		}
		return &Transcript{Messages: messages}, nil
	case map[string]any:
		raw, ok := v["messages"]
		if !ok {
			return nil, &TranscriptError{Index: -1, Reason: `object has no "messages" field`}
		}
		list, ok := raw.([]any)
		if !ok && raw != nil {
			return nil, &TranscriptError{Index: -1, Reason: `"messages" is not a list`}
		}
		messages, err := toMessages(list)
		if err != nil {
			return nil, err
		}
		t := &Transcript{Messages: messages}
		if model, ok := v["model"].(string); ok {
			t.Model = model
		}
		return t, nil
	default:
		return nil, &TranscriptError{Index: -1, Reason: fmt.Sprintf("unexpected document type %T", doc)}
	}
}

// decodeDocument decodes JSON input with encoding/json and anything else
// with yaml.v3. yaml.v3 rejects some valid JSON, such as "\/" and
// surrogate pair escapes or repeated keys.
func decodeDocument(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &TranscriptError{Index: -1, Reason: "empty document"}
	}

	var doc any
	if trimmed[0] == '[' || trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err == nil {
			return doc, nil
		}
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTranscript, err)
	}
	return doc, nil
}

// LoadTranscript reads and parses a transcript file.
func LoadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}

	t, err := ParseTranscript(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcript %s: %w", path, err)
	}
	return t, nil
}

func toMessages(list []any) ([]Message, error) {
	messages := make([]Message, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &TranscriptError{Index: i, Reason: fmt.Sprintf("expected an object, got %T", item)}
		}
		messages = append(messages, Message(obj))
	}
	return messages, nil
}
