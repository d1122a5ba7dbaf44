package tokens

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/common-creation/tokenscope/internal/ai"
)

// Chat formatting overhead for the gpt-3.5/gpt-4 message format.
const (
	// TokensPerMessage covers the role and delimiter tokens wrapping each message.
	TokensPerMessage = 3

	// TokensPerName is the extra delimiter cost of a name field.
	TokensPerName = 1

	// ReplyPrimingTokens primes the model's reply turn.
	ReplyPrimingTokens = 3
)

// Estimator counts tokens for text and message lists.
type Estimator struct {
	registry Registry
	windows  *WindowTable
	logger   *log.Logger
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithLogger sets the logger used to report encoder fallbacks.
func WithLogger(logger *log.Logger) Option {
	return func(e *Estimator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWindows sets the context window table.
func WithWindows(windows *WindowTable) Option {
	return func(e *Estimator) {
		e.windows = windows
	}
}

// NewEstimator creates an estimator resolving encoders through registry.
func NewEstimator(registry Registry, opts ...Option) *Estimator {
	e := &Estimator{
		registry: registry,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encoder returns the encoder for model, falling back to the registry's
// default encoder when the model is not recognized.
func (e *Estimator) Encoder(model string) Encoder {
	enc, err := e.registry.ForModel(model)
	if err != nil {
		e.logger.Debug("Falling back to default encoding", "model", model, "encoding", DefaultEncoding, "error", err)
		return e.registry.Default()
	}
	return enc
}

// CountTokens returns the number of tokens text encodes to for model.
func (e *Estimator) CountTokens(text, model string) int {
	return e.encodedLen(e.Encoder(model), text)
}

// EstimateTokensForMessages estimates the prompt tokens a chat completion
// request with messages would consume.
//
// Every message costs TokensPerMessage plus the encoded length of each of its
// string-valued fields, role included; a name field costs TokensPerName more.
// Non-string fields are not counted. ReplyPrimingTokens is added once at the end.
func (e *Estimator) EstimateTokensForMessages(messages []ai.Message, model string) int {
	enc := e.Encoder(model)

	total := 0
	for _, msg := range messages {
		total += TokensPerMessage
		for key, value := range msg {
			s, ok := value.(string)
			if !ok {
				continue
			}
			total += e.encodedLen(enc, s)
			if key == ai.FieldName {
				total += TokensPerName
			}
		}
	}

	return total + ReplyPrimingTokens
}

// ContextWindowSize returns the context window size for model.
func (e *Estimator) ContextWindowSize(model string) int {
	return e.windows.Size(model)
}

// TokenPercentage returns used as a percentage of model's context window.
func (e *Estimator) TokenPercentage(used int, model string) float64 {
	return e.windows.Percentage(used, model)
}

// Windows returns the estimator's context window table.
func (e *Estimator) Windows() *WindowTable {
	return e.windows
}

func (e *Estimator) encodedLen(enc Encoder, text string) int {
	if text == "" {
		return 0
	}
	ids, err := enc.Encode(text)
	if err != nil {
		e.logger.Warn("Failed to encode text", "encoding", enc.Name(), "length", len(text), "error", err)
		return 0
	}
	return len(ids)
}

var (
	defaultEstimator *Estimator
	defaultOnce      sync.Once
)

// Default returns the process-wide estimator backed by the embedded
// tiktoken vocabularies. If they cannot be loaded the heuristic back-end is
// used instead.
func Default() *Estimator {
	defaultOnce.Do(func() {
		var registry Registry
		registry, err := NewEmbeddedRegistry()
		if err != nil {
			log.Warn("Embedded encodings unavailable, using heuristic counts", "error", err)
			registry = NewHeuristicRegistry()
		}
		defaultEstimator = NewEstimator(registry)
	})
	return defaultEstimator
}

// CountTokens counts the tokens in text for model using the default estimator.
func CountTokens(text, model string) int {
	return Default().CountTokens(text, model)
}

// EstimateTokensForMessages estimates the prompt tokens for messages using
// the default estimator.
func EstimateTokensForMessages(messages []ai.Message, model string) int {
	return Default().EstimateTokensForMessages(messages, model)
}
