package tokens

import (
	"fmt"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// EmbeddedRegistry resolves encoders from github.com/tiktoken-go/tokenizer,
// whose vocabularies ship inside the binary.
type EmbeddedRegistry struct {
	fallback Encoder

	mu     sync.Mutex
	models map[string]Encoder
}

type codecEncoder struct {
	codec tokenizer.Codec
}

func (e *codecEncoder) Name() string {
	return e.codec.GetName()
}

func (e *codecEncoder) Encode(text string) ([]uint, error) {
	ids, _, err := e.codec.Encode(text)
	return ids, err
}

// NewEmbeddedRegistry loads the default encoding and returns the registry.
func NewEmbeddedRegistry() (*EmbeddedRegistry, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", DefaultEncoding, err)
	}

	return &EmbeddedRegistry{
		fallback: &codecEncoder{codec: codec},
		models:   make(map[string]Encoder),
	}, nil
}

// ForModel returns the encoder tiktoken-go/tokenizer registers for model.
func (r *EmbeddedRegistry) ForModel(model string) (Encoder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if enc, ok := r.models[model]; ok {
		return enc, nil
	}

	codec, err := tokenizer.ForModel(tokenizer.Model(model))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownModel, model, err)
	}

	enc := &codecEncoder{codec: codec}
	r.models[model] = enc
	return enc, nil
}

// Default returns the cl100k_base encoder.
func (r *EmbeddedRegistry) Default() Encoder {
	return r.fallback
}
