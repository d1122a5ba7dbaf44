package tokens

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// DownloadRegistry resolves encoders from github.com/pkoukk/tiktoken-go.
//
// BPE ranks are downloaded the first time an encoding is used; set
// TIKTOKEN_CACHE_DIR to keep them between runs.
type DownloadRegistry struct {
	fallback Encoder

	mu     sync.Mutex
	models map[string]Encoder
}

type bpeEncoder struct {
	name string
	bpe  *tiktoken.Tiktoken
}

func (e *bpeEncoder) Name() string {
	return e.name
}

func (e *bpeEncoder) Encode(text string) ([]uint, error) {
	ids := e.bpe.EncodeOrdinary(text)
	out := make([]uint, len(ids))
	for i, id := range ids {
		out[i] = uint(id)
	}
	return out, nil
}

// NewDownloadRegistry fetches the default encoding and returns the registry.
func NewDownloadRegistry() (*DownloadRegistry, error) {
	bpe, err := tiktoken.GetEncoding(DefaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", DefaultEncoding, err)
	}

	return &DownloadRegistry{
		fallback: &bpeEncoder{name: DefaultEncoding, bpe: bpe},
		models:   make(map[string]Encoder),
	}, nil
}

// ForModel returns the encoder tiktoken-go maps model to, including its
// prefix rules for dated model snapshots.
func (r *DownloadRegistry) ForModel(model string) (Encoder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if enc, ok := r.models[model]; ok {
		return enc, nil
	}

	name, ok := encodingForModel(model, tiktoken.MODEL_TO_ENCODING, tiktoken.MODEL_PREFIX_TO_ENCODING)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownModel, model)
	}

	bpe, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding for model %q: %w", name, model, err)
	}

	enc := &bpeEncoder{name: name, bpe: bpe}
	r.models[model] = enc
	return enc, nil
}

// encodingForModel looks model up in exact, then in prefixes. The longest
// matching prefix wins so the result does not depend on map order.
func encodingForModel(model string, exact, prefixes map[string]string) (string, bool) {
	if name, ok := exact[model]; ok {
		return name, true
	}

	var name, matched string
	for prefix, encoding := range prefixes {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(matched) {
			matched, name = prefix, encoding
		}
	}
	return name, matched != ""
}

// Default returns the cl100k_base encoder.
func (r *DownloadRegistry) Default() Encoder {
	return r.fallback
}
