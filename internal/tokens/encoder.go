// Package tokens estimates how many tokens text and chat message lists
// consume for a given model, and how much of the model's context window that
// represents.
//
// Tokenization itself is delegated to an Encoder resolved through a Registry,
// so alternate back-ends can be swapped in without touching the estimation
// logic.
package tokens

import (
	"errors"
	"fmt"
)

// DefaultEncoding is the encoding used when a model has no registered encoder.
const DefaultEncoding = "cl100k_base"

// Backend names accepted by NewRegistry.
const (
	// BackendEmbedded uses vocabularies compiled into the binary.
	BackendEmbedded = "embedded"

	// BackendDownload fetches BPE ranks on first use and caches them on disk.
	BackendDownload = "download"

	// BackendHeuristic approximates one token per four bytes.
	BackendHeuristic = "heuristic"
)

// ErrUnknownModel is returned by a Registry that has no encoder for a model.
var ErrUnknownModel = errors.New("no encoder registered for model")

// ErrUnknownBackend is returned by NewRegistry for unsupported back-ends.
var ErrUnknownBackend = errors.New("unknown encoder backend")

// Encoder turns text into a sequence of token ids.
type Encoder interface {
	// Name returns the encoding name, e.g. "cl100k_base".
	Name() string

	// Encode returns the token ids for text.
	Encode(text string) ([]uint, error)
}

// Registry resolves the encoder to use for a model.
type Registry interface {
	// ForModel returns the encoder registered for model, or an error
	// wrapping ErrUnknownModel.
	ForModel(model string) (Encoder, error)

	// Default returns the encoder for DefaultEncoding.
	Default() Encoder
}

// Backends returns the names accepted by NewRegistry.
func Backends() []string {
	return []string{BackendEmbedded, BackendDownload, BackendHeuristic}
}

// NewRegistry creates a registry for the named back-end.
// An empty name selects BackendEmbedded.
func NewRegistry(backend string) (Registry, error) {
	switch backend {
	case "", BackendEmbedded:
		return NewEmbeddedRegistry()
	case BackendDownload:
		return NewDownloadRegistry()
	case BackendHeuristic:
		return NewHeuristicRegistry(), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be one of %v)", ErrUnknownBackend, backend, Backends())
	}
}
