package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/common-creation/tokenscope/internal/ai"
)

// stdinPath names standard input in file arguments
const stdinPath = "-"

// readTranscript loads a transcript from path, or stdin for "-".
// With openaiFormat set the input must be a chat completion request body.
func readTranscript(cmd *cobra.Command, path string, openaiFormat bool) (*ai.Transcript, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}

	parse := ai.ParseTranscript
	if openaiFormat {
		parse = ai.ParseOpenAIRequest
	}

	t, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcript %s: %w", path, err)
	}
	return t, nil
}

// readText returns text from a file, or from stdin when it is not a terminal
func readText(cmd *cobra.Command, file string) (string, error) {
	if file != "" && file != stdinPath {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && file != stdinPath && isTerminal(f) {
		return "", fmt.Errorf("no text given: pass text arguments, --file, or pipe input")
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return string(data), nil
}

// modelFor picks the model for a transcript: an explicit override wins,
// then the transcript's own model, then the configured default
func (c *cli) modelFor(t *ai.Transcript) string {
	if !c.modelOverridden() && t != nil && t.Model != "" {
		return t.Model
	}
	return c.cfg.Model
}

func displayName(path string) string {
	if path == stdinPath {
		return "stdin"
	}
	return filepath.Base(path)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
