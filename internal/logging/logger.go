// Package logging builds charmbracelet loggers from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Prefix is attached to every log line
const Prefix = "tokenscope"

// New creates a logger writing to w. A nil writer means os.Stderr.
func New(config LoggingConfig, w io.Writer) (*log.Logger, error) {
	level, err := parseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := parseFormatter(config.Format)
	if err != nil {
		return nil, err
	}

	if w == nil {
		w = os.Stderr
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: config.Timestamp,
		ReportCaller:    config.Caller,
		Prefix:          Prefix,
	}), nil
}

// Open creates a logger for config, appending to config.File when set.
// The returned closer releases the file and is never nil.
func Open(config LoggingConfig) (*log.Logger, io.Closer, error) {
	if config.File == "" {
		logger, err := New(config, os.Stderr)
		return logger, io.NopCloser(nil), err
	}

	if err := os.MkdirAll(filepath.Dir(config.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger, err := New(config, file)
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	return logger, file, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
