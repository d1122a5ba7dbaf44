package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// App runs the viewer as a full-screen program
type App struct {
	program *tea.Program
	logger  *log.Logger
}

// AppOptions contains options for creating a new App
type AppOptions struct {
	Logger *log.Logger

	// Input and Output default to the terminal
	Input  io.Reader
	Output io.Writer

	// InputTTY reads keys from the controlling terminal, for when stdin
	// carried the transcript
	InputTTY bool
}

// NewApp creates a new TUI application for model
func NewApp(ctx context.Context, model Model, opts AppOptions) *App {
	if opts.Logger == nil {
		opts.Logger = model.logger
	}

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	switch {
	case opts.InputTTY:
		programOpts = append(programOpts, tea.WithInputTTY())
	case opts.Input != nil:
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	return &App{
		program: tea.NewProgram(model, programOpts...),
		logger:  opts.Logger,
	}
}

// Run blocks until the user quits or the context is cancelled
func (a *App) Run() error {
	a.logger.Debug("starting viewer")

	if _, err := a.program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			a.logger.Debug("viewer cancelled")
			return nil
		}
		return fmt.Errorf("failed to run viewer: %w", err)
	}

	a.logger.Debug("viewer closed")
	return nil
}
