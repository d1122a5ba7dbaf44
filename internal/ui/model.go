// Package ui implements the interactive transcript viewer.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/common-creation/tokenscope/internal/ai"
	"github.com/common-creation/tokenscope/internal/report"
	"github.com/common-creation/tokenscope/internal/styles"
	"github.com/common-creation/tokenscope/internal/tokens"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	scrollbarWidth = 1
	thumbChar      = "█"
	trackChar      = "│"
)

// Model is the bubbletea model of the transcript viewer
type Model struct {
	// UI state
	width  int
	height int
	ready  bool

	viewport viewport.Model
	progress progress.Model
	help     help.Model
	keymap   KeyMap

	// Transcript state
	title    string
	model    string
	encoder  string
	messages []ai.Message
	counts   []int
	total    int
	window   int

	// Line offset of each message in the rendered content
	offsets    []int
	showTokens bool

	styles  styles.Styles
	printer *message.Printer
	logger  *log.Logger
}

// ModelOptions contains options for creating a new Model
type ModelOptions struct {
	Title      string
	Transcript *ai.Transcript
	Estimator  *tokens.Estimator
	Model      string
	Theme      string
	NoColor    bool
	Logger     *log.Logger
}

// NewModel creates a viewer for a transcript. Token counts are computed once
// up front; the viewer never recounts.
func NewModel(opts ModelOptions) Model {
	if opts.Estimator == nil {
		opts.Estimator = tokens.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	var messages []ai.Message
	if opts.Transcript != nil {
		messages = opts.Transcript.Messages
		if opts.Model == "" {
			opts.Model = opts.Transcript.Model
		}
	}
	if opts.Model == "" {
		opts.Model = ai.DefaultModel
	}

	renderer := lipgloss.DefaultRenderer()
	if opts.NoColor {
		renderer = lipgloss.NewRenderer(io.Discard)
		renderer.SetColorProfile(termenv.Ascii)
	}
	st := styles.NewStyles(styles.GetTheme(opts.Theme), renderer)

	counts := make([]int, len(messages))
	for i, msg := range messages {
		counts[i] = opts.Estimator.CountTokens(msg.Content(), opts.Model)
	}
	total := opts.Estimator.EstimateTokensForMessages(messages, opts.Model)
	window := opts.Estimator.ContextWindowSize(opts.Model)

	m := Model{
		width:      defaultWidth,
		height:     defaultHeight,
		viewport:   viewport.New(defaultWidth-scrollbarWidth, defaultHeight),
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		title:      opts.Title,
		model:      opts.Model,
		encoder:    opts.Estimator.Encoder(opts.Model).Name(),
		messages:   messages,
		counts:     counts,
		total:      total,
		window:     window,
		showTokens: true,
		styles:     st,
		printer:    message.NewPrinter(language.English),
		logger:     opts.Logger,
	}
	m.progress = m.newProgress(opts.NoColor)

	m.logger.Debug("viewer model created", "messages", len(messages), "total", total, "window", window)
	return m
}

func (m Model) newProgress(noColor bool) progress.Model {
	opts := []progress.Option{
		progress.WithWidth(m.width),
		progress.WithoutPercentage(),
	}

	if noColor {
		opts = append(opts,
			progress.WithColorProfile(termenv.Ascii),
			progress.WithFillCharacters('#', '-'),
		)
	} else {
		opts = append(opts, progress.WithSolidFill(string(m.tierColor())))
	}

	return progress.New(opts...)
}

func (m Model) tierColor() lipgloss.Color {
	switch report.TierFor(m.Percentage()) {
	case report.TierLow:
		return m.styles.Colors.Success
	case report.TierMid:
		return m.styles.Colors.Warning
	default:
		return m.styles.Colors.Error
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	m.help.Width = msg.Width
	m.progress.Width = max(msg.Width-lipgloss.Width(m.usageText())-1, 10)

	m.viewport.Width = max(msg.Width-scrollbarWidth, 1)
	m.viewport.Height = max(msg.Height-m.chromeHeight(), 1)
	m.updateViewportContent()
	m.ready = true

	m.logger.Debug("window resized", "width", m.width, "height", m.height)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = max(m.height-m.chromeHeight(), 1)
		return m, nil

	case key.Matches(msg, m.keymap.ToggleTokens):
		m.showTokens = !m.showTokens
		m.updateViewportContent()
		return m, nil

	case key.Matches(msg, m.keymap.NextMsg):
		m.jumpToMessage(m.nextMessage())
		return m, nil

	case key.Matches(msg, m.keymap.PrevMsg):
		m.jumpToMessage(m.prevMessage())
		return m, nil

	case key.Matches(msg, m.keymap.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keymap.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// nextMessage returns the first message starting below the top line
func (m Model) nextMessage() int {
	for i, off := range m.offsets {
		if off > m.viewport.YOffset {
			return i
		}
	}
	return len(m.offsets) - 1
}

// prevMessage returns the last message starting above the top line
func (m Model) prevMessage() int {
	for i := len(m.offsets) - 1; i >= 0; i-- {
		if m.offsets[i] < m.viewport.YOffset {
			return i
		}
	}
	return 0
}

func (m *Model) jumpToMessage(i int) {
	if i < 0 || i >= len(m.offsets) {
		return
	}
	m.viewport.SetYOffset(m.offsets[i])
}

// updateViewportContent renders every message into the viewport
func (m *Model) updateViewportContent() {
	var b strings.Builder
	m.offsets = make([]int, 0, len(m.messages))

	body := m.styles.Body.Width(max(m.viewport.Width-1, 1))

	line := 0
	for i, msg := range m.messages {
		m.offsets = append(m.offsets, line)

		heading := m.styles.MessageIndex.Render(fmt.Sprintf("Message %d ", i+1)) +
			m.styles.RoleStyle(msg.Role()).Render("["+strings.ToUpper(msg.Role())+"]")
		if name, ok := msg.Name(); ok {
			heading += m.styles.Muted.Render(" " + name)
		}
		if m.showTokens {
			heading += m.styles.TokenCount.Render(m.printer.Sprintf("  %d tokens", m.counts[i]))
		}

		block := heading + "\n" + body.Render(msg.Content()) + "\n\n"
		b.WriteString(block)
		line += strings.Count(block, "\n")
	}

	if len(m.messages) == 0 {
		b.WriteString(m.styles.Muted.Render("No messages."))
	}

	m.viewport.SetContent(b.String())
}

// View implements tea.Model interface
func (m Model) View() string {
	if !m.ready {
		return "Loading transcript..."
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.renderScrollbar())
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), content, m.renderFooter())
}

func (m Model) renderHeader() string {
	title := "tokenscope"
	if m.title != "" {
		title += " · " + m.title
	}

	info := m.printer.Sprintf("model: %s  encoder: %s  messages: %d", m.model, m.encoder, len(m.messages))
	return m.styles.Header.Render(title) + "\n" + m.styles.Muted.Render(info)
}

func (m Model) usageText() string {
	return m.printer.Sprintf("%d / %d (%.1f%%)", m.total, m.window, m.Percentage())
}

func (m Model) renderFooter() string {
	bar := m.progress.ViewAs(min(report.UsageRatio(m.total, m.window), 1))
	usage := m.styles.Label.Render(m.usageText())
	return m.styles.Footer.Render(bar + " " + usage + "\n" + m.help.View(m.keymap))
}

// renderScrollbar draws a one-column scrollbar beside the viewport
func (m Model) renderScrollbar() string {
	height := m.viewport.Height
	total := m.viewport.TotalLineCount()

	lines := make([]string, height)
	if total <= height {
		for i := range lines {
			lines[i] = " "
		}
		return strings.Join(lines, "\n")
	}

	thumb := max(height*height/total, 1)
	pos := int(float64(height-thumb) * m.viewport.ScrollPercent())

	for i := range lines {
		if i >= pos && i < pos+thumb {
			lines[i] = m.styles.Thumb.Render(thumbChar)
		} else {
			lines[i] = m.styles.Muted.Render(trackChar)
		}
	}
	return strings.Join(lines, "\n")
}

// chromeHeight is the number of lines used by header and footer
func (m Model) chromeHeight() int {
	return lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter())
}

// Total returns the estimated token total for the transcript
func (m Model) Total() int {
	return m.total
}

// Counts returns the per-message content token counts
func (m Model) Counts() []int {
	return m.counts
}

// Percentage returns the transcript's share of the model context window
func (m Model) Percentage() float64 {
	return report.UsageRatio(m.total, m.window) * 100
}
