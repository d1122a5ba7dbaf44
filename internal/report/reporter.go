// Package report renders token usage, message transcripts and status lines
// for terminal output.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/common-creation/tokenscope/internal/ai"
	"github.com/common-creation/tokenscope/internal/styles"
	"github.com/common-creation/tokenscope/internal/tokens"
)

// Layout constants.
const (
	RuleWidth       = 80
	DefaultBarWidth = 50

	barFilled = "#"
	barEmpty  = "-"
)

// Status line prefixes.
const (
	PrefixSuccess = "[OK] "
	PrefixError   = "[X] "
	PrefixInfo    = "[i] "
	PrefixWarning = "[!] "
)

// Reporter writes formatted reports to an output stream.
// Write errors are ignored; reports are best-effort terminal output.
type Reporter struct {
	out       io.Writer
	renderer  *lipgloss.Renderer
	styles    styles.Styles
	estimator *tokens.Estimator
	model     string
	barWidth  int
	printer   *message.Printer
}

// Option configures a Reporter.
type Option func(*reporterOptions)

type reporterOptions struct {
	estimator *tokens.Estimator
	theme     string
	noColor   bool
	model     string
	barWidth  int
}

// WithEstimator sets the estimator used to annotate message dumps.
func WithEstimator(e *tokens.Estimator) Option {
	return func(o *reporterOptions) { o.estimator = e }
}

// WithTheme selects a theme by name.
func WithTheme(name string) Option {
	return func(o *reporterOptions) { o.theme = name }
}

// WithNoColor disables ANSI styling.
func WithNoColor(noColor bool) Option {
	return func(o *reporterOptions) { o.noColor = noColor }
}

// WithModel sets the model used for token counts.
func WithModel(model string) Option {
	return func(o *reporterOptions) { o.model = model }
}

// WithBarWidth sets the number of cells in usage bars.
func WithBarWidth(width int) Option {
	return func(o *reporterOptions) { o.barWidth = width }
}

// NewReporter creates a reporter writing to w. A nil writer means os.Stdout.
func NewReporter(w io.Writer, opts ...Option) *Reporter {
	if w == nil {
		w = os.Stdout
	}

	o := reporterOptions{
		model:    ai.DefaultModel,
		barWidth: DefaultBarWidth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.estimator == nil {
		o.estimator = tokens.Default()
	}
	if o.barWidth <= 0 {
		o.barWidth = DefaultBarWidth
	}

	renderer := lipgloss.NewRenderer(w)
	if o.noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Reporter{
		out:       w,
		renderer:  renderer,
		styles:    styles.NewStyles(styles.GetTheme(o.theme), renderer),
		estimator: o.estimator,
		model:     o.model,
		barWidth:  o.barWidth,
		printer:   message.NewPrinter(language.English),
	}
}

// Model returns the model used for token counts.
func (r *Reporter) Model() string {
	return r.model
}

// PrintHeader prints a title centered between two double rules.
func (r *Reporter) PrintHeader(title string) {
	rule := strings.Repeat("=", RuleWidth)
	centered := lipgloss.PlaceHorizontal(RuleWidth, lipgloss.Center, title)

	r.println()
	r.println(rule)
	r.println(r.styles.Header.Render(centered))
	r.println(rule)
	r.println()
}

// PrintSection prints a section title between two single rules.
func (r *Reporter) PrintSection(title string) {
	rule := strings.Repeat("-", RuleWidth)

	r.println()
	r.println(r.styles.Section.Render(rule))
	r.println(r.styles.Section.Render(title))
	r.println(r.styles.Section.Render(rule))
	r.println()
}

// VisualizeTokens prints a labeled usage bar for used out of max tokens.
func (r *Reporter) VisualizeTokens(used, max int, label string) {
	if label == "" {
		label = "Context Usage"
	}

	ratio := UsageRatio(used, max)
	percentage := ratio * 100
	filled := FillLength(used, max, r.barWidth)
	bar := strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, r.barWidth-filled)

	r.println(r.styles.Label.Render(label + ":"))
	r.println(fmt.Sprintf("%s %.1f%%", r.barStyle(TierFor(percentage)).Render(bar), percentage))
	r.println(r.printer.Sprintf("Tokens: %d / %d", used, max))
	r.println()
}

// VisualizeModelUsage prints a usage bar for used tokens against the
// reporter model's context window.
func (r *Reporter) VisualizeModelUsage(used int, label string) {
	r.VisualizeTokens(used, r.estimator.ContextWindowSize(r.model), label)
}

// PrintComparison prints a before/after comparison of token usage.
func (r *Reporter) PrintComparison(before, after Usage) {
	rule := strings.Repeat("-", RuleWidth)
	savings := ComputeSavings(before, after)

	r.println()
	r.println(r.styles.Comparison.Render("COMPARISON:"))
	r.println(rule)

	r.println()
	r.println(r.styles.Before.Render("BEFORE:"))
	r.println(fmt.Sprintf("  Messages: %d", before.Messages))
	r.println(r.printer.Sprintf("  Tokens: %d", before.Tokens))

	r.println()
	r.println(r.styles.After.Render("AFTER:"))
	r.println(fmt.Sprintf("  Messages: %d", after.Messages))
	r.println(r.printer.Sprintf("  Tokens: %d", after.Tokens))

	r.println()
	r.println(r.styles.Savings.Render("SAVINGS:"))
	r.println(r.printer.Sprintf("  Tokens Saved: %d (%.1f%%)", savings.Tokens, savings.Percentage))
	r.println(rule)
	r.println()
}

// PrintMessage prints a role tag and the message content, optionally
// followed by the content's token count.
func (r *Reporter) PrintMessage(msg ai.Message, showTokens bool) {
	role := msg.Role()
	content := msg.Content()

	r.println(r.styles.RoleStyle(role).Render("[" + strings.ToUpper(role) + "]"))
	r.println(content)

	if showTokens {
		count := r.estimator.CountTokens(content, r.model)
		r.println(r.styles.TokenCount.Render(fmt.Sprintf("Tokens: %d", count)))
	}

	r.println()
}

// PrintMessages prints every message with its token count, followed by the
// estimated total for the whole list.
func (r *Reporter) PrintMessages(messages []ai.Message, title string) {
	if title == "" {
		title = "Messages"
	}

	r.PrintSection(fmt.Sprintf("%s (%d messages)", title, len(messages)))

	total := r.estimator.EstimateTokensForMessages(messages, r.model)

	for i, msg := range messages {
		r.println(r.styles.MessageIndex.Render(fmt.Sprintf("Message %d:", i+1)))
		r.PrintMessage(msg, true)
	}

	r.println(r.styles.Total.Render(r.printer.Sprintf("Total tokens for all messages: %d", total)))
	r.println()
}

// PrintSuccess prints a success status line.
func (r *Reporter) PrintSuccess(msg string) {
	r.println(r.styles.Success.Render(PrefixSuccess + msg))
}

// PrintError prints an error status line.
func (r *Reporter) PrintError(msg string) {
	r.println(r.styles.Error.Render(PrefixError + msg))
}

// PrintInfo prints an informational status line.
func (r *Reporter) PrintInfo(msg string) {
	r.println(r.styles.Info.Render(PrefixInfo + msg))
}

// PrintWarning prints a warning status line.
func (r *Reporter) PrintWarning(msg string) {
	r.println(r.styles.Warning.Render(PrefixWarning + msg))
}

func (r *Reporter) barStyle(tier Tier) lipgloss.Style {
	switch tier {
	case TierLow:
		return r.styles.BarLow
	case TierMid:
		return r.styles.BarMid
	default:
		return r.styles.BarHigh
	}
}

func (r *Reporter) println(s ...string) {
	fmt.Fprintln(r.out, strings.Join(s, ""))
}
