package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a UI theme
type Theme interface {
	GetName() string
	GetColors() ColorScheme
}

// ColorScheme defines the color palette for a theme
type ColorScheme struct {
	// Primary colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Role colors
	User      lipgloss.Color
	Assistant lipgloss.Color
	System    lipgloss.Color
	Other     lipgloss.Color

	// Text colors
	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// UI element colors
	Border    lipgloss.Color
	Highlight lipgloss.Color
}

// Styles contains all the lipgloss styles used for console reports and the viewer
type Styles struct {
	// Color scheme
	Colors ColorScheme

	// Layout styles
	Header     lipgloss.Style
	Section    lipgloss.Style
	Comparison lipgloss.Style
	Footer     lipgloss.Style
	Thumb      lipgloss.Style

	// Message styles
	UserRole      lipgloss.Style
	AssistantRole lipgloss.Style
	SystemRole    lipgloss.Style
	OtherRole     lipgloss.Style
	MessageIndex  lipgloss.Style
	TokenCount    lipgloss.Style
	Total         lipgloss.Style

	// Usage bar tiers
	BarLow  lipgloss.Style
	BarMid  lipgloss.Style
	BarHigh lipgloss.Style

	// Comparison blocks
	Before  lipgloss.Style
	After   lipgloss.Style
	Savings lipgloss.Style

	// Status lines
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style

	// Text styles
	Body  lipgloss.Style
	Label lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style
}

// DefaultTheme implements the default theme
type DefaultTheme struct {
	name string
}

// DarkTheme implements a dark theme
type DarkTheme struct {
	name string
}

// LightTheme implements a light theme
type LightTheme struct {
	name string
}

// Theme instances
var (
	defaultTheme = &DefaultTheme{name: "default"}
	darkTheme    = &DarkTheme{name: "dark"}
	lightTheme   = &LightTheme{name: "light"}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "dark":
		return darkTheme
	case "light":
		return lightTheme
	default:
		return defaultTheme
	}
}

// GetAvailableThemes returns all available themes
func GetAvailableThemes() []string {
	return []string{"default", "dark", "light"}
}

// Default theme implementation
func (t *DefaultTheme) GetName() string {
	return t.name
}

// The default palette uses the 16 ANSI colors so reports look the same on
// any terminal theme.
func (t *DefaultTheme) GetColors() ColorScheme {
	return ColorScheme{
		Primary:    lipgloss.Color("14"), // Bright Cyan
		Secondary:  lipgloss.Color("11"), // Bright Yellow
		Accent:     lipgloss.Color("13"), // Bright Magenta
		Success:    lipgloss.Color("10"), // Bright Green
		Warning:    lipgloss.Color("11"), // Bright Yellow
		Error:      lipgloss.Color("9"),  // Bright Red
		Info:       lipgloss.Color("14"), // Bright Cyan
		User:       lipgloss.Color("10"),
		Assistant:  lipgloss.Color("12"), // Bright Blue
		System:     lipgloss.Color("13"),
		Other:      lipgloss.Color("15"), // White
		Foreground: lipgloss.Color("15"),
		Muted:      lipgloss.Color("8"), // Gray
		Border:     lipgloss.Color("8"),
		Highlight:  lipgloss.Color("11"),
	}
}

// Dark theme implementation
func (t *DarkTheme) GetName() string {
	return t.name
}

func (t *DarkTheme) GetColors() ColorScheme {
	return ColorScheme{
		Primary:    lipgloss.Color("#61DAFB"),
		Secondary:  lipgloss.Color("#E3B341"),
		Accent:     lipgloss.Color("#F78166"),
		Success:    lipgloss.Color("#56D364"),
		Warning:    lipgloss.Color("#E3B341"),
		Error:      lipgloss.Color("#F85149"),
		Info:       lipgloss.Color("#58A6FF"),
		User:       lipgloss.Color("#56D364"),
		Assistant:  lipgloss.Color("#58A6FF"),
		System:     lipgloss.Color("#D2A8FF"),
		Other:      lipgloss.Color("#F0F6FC"),
		Foreground: lipgloss.Color("#F0F6FC"),
		Muted:      lipgloss.Color("#8B949E"),
		Border:     lipgloss.Color("#30363D"),
		Highlight:  lipgloss.Color("#FBD834"),
	}
}

// Light theme implementation
func (t *LightTheme) GetName() string {
	return t.name
}

func (t *LightTheme) GetColors() ColorScheme {
	return ColorScheme{
		Primary:    lipgloss.Color("#0969DA"),
		Secondary:  lipgloss.Color("#9A6700"),
		Accent:     lipgloss.Color("#CF222E"),
		Success:    lipgloss.Color("#1A7F37"),
		Warning:    lipgloss.Color("#9A6700"),
		Error:      lipgloss.Color("#D1242F"),
		Info:       lipgloss.Color("#0969DA"),
		User:       lipgloss.Color("#1A7F37"),
		Assistant:  lipgloss.Color("#0550AE"),
		System:     lipgloss.Color("#8250DF"),
		Other:      lipgloss.Color("#24292F"),
		Foreground: lipgloss.Color("#24292F"),
		Muted:      lipgloss.Color("#656D76"),
		Border:     lipgloss.Color("#D0D7DE"),
		Highlight:  lipgloss.Color("#FFF8C5"),
	}
}

// NewStyles builds the styles for theme bound to renderer r, so that color
// output follows the profile of the writer r renders for.
func NewStyles(theme Theme, r *lipgloss.Renderer) Styles {
	colors := theme.GetColors()

	return Styles{
		Colors: colors,

		// Layout styles
		Header: r.NewStyle().
			Bold(true).
			Foreground(colors.Primary),

		Section: r.NewStyle().
			Bold(true).
			Foreground(colors.Secondary),

		Comparison: r.NewStyle().
			Bold(true).
			Foreground(colors.Accent),

		Footer: r.NewStyle().
			Foreground(colors.Muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colors.Border),

		Thumb: r.NewStyle().
			Foreground(colors.Highlight),

		// Message styles
		UserRole: r.NewStyle().
			Bold(true).
			Foreground(colors.User),

		AssistantRole: r.NewStyle().
			Bold(true).
			Foreground(colors.Assistant),

		SystemRole: r.NewStyle().
			Bold(true).
			Foreground(colors.System),

		OtherRole: r.NewStyle().
			Bold(true).
			Foreground(colors.Other),

		MessageIndex: r.NewStyle().
			Foreground(colors.Secondary),

		TokenCount: r.NewStyle().
			Foreground(colors.Info),

		Total: r.NewStyle().
			Bold(true).
			Foreground(colors.Info),

		// Usage bar tiers
		BarLow:  r.NewStyle().Foreground(colors.Success),
		BarMid:  r.NewStyle().Foreground(colors.Warning),
		BarHigh: r.NewStyle().Foreground(colors.Error),

		// Comparison blocks
		Before:  r.NewStyle().Foreground(colors.Error),
		After:   r.NewStyle().Foreground(colors.Success),
		Savings: r.NewStyle().Foreground(colors.Info),

		// Status lines
		Success: r.NewStyle().
			Bold(true).
			Foreground(colors.Success),

		Error: r.NewStyle().
			Bold(true).
			Foreground(colors.Error),

		Info: r.NewStyle().
			Foreground(colors.Info),

		Warning: r.NewStyle().
			Foreground(colors.Warning),

		// Text styles
		Body: r.NewStyle().
			Foreground(colors.Foreground),

		Label: r.NewStyle().
			Foreground(colors.Primary),

		Muted: r.NewStyle().
			Foreground(colors.Muted),

		Bold: r.NewStyle().
			Bold(true),
	}
}

// RoleStyle returns the style for a message role.
func (s Styles) RoleStyle(role string) lipgloss.Style {
	switch role {
	case "user":
		return s.UserRole
	case "assistant":
		return s.AssistantRole
	case "system":
		return s.SystemRole
	default:
		return s.OtherRole
	}
}
