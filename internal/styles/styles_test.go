package styles

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	for _, name := range GetAvailableThemes() {
		assert.Equal(t, name, GetTheme(name).GetName())
	}
	assert.Equal(t, "default", GetTheme("no-such-theme").GetName())
}

func TestRoleStyle(t *testing.T) {
	s := NewStyles(GetTheme("default"), lipgloss.DefaultRenderer())

	assert.Equal(t, s.Colors.User, s.RoleStyle("user").GetForeground())
	assert.Equal(t, s.Colors.Assistant, s.RoleStyle("assistant").GetForeground())
	assert.Equal(t, s.Colors.System, s.RoleStyle("system").GetForeground())
	assert.Equal(t, s.Colors.Other, s.RoleStyle("unknown").GetForeground())
}

func TestNewStylesFollowsRendererProfile(t *testing.T) {
	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.Ascii)

	s := NewStyles(GetTheme("dark"), r)

	assert.Equal(t, "[USER]", s.UserRole.Render("[USER]"))
	assert.Equal(t, "plain", s.Error.Render("plain"))
}

func TestFooterAndThumbStyles(t *testing.T) {
	for _, name := range GetAvailableThemes() {
		theme := GetTheme(name)
		s := NewStyles(theme, lipgloss.DefaultRenderer())

		assert.Equal(t, theme.GetColors().Highlight, s.Thumb.GetForeground(), "theme=%s", name)
		assert.True(t, s.Footer.GetBorderTop(), "theme=%s", name)
	}
}
