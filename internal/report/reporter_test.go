package report

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/common-creation/tokenscope/internal/ai"
	"github.com/common-creation/tokenscope/internal/tokens"
)

func newTestReporter(buf *bytes.Buffer, opts ...Option) *Reporter {
	opts = append([]Option{
		WithNoColor(true),
		WithEstimator(tokens.NewEstimator(tokens.NewHeuristicRegistry())),
	}, opts...)
	return NewReporter(buf, opts...)
}

func TestComputeSavings(t *testing.T) {
	tests := []struct {
		name        string
		before      Usage
		after       Usage
		wantTokens  int
		wantPercent float64
	}{
		{
			name:        "typical reduction",
			before:      Usage{Tokens: 1000, Messages: 5},
			after:       Usage{Tokens: 400, Messages: 5},
			wantTokens:  600,
			wantPercent: 60.0,
		},
		{
			name:        "no change",
			before:      Usage{Tokens: 500},
			after:       Usage{Tokens: 500},
			wantTokens:  0,
			wantPercent: 0,
		},
		{
			name:        "growth is negative savings",
			before:      Usage{Tokens: 200},
			after:       Usage{Tokens: 300},
			wantTokens:  -100,
			wantPercent: -50,
		},
		{
			name:        "zero before reports zero percent",
			before:      Usage{Tokens: 0},
			after:       Usage{Tokens: 0},
			wantTokens:  0,
			wantPercent: 0,
		},
		{
			name:        "zero before with tokens after",
			before:      Usage{},
			after:       Usage{Tokens: 50},
			wantTokens:  -50,
			wantPercent: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeSavings(tt.before, tt.after)
			assert.Equal(t, tt.wantTokens, s.Tokens)
			assert.InDelta(t, tt.wantPercent, s.Percentage, 1e-9)
		})
	}
}

func TestFillLength(t *testing.T) {
	t.Run("monotonic in used", func(t *testing.T) {
		const max = 4096
		prev := 0
		for used := 0; used <= max+100; used += 7 {
			filled := FillLength(used, max, DefaultBarWidth)
			assert.GreaterOrEqual(t, filled, prev, "used=%d", used)
			prev = filled
		}
	})

	t.Run("full bar when used equals max", func(t *testing.T) {
		for _, max := range []int{1, 3, 50, 4096, 128000} {
			assert.Equal(t, DefaultBarWidth, FillLength(max, max, DefaultBarWidth))
		}
	})

	tests := []struct {
		name             string
		used, max, width int
		want             int
	}{
		{"empty", 0, 100, 50, 0},
		{"rounds down", 99, 100, 50, 49},
		{"half", 50, 100, 50, 25},
		{"overflow clamps", 300, 100, 50, 50},
		{"negative used clamps", -5, 100, 50, 0},
		{"zero max with usage", 10, 0, 50, 50},
		{"zero max without usage", 0, 0, 50, 0},
		{"zero width", 10, 100, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FillLength(tt.used, tt.max, tt.width))
		})
	}
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierLow, TierFor(0))
	assert.Equal(t, TierLow, TierFor(49.9))
	assert.Equal(t, TierMid, TierFor(50))
	assert.Equal(t, TierMid, TierFor(79.9))
	assert.Equal(t, TierHigh, TierFor(80))
	assert.Equal(t, TierHigh, TierFor(250))
}

func TestUsageRatio(t *testing.T) {
	assert.Equal(t, 0.5, UsageRatio(50, 100))
	assert.Equal(t, 2.0, UsageRatio(200, 100))
	assert.Equal(t, 1.0, UsageRatio(1, 0))
	assert.Equal(t, 0.0, UsageRatio(0, 0))
}

func TestVisualizeTokens(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf)

	r.VisualizeTokens(2048, 4096, "Context Usage")

	out := buf.String()
	assert.Contains(t, out, "Context Usage:\n")
	assert.Contains(t, out, strings.Repeat("#", 25)+strings.Repeat("-", 25)+" 50.0%")
	assert.Contains(t, out, "Tokens: 2,048 / 4,096")
	assert.NotContains(t, out, "\x1b[")
}

func TestVisualizeTokensDefaultsAndWidth(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf, WithBarWidth(10))

	r.VisualizeTokens(128000, 128000, "")

	out := buf.String()
	assert.Contains(t, out, "Context Usage:")
	assert.Contains(t, out, strings.Repeat("#", 10)+" 100.0%")
	assert.Contains(t, out, "Tokens: 128,000 / 128,000")
}

func TestVisualizeModelUsage(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf, WithModel(ai.ModelGPT4))

	r.VisualizeModelUsage(4096, "GPT-4")

	assert.Contains(t, buf.String(), "Tokens: 4,096 / 8,192")
}

func TestPrintComparison(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf)

	r.PrintComparison(Usage{Tokens: 1000, Messages: 5}, Usage{Tokens: 400, Messages: 5})

	out := buf.String()
	assert.Contains(t, out, "COMPARISON:")
	assert.Contains(t, out, "BEFORE:\n  Messages: 5\n  Tokens: 1,000")
	assert.Contains(t, out, "AFTER:\n  Messages: 5\n  Tokens: 400")
	assert.Contains(t, out, "Tokens Saved: 600 (60.0%)")
}

func TestPrintComparisonZeroBefore(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf)

	assert.NotPanics(t, func() {
		r.PrintComparison(Usage{}, Usage{Tokens: 10, Messages: 1})
	})
	assert.Contains(t, buf.String(), "Tokens Saved: -10 (0.0%)")
}

func TestPrintMessage(t *testing.T) {
	t.Run("with tokens", func(t *testing.T) {
		var buf bytes.Buffer
		r := newTestReporter(&buf)

		r.PrintMessage(ai.NewMessage(ai.RoleUser, "hello world!"), true)

		// heuristic encoder: 12 bytes -> 3 tokens
		assert.Equal(t, "[USER]\nhello world!\nTokens: 3\n\n", buf.String())
	})

	t.Run("without tokens", func(t *testing.T) {
		var buf bytes.Buffer
		r := newTestReporter(&buf)

		r.PrintMessage(ai.NewMessage(ai.RoleAssistant, "ok"), false)

		assert.Equal(t, "[ASSISTANT]\nok\n\n", buf.String())
	})

	t.Run("missing role and content", func(t *testing.T) {
		var buf bytes.Buffer
		r := newTestReporter(&buf)

		r.PrintMessage(ai.Message{}, true)

		assert.Equal(t, "[UNKNOWN]\n\nTokens: 0\n\n", buf.String())
	})
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	estimator := tokens.NewEstimator(tokens.NewHeuristicRegistry())
	r := newTestReporter(&buf, WithEstimator(estimator))

	msgs := []ai.Message{
		ai.NewMessage(ai.RoleSystem, "You are terse."),
		ai.NewMessage(ai.RoleUser, "Hi"),
	}
	r.PrintMessages(msgs, "")

	out := buf.String()
	assert.Contains(t, out, "Messages (2 messages)")
	assert.Contains(t, out, "Message 1:\n[SYSTEM]\nYou are terse.")
	assert.Contains(t, out, "Message 2:\n[USER]\nHi")

	total := estimator.EstimateTokensForMessages(msgs, ai.DefaultModel)
	assert.Contains(t, out, "Total tokens for all messages: "+strconv.Itoa(total))

	assert.Less(t, strings.Index(out, "Message 1:"), strings.Index(out, "Message 2:"))
	assert.Less(t, strings.Index(out, "Message 2:"), strings.Index(out, "Total tokens"))
}

func TestPrintMessagesEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf)

	r.PrintMessages(nil, "History")

	out := buf.String()
	assert.Contains(t, out, "History (0 messages)")
	assert.Contains(t, out, "Total tokens for all messages: 3")
}

func TestPrintHeaderAndSection(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf)

	r.PrintHeader("Context Demo")
	r.PrintSection("Step 1")

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 9)

	assert.Equal(t, strings.Repeat("=", RuleWidth), lines[1])
	assert.Equal(t, "Context Demo", strings.TrimSpace(lines[2]))
	assert.Len(t, lines[2], RuleWidth)
	assert.Equal(t, strings.Repeat("=", RuleWidth), lines[3])
	assert.Contains(t, buf.String(), strings.Repeat("-", RuleWidth)+"\nStep 1\n"+strings.Repeat("-", RuleWidth))
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf)

	r.PrintSuccess("saved")
	r.PrintError("failed")
	r.PrintInfo("note")
	r.PrintWarning("careful")

	assert.Equal(t, "[OK] saved\n[X] failed\n[i] note\n[!] careful\n", buf.String())
}

func TestColorOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, WithEstimator(tokens.NewEstimator(tokens.NewHeuristicRegistry())))
	r.renderer.SetColorProfile(termenv.ANSI)

	r.PrintError("failed")

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "[X] failed")
}
