package tokens

import "sort"

// DefaultContextWindow is the window size assumed for unknown models.
const DefaultContextWindow = 4096

// contextWindows maps model identifiers to their context window size in
// tokens. It is never modified after initialization.
var contextWindows = map[string]int{
	"gpt-3.5-turbo":       4096,
	"gpt-3.5-turbo-16k":   16384,
	"gpt-4":               8192,
	"gpt-4-32k":           32768,
	"gpt-4-turbo":         128000,
	"gpt-4-turbo-preview": 128000,
}

// ContextWindowSize returns the context window size for model, or
// DefaultContextWindow when the model is not in the table.
func ContextWindowSize(model string) int {
	if size, ok := contextWindows[model]; ok {
		return size
	}
	return DefaultContextWindow
}

// TokenPercentage returns used as a percentage of model's context window.
func TokenPercentage(used int, model string) float64 {
	return float64(used) / float64(ContextWindowSize(model)) * 100
}

// WindowTable layers per-deployment overrides on top of the built-in
// context window table. A nil *WindowTable behaves like the built-in table.
type WindowTable struct {
	overrides map[string]int
}

// NewWindowTable returns a table with the given overrides. Non-positive
// sizes are ignored so a lookup can never divide by zero.
func NewWindowTable(overrides map[string]int) *WindowTable {
	t := &WindowTable{overrides: make(map[string]int, len(overrides))}
	for model, size := range overrides {
		if size > 0 {
			t.overrides[model] = size
		}
	}
	return t
}

// Size returns the context window size for model.
func (t *WindowTable) Size(model string) int {
	if t != nil {
		if size, ok := t.overrides[model]; ok {
			return size
		}
	}
	return ContextWindowSize(model)
}

// Percentage returns used as a percentage of model's context window.
func (t *WindowTable) Percentage(used int, model string) float64 {
	return float64(used) / float64(t.Size(model)) * 100
}

// Models returns every model with a known window size, sorted by name.
func (t *WindowTable) Models() []string {
	seen := make(map[string]struct{}, len(contextWindows))
	for model := range contextWindows {
		seen[model] = struct{}{}
	}
	if t != nil {
		for model := range t.overrides {
			seen[model] = struct{}{}
		}
	}

	models := make([]string, 0, len(seen))
	for model := range seen {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}
