package report

// Usage summarizes a message list for comparisons.
type Usage struct {
	Tokens   int
	Messages int
}

// Savings is the difference between two usages.
type Savings struct {
	Tokens     int
	Percentage float64
}

// ComputeSavings returns how many tokens after saves relative to before.
// When before has no tokens the percentage is 0 rather than a division by zero.
func ComputeSavings(before, after Usage) Savings {
	saved := before.Tokens - after.Tokens
	if before.Tokens <= 0 {
		return Savings{Tokens: saved}
	}
	return Savings{
		Tokens:     saved,
		Percentage: float64(saved) / float64(before.Tokens) * 100,
	}
}

// UsageRatio returns used/max. A non-positive max counts as fully used
// unless nothing is used.
func UsageRatio(used, max int) float64 {
	if max <= 0 {
		if used > 0 {
			return 1
		}
		return 0
	}
	return float64(used) / float64(max)
}

// FillLength returns how many of width bar cells are filled for used out of
// max, rounded down and clamped to [0, width].
func FillLength(used, max, width int) int {
	if width <= 0 {
		return 0
	}

	var filled int
	if max <= 0 {
		if used > 0 {
			filled = width
		}
	} else {
		filled = int(int64(width) * int64(used) / int64(max))
	}

	if filled < 0 {
		return 0
	}
	if filled > width {
		return width
	}
	return filled
}

// Tier is a usage color band.
type Tier int

const (
	// TierLow is under 50% usage.
	TierLow Tier = iota
	// TierMid is 50% up to 80% usage.
	TierMid
	// TierHigh is 80% usage and above.
	TierHigh
)

// TierFor returns the band for a usage percentage.
func TierFor(percentage float64) Tier {
	switch {
	case percentage < 50:
		return TierLow
	case percentage < 80:
		return TierMid
	default:
		return TierHigh
	}
}
