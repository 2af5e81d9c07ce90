package output

import (
	"fmt"
	"strings"
)

// ScoreBar renders a visual bar for a debt score on the 0-4 scale, where
// higher means more debt. Example: "██████░░░░ 2.4/4.0"
func ScoreBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 4.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case score > 3:
		style = func(s string) string { return StyleError.Render(s) }
	case score > 2:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleSuccess.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%.1f/4.0", score)))
}

// TrendArrow returns a styled trend indicator for a score delta. Debt scores
// improve downward, so a falling score renders green and a rising one red.
func TrendArrow(delta float64) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	if delta > 0 {
		return StyleError.Render(fmt.Sprintf("▲ +%.1f", delta))
	}
	return StyleSuccess.Render(fmt.Sprintf("▼ %.1f", delta))
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
