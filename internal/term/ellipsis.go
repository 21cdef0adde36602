package term

import "strings"

// ellipsis marks truncated content. Its characters count toward the budget.
const ellipsis = "..."

// Ellipsify caps s to at most budget visible runes, appending an ellipsis
// when truncation happens. Embedded escape sequences survive truncation so
// active styling is never left visually open.
//
// Unless preserve is set, leading and trailing whitespace is stripped first.
// A budget of zero or less yields the empty string; budgets of 1 to 3 yield
// the matching tail of the ellipsis itself when s does not fit.
func Ellipsify(s string, budget int, preserve bool) string {
	if budget <= 0 {
		return ""
	}

	if !preserve {
		s = strings.TrimSpace(s)
	}

	width := VisibleWidth(s)
	if width <= budget {
		return s
	}

	if len(ellipsis) >= budget {
		return ellipsis[len(ellipsis)-budget:]
	}

	overshoot := width - budget + len(ellipsis)
	return Cut(s, overshoot, ellipsis)
}
