package term

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "empty string",
			input:    "",
			expected: 0,
		},
		{
			name:     "plain text",
			input:    "hello world",
			expected: 11,
		},
		{
			name:     "sgr color wrapped",
			input:    "\x1b[31mhello\x1b[39m",
			expected: 5,
		},
		{
			name:     "leading escape only",
			input:    "\x1b[1mbold",
			expected: 4,
		},
		{
			name:     "trailing escape only",
			input:    "bold\x1b[22m",
			expected: 4,
		},
		{
			name:     "csi with multiple parameters",
			input:    "\x1b[38;5;196mred\x1b[0m",
			expected: 3,
		},
		{
			name:     "csi with intermediate bytes",
			input:    "\x1b[0 qtext",
			expected: 4,
		},
		{
			name:     "two byte escape",
			input:    "\x1bMtext",
			expected: 4,
		},
		{
			name:     "escape only",
			input:    "\x1b[7m\x1b[27m",
			expected: 0,
		},
		{
			name:     "malformed escape counts as visible",
			input:    "\x1b1",
			expected: 2,
		},
		{
			name:     "unterminated csi counts as visible",
			input:    "\x1b[31",
			expected: 4,
		},
		{
			name:     "lone escape at end",
			input:    "ab\x1b",
			expected: 3,
		},
		{
			name:     "multibyte runes",
			input:    "héllo ━━",
			expected: 8,
		},
		{
			name:     "box drawing with styling",
			input:    "┏\x1b[1m━\x1b[22m┓",
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VisibleWidth(tt.input))
		})
	}
}

// Width of a string without escape sequences equals its rune count.
func TestVisibleWidthPlainEqualsRuneCount(t *testing.T) {
	for _, s := range []string{"", "a", "some plain text", "héllo", "━┃┏"} {
		assert.Equal(t, utf8.RuneCountInString(s), VisibleWidth(s), "input %q", s)
	}
}

// Escape sequences are width-transparent wherever they appear.
func TestVisibleWidthEscapeTransparency(t *testing.T) {
	const s = "payload"
	for _, e := range []string{"\x1b[31m", "\x1b[39m", "\x1b[1m", "\x1b[38;5;196m", "\x1b[6n"} {
		assert.Equal(t, VisibleWidth(s), VisibleWidth(e+s), "prefix %q", e)
		assert.Equal(t, VisibleWidth(s), VisibleWidth(s+e), "suffix %q", e)
		assert.Equal(t, VisibleWidth(s), VisibleWidth(e+s+e), "wrapped %q", e)
	}
}

func TestCut(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		excess   int
		marker   string
		expected string
	}{
		{
			name:     "plain cut",
			input:    "abcdef",
			excess:   2,
			expected: "abcd",
		},
		{
			name:     "plain cut with marker",
			input:    "abcdef",
			excess:   2,
			marker:   "!",
			expected: "abcd!",
		},
		{
			name:     "cut preserves trailing styling",
			input:    "\x1b[31mHELLO\x1b[39m",
			excess:   2,
			expected: "\x1b[31mHEL\x1b[39m",
		},
		{
			name:     "marker spliced before trailing escape",
			input:    "\x1b[31mHELLO\x1b[39m",
			excess:   2,
			marker:   "..",
			expected: "\x1b[31mHEL..\x1b[39m",
		},
		{
			name:     "cut across styled segments",
			input:    "ab\x1b[1mcd\x1b[22mef",
			excess:   3,
			marker:   "-",
			expected: "ab\x1b[1mc-\x1b[22m",
		},
		{
			name:     "boundary lands between segments",
			input:    "ab\x1b[1mcd\x1b[22mef",
			excess:   2,
			marker:   "-",
			expected: "ab\x1b[1mcd-\x1b[22m",
		},
		{
			name:     "zero excess is a no-op",
			input:    "abc",
			excess:   0,
			marker:   "!",
			expected: "abc",
		},
		{
			name:     "negative excess is a no-op",
			input:    "\x1b[31mabc\x1b[39m",
			excess:   -3,
			marker:   "!",
			expected: "\x1b[31mabc\x1b[39m",
		},
		{
			name:     "excess beyond width drops all visible content",
			input:    "\x1b[1mabc\x1b[22m",
			excess:   10,
			marker:   "!",
			expected: "\x1b[1m\x1b[22m",
		},
		{
			name:     "multibyte runes cut whole",
			input:    "héllo",
			excess:   2,
			expected: "hél",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cut(tt.input, tt.excess, tt.marker)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// Re-measuring a cut string yields the expected visible width.
func TestCutWidthInvariant(t *testing.T) {
	inputs := []string{
		"plain text with some length",
		"\x1b[31mred\x1b[39m and \x1b[1mbold\x1b[22m text",
		"━━━ styled \x1b[7mboxes\x1b[27m ━━━",
	}
	for _, s := range inputs {
		width := VisibleWidth(s)
		for excess := 1; excess < width; excess++ {
			got := Cut(s, excess, "")
			assert.Equal(t, width-excess, VisibleWidth(got), "input %q excess %d", s, excess)
		}
	}
}
