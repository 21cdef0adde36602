package term

import (
	"strings"
	"unicode/utf8"
)

// escapeLen returns the byte length of the ANSI escape sequence starting at
// the beginning of s, or 0 when the bytes do not form one.
//
// The accepted grammar is the ECMA-48 subset terminals actually emit: ESC
// followed by a single final byte in `@`-`Z` or `\`-`_`, or a CSI sequence
// ESC `[` with zero or more parameter bytes (0x30-0x3F), zero or more
// intermediate bytes (0x20-0x2F) and exactly one final byte (0x40-0x7E).
func escapeLen(s string) int {
	if len(s) < 2 || s[0] != 0x1b {
		return 0
	}
	c := s[1]
	if c == '[' {
		i := 2
		for i < len(s) && s[i] >= 0x30 && s[i] <= 0x3f {
			i++
		}
		for i < len(s) && s[i] >= 0x20 && s[i] <= 0x2f {
			i++
		}
		if i < len(s) && s[i] >= 0x40 && s[i] <= 0x7e {
			return i + 1
		}
		return 0
	}
	if (c >= '@' && c <= 'Z') || (c >= '\\' && c <= '_') {
		return 2
	}
	return 0
}

// token is one piece of a styled string: either a complete escape sequence
// or a run of visible characters.
type token struct {
	text   string
	escape bool
}

// tokenize splits s into an alternating sequence of escape-sequence and
// visible-run tokens. Concatenating the tokens yields s unchanged.
func tokenize(s string) []token {
	var toks []token
	start := 0
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			if n := escapeLen(s[i:]); n > 0 {
				if i > start {
					toks = append(toks, token{text: s[start:i]})
				}
				toks = append(toks, token{text: s[i : i+n], escape: true})
				i += n
				start = i
				continue
			}
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	if start < len(s) {
		toks = append(toks, token{text: s[start:]})
	}
	return toks
}

// VisibleWidth returns the number of screen columns s occupies, counting
// runes and skipping ANSI escape sequences. Malformed escape-looking bytes
// count as visible characters.
func VisibleWidth(s string) int {
	width := 0
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			if n := escapeLen(s[i:]); n > 0 {
				i += n
				continue
			}
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		width++
		i += size
	}
	return width
}

// Cut removes exactly excess visible runes from the end of s while keeping
// every embedded escape sequence in its original relative order, so trailing
// style resets still apply after the cut. The marker is spliced in directly
// after the last retained visible rune, before any escape sequences that
// followed it; the marker itself does not count toward any width.
//
// A non-positive excess returns s unchanged with no marker inserted. When
// excess removes all visible content no marker is inserted either, since
// there is no retained rune to attach it to.
func Cut(s string, excess int, marker string) string {
	if excess <= 0 {
		return s
	}
	target := VisibleWidth(s) - excess
	if target < 0 {
		target = 0
	}

	var b strings.Builder
	current := 0
	for _, tok := range tokenize(s) {
		if tok.escape {
			b.WriteString(tok.text)
			continue
		}
		if current == target {
			continue
		}
		runes := []rune(tok.text)
		if current+len(runes) <= target {
			b.WriteString(tok.text)
			current += len(runes)
			if current == target {
				b.WriteString(marker)
			}
			continue
		}
		b.WriteString(string(runes[:target-current]))
		current = target
		b.WriteString(marker)
	}
	return b.String()
}
