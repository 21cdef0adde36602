// Package term implements the in-terminal UI primitives podbay is built on:
// ANSI-aware string measurement and truncation, cursor position tracking via
// device status reports, bordered frame rendering sized to the live terminal,
// and anchored inline input capture.
//
// # Styled strings
//
// Strings handled by this package may embed ANSI escape sequences (colors,
// cursor reports). Escape sequences occupy zero visible columns; every
// transformation here (VisibleWidth, Cut, Ellipsify) preserves embedded
// sequences intact and never splits one mid-sequence. Byte runs that merely
// look like an escape sequence but do not match the CSI grammar are treated
// as ordinary visible text.
//
// # State
//
// A Terminal holds no mutable state between calls beyond the buffered input
// reader over the live terminal device. Terminal size is re-queried on every
// render so a resize between calls never produces stale borders. All
// operations are synchronous and blocking; the cursor position query has no
// timeout, so a terminal that never answers a device status report blocks
// the caller. Cursor queries degrade to the origin position {1,1} instead of
// failing when the report is malformed or input is not an interactive
// terminal.
package term
