package diag

import (
	"fmt"
	"strings"
)

// Snippet renders e in the familiar Rust/Clang style: a location
// pointer, the offending source line, and a caret under the failing
// column. Returns "" if e carries no position.
func (e *Error) Snippet() string {
	if !e.HasPos {
		return ""
	}
	line := sourceLine(e.Source, e.Pos.Line)

	var b strings.Builder
	fmt.Fprintf(&b, "  --> %d:%d\n", e.Pos.Line, e.Pos.Column)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s\n", e.Pos.Line, line)
	b.WriteString("   | ")
	if e.Pos.Column > 0 && e.Pos.Column <= len(line)+1 {
		b.WriteString(strings.Repeat(" ", e.Pos.Column-1) + "^")
	}
	return b.String()
}

// Report renders the diagnostic this repository prints to
// stdout/stderr on failure: a single kind-and-message line, followed
// by a source snippet when a position is known.
func (e *Error) Report() string {
	snippet := e.Snippet()
	if snippet == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s\n%s", e.Kind, e.Message, snippet)
}
