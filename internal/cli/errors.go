package cli

import (
	"fmt"
	"io"

	"github.com/wfi-lang/wfi/internal/diag"
)

// FormatError renders err to w the way the toolchain's phases report a
// failure: a diag.Error gets its typed kind, message, and (when
// available) a Rust/Clang-style source snippet; anything else falls
// back to a plain "Error: ..." line.
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}
	if de, ok := err.(*diag.Error); ok {
		formatDiagError(w, de, useColor)
		return
	}
	fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
}

func formatDiagError(w io.Writer, e *diag.Error, useColor bool) {
	header := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	fmt.Fprintf(w, "%s\n", Colorize(header, ColorRed, useColor))
	if snippet := e.Snippet(); snippet != "" {
		fmt.Fprintf(w, "%s\n", Colorize(snippet, ColorGray, useColor))
	}
	if e.Cause != nil {
		fmt.Fprintf(w, "%s\n", Colorize(fmt.Sprintf("caused by: %v", e.Cause), ColorGray, useColor))
	}
}
