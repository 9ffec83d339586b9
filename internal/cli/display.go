package cli

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// DisplayTokens renders a token stream as a tree, one leaf per token,
// each prefixed with a branch marker ("└─ " on the last one).
func DisplayTokens(w io.Writer, tokens []fmt.Stringer, useColor bool) {
	if len(tokens) == 0 {
		fmt.Fprintln(w, "(no tokens)")
		return
	}
	for i, t := range tokens {
		prefix := "├─ "
		if i == len(tokens)-1 {
			prefix = "└─ "
		}
		fmt.Fprintf(w, "%s%s\n", prefix, Colorize(t.String(), ColorBlue, useColor))
	}
}

// dumpConfig mirrors spew's default config but disables pointer
// addresses, which are noise in an AST/regex dump meant for a human
// reading --dump-ast/--dump-result output rather than a heap
// investigation.
var dumpConfig = &spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

// DisplayAST pretty-prints any parsed value (an AST node slice, a
// Rexp, a Val) for --dump-ast/--dump-result output. Go has no
// derive-Debug; spew's
// recursive reflection-based dumper is the idiomatic stand-in.
func DisplayAST(w io.Writer, v any, useColor bool) {
	dump := dumpConfig.Sdump(v)
	fmt.Fprint(w, Colorize(dump, ColorCyan, useColor))
}
