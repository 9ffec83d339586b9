package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/wfi-lang/wfi/internal/funlang"
	"github.com/wfi-lang/wfi/internal/whilelang"
)

// Dialect selects which of the two languages a source file is lexed,
// parsed, and evaluated as.
type Dialect string

const (
	DialectWhile Dialect = "while"
	DialectFun   Dialect = "fun"
)

// Options controls one pipeline run: which stages to dump, and whether
// phase durations are reported, gated behind a flag rather than
// unconditional.
type Options struct {
	Dialect     Dialect
	Timing      bool
	DumpTokens  bool
	DumpAST     bool
	DumpResult  bool
	UseColor    bool
	Stdin       io.Reader
	Stdout      io.Writer
	Diagnostics io.Writer
}

// Run lexes, parses, and evaluates src under opts.Dialect, writing
// diagnostics and program output to opts.Stdout/opts.Diagnostics. It
// returns the error of whichever phase failed first, unwrapped; no
// phase attempts to recover.
func Run(src []byte, opts Options) error {
	switch opts.Dialect {
	case DialectWhile:
		return runWhile(src, opts)
	case DialectFun:
		return runFun(src, opts)
	default:
		return fmt.Errorf("wfi: unknown dialect %q", opts.Dialect)
	}
}

func runWhile(src []byte, opts Options) error {
	lexStart := time.Now()
	tokens, err := whilelang.Lex(src)
	lexTime := time.Since(lexStart)
	if err != nil {
		return err
	}
	if opts.DumpTokens {
		DisplayTokens(opts.Diagnostics, stringerTokens(tokens), opts.UseColor)
	}

	parseStart := time.Now()
	stmts, err := whilelang.Parse(src, tokens)
	parseTime := time.Since(parseStart)
	if err != nil {
		return err
	}
	if opts.DumpAST {
		DisplayAST(opts.Diagnostics, stmts, opts.UseColor)
	}

	interp := whilelang.NewInterp(opts.Stdin, opts.Stdout)
	evalStart := time.Now()
	env, err := interp.Run(stmts, whilelang.Env{})
	evalTime := time.Since(evalStart)
	if err != nil {
		return err
	}
	if opts.DumpResult {
		DisplayAST(opts.Diagnostics, env, opts.UseColor)
	}
	if opts.Timing {
		reportTiming(opts.Diagnostics, lexTime, parseTime, evalTime)
	}
	return nil
}

func runFun(src []byte, opts Options) error {
	lexStart := time.Now()
	tokens, err := funlang.Lex(src)
	lexTime := time.Since(lexStart)
	if err != nil {
		return err
	}
	if opts.DumpTokens {
		DisplayTokens(opts.Diagnostics, stringerFunTokens(tokens), opts.UseColor)
	}

	parseStart := time.Now()
	decls, err := funlang.Parse(src, tokens)
	parseTime := time.Since(parseStart)
	if err != nil {
		return err
	}
	if opts.DumpAST {
		DisplayAST(opts.Diagnostics, decls, opts.UseColor)
	}

	interp := funlang.NewInterp(opts.Stdout)
	evalStart := time.Now()
	result, err := interp.RunProgram(decls)
	evalTime := time.Since(evalStart)
	if err != nil {
		return err
	}
	if opts.DumpResult {
		DisplayAST(opts.Diagnostics, result, opts.UseColor)
	}
	if opts.Timing {
		reportTiming(opts.Diagnostics, lexTime, parseTime, evalTime)
	}
	return nil
}

// reportTiming emits the "Evaluation Time" / phase-duration diagnostic;
// --timing is what opts into it.
func reportTiming(w io.Writer, lexTime, parseTime, evalTime time.Duration) {
	fmt.Fprintf(w, "Lexing Time: %s seconds\n", formatSeconds(lexTime))
	fmt.Fprintf(w, "Parsing Time: %s seconds\n", formatSeconds(parseTime))
	fmt.Fprintf(w, "Evaluation Time: %s seconds\n", formatSeconds(evalTime))
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}

func stringerTokens(toks []whilelang.Token) []fmt.Stringer {
	out := make([]fmt.Stringer, len(toks))
	for i, t := range toks {
		out[i] = t
	}
	return out
}

func stringerFunTokens(toks []funlang.Token) []fmt.Stringer {
	out := make([]fmt.Stringer, len(toks))
	for i, t := range toks {
		out[i] = t
	}
	return out
}
