package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// defaultDir is the directory each dialect's source files are
// resolved relative to when the path given on the command line isn't
// found as-is: WHILE looks in ./examples/, FUN in ./fun_examples/.
func defaultDir(d Dialect) string {
	if d == DialectFun {
		return "fun_examples"
	}
	return "examples"
}

// inferDialect guesses a dialect from path's extension; ".fun" is FUN,
// everything else (including the no-extension case) defaults to
// WHILE, so the extension is optional.
func inferDialect(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fun":
		return DialectFun
	default:
		return DialectWhile
	}
}

// resolveSourcePath finds file: as given, relative to the current
// directory, or failing that inside the dialect's conventional
// examples directory.
func resolveSourcePath(file string, dialect Dialect) (string, error) {
	if _, err := os.Stat(file); err == nil {
		return file, nil
	}
	candidate := filepath.Join(defaultDir(dialect), file)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("wfi: cannot find %q (also looked in %s)", file, defaultDir(dialect))
}

// NewRootCommand builds the wfi command tree: a single root command
// taking one source-file argument with persistent flags.
func NewRootCommand() *cobra.Command {
	var (
		dialectFlag string
		noColor     bool
		timing      bool
		watch       bool
		dumpTokens  bool
		dumpAST     bool
		dumpResult  bool
	)

	root := &cobra.Command{
		Use:           "wfi <source-file>",
		Short:         "Lex, parse, and evaluate WHILE and FUN programs",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]

			dialect := Dialect(dialectFlag)
			if dialect == "" {
				dialect = inferDialect(file)
			}
			if dialect != DialectWhile && dialect != DialectFun {
				return fmt.Errorf("wfi: unknown dialect %q (want \"while\" or \"fun\")", dialectFlag)
			}

			path, err := resolveSourcePath(file, dialect)
			if err != nil {
				return err
			}

			useColor := ShouldUseColor(noColor)
			opts := Options{
				Dialect:     dialect,
				Timing:      timing,
				DumpTokens:  dumpTokens,
				DumpAST:     dumpAST,
				DumpResult:  dumpResult,
				UseColor:    useColor,
				Stdin:       os.Stdin,
				Stdout:      os.Stdout,
				Diagnostics: os.Stderr,
			}

			runOnce := func() error {
				src, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("wfi: error reading %s: %w", path, err)
				}
				return Run(src, opts)
			}

			if watch {
				ctx, cancel := NewInterruptContext()
				defer cancel()
				return Watch(ctx, path, os.Stderr, func() error {
					if err := runOnce(); err != nil {
						FormatError(os.Stderr, err, useColor)
					}
					return nil
				})
			}

			if err := runOnce(); err != nil {
				FormatError(os.Stderr, err, useColor)
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&dialectFlag, "dialect", "d", "", `language dialect: "while" or "fun" (default: inferred from file extension)`)
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostic output")
	root.PersistentFlags().BoolVar(&timing, "timing", false, "print lex/parse/eval phase durations")
	root.PersistentFlags().BoolVar(&watch, "watch", false, "re-run whenever the source file changes")
	root.PersistentFlags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream before parsing")
	root.PersistentFlags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before evaluating")
	root.PersistentFlags().BoolVar(&dumpResult, "dump-result", false, "print the final environment/result after evaluating")

	return root
}
