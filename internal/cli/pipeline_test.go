package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWhileProducesExpectedOutput(t *testing.T) {
	var stdout, diagBuf bytes.Buffer
	src := []byte(`x := 1; while x < 5 do { x := x + 1 }; write x`)

	err := Run(src, Options{
		Dialect:     DialectWhile,
		Stdin:       strings.NewReader(""),
		Stdout:      &stdout,
		Diagnostics: &diagBuf,
	})
	require.NoError(t, err)
	assert.Equal(t, "5", stdout.String())
}

func TestRunWhileBranch(t *testing.T) {
	var stdout, diagBuf bytes.Buffer
	src := []byte(`if 1 == 2 then { write "a" } else { write "b" }`)

	err := Run(src, Options{
		Dialect:     DialectWhile,
		Stdin:       strings.NewReader(""),
		Stdout:      &stdout,
		Diagnostics: &diagBuf,
	})
	require.NoError(t, err)
	assert.Equal(t, "b", stdout.String())
}

func TestRunFunFactorial(t *testing.T) {
	var stdout, diagBuf bytes.Buffer
	src := []byte(`def fact(n: Int): Int = if n == 0 then 1 else n * fact(n - 1); fact(5)`)

	err := Run(src, Options{
		Dialect:     DialectFun,
		Stdout:      &stdout,
		Diagnostics: &diagBuf,
		DumpResult:  true,
	})
	require.NoError(t, err)
	assert.Contains(t, diagBuf.String(), "120")
}

func TestRunReportsTimingWhenEnabled(t *testing.T) {
	var stdout, diagBuf bytes.Buffer
	src := []byte(`skip`)

	err := Run(src, Options{
		Dialect:     DialectWhile,
		Stdin:       strings.NewReader(""),
		Stdout:      &stdout,
		Diagnostics: &diagBuf,
		Timing:      true,
	})
	require.NoError(t, err)
	assert.Contains(t, diagBuf.String(), "Evaluation Time:")
}

func TestRunDumpsTokensAndAST(t *testing.T) {
	var stdout, diagBuf bytes.Buffer
	src := []byte(`skip`)

	err := Run(src, Options{
		Dialect:     DialectWhile,
		Stdin:       strings.NewReader(""),
		Stdout:      &stdout,
		Diagnostics: &diagBuf,
		DumpTokens:  true,
		DumpAST:     true,
	})
	require.NoError(t, err)
	out := diagBuf.String()
	assert.Contains(t, out, "keyword(skip)")
	assert.Contains(t, out, "Skip")
}

func TestRunPropagatesLexError(t *testing.T) {
	var stdout, diagBuf bytes.Buffer
	src := []byte(`x := 1 @ 2`)

	err := Run(src, Options{
		Dialect:     DialectWhile,
		Stdin:       strings.NewReader(""),
		Stdout:      &stdout,
		Diagnostics: &diagBuf,
	})
	require.Error(t, err)
}

func TestRunUnknownDialect(t *testing.T) {
	err := Run([]byte(`skip`), Options{Dialect: "cobol"})
	require.Error(t, err)
}
