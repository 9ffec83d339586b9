package funlang

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, Value) {
	t.Helper()
	toks, err := Lex([]byte(src))
	require.NoError(t, err)
	decls, err := Parse([]byte(src), toks)
	require.NoError(t, err)

	var out bytes.Buffer
	interp := NewInterp(&out)
	result, err := interp.RunProgram(decls)
	require.NoError(t, err)
	return out.String(), result
}

// TestFactorialOfFive checks fact(5) reduces to 120.
func TestFactorialOfFive(t *testing.T) {
	_, result := run(t, "def fact(n: Int): Int = if n == 0 then 1 else n * fact(n-1); fact(5)")
	require.Equal(t, IntValue{120}, result)
}

// TestDeepRecursionDoesNotOverflow checks that a deeply recursive call
// (100000 frames deep in a naive recursive evaluator) completes
// without blowing the host call stack, since the explicit frame stack
// lives on the heap rather than in Go call frames.
func TestDeepRecursionDoesNotOverflow(t *testing.T) {
	_, result := run(t, "def f(n: Int): Int = if n == 0 then 0 else f(n-1); f(100000)")
	require.Equal(t, IntValue{0}, result)
}

func TestMutualRecursionSeesSibling(t *testing.T) {
	src := `
def isEven(n: Int): Int = if n == 0 then 1 else isOdd(n-1);
def isOdd(n: Int): Int = if n == 0 then 0 else isEven(n-1);
isEven(10)`
	_, result := run(t, src)
	require.Equal(t, IntValue{1}, result)
}

func TestPrintIntAndNewLine(t *testing.T) {
	out, _ := run(t, "def main2(): Int = 0; print_int(42); new_line(); 0")
	require.Equal(t, "42\n", out)
}

func TestPrintCharPrintsCharacter(t *testing.T) {
	out, _ := run(t, "print_char(65)")
	require.Equal(t, "A", out)
}

// TestPrintCharWritesRawByteAboveASCII checks that a code in 128-255
// is written as a single raw byte, not UTF-8-encoded as a rune.
func TestPrintCharWritesRawByteAboveASCII(t *testing.T) {
	out, _ := run(t, "print_char(200)")
	require.Equal(t, []byte{200}, []byte(out))
}

// TestPrintCharFallsBackOutsideByteRange checks that a code outside
// [0,255] falls back to its decimal string instead of failing.
func TestPrintCharFallsBackOutsideByteRange(t *testing.T) {
	out, _ := run(t, "print_char(256)")
	require.Equal(t, "256", out)

	out, _ = run(t, "print_char(0 - 1)")
	require.Equal(t, "-1", out)
}

func TestPrintStringExpandsEscapes(t *testing.T) {
	out, _ := run(t, `print_string("a\nb")`)
	require.Equal(t, "a\nb", out)
}

func TestDivideByZeroFails(t *testing.T) {
	toks, err := Lex([]byte("1 / 0"))
	require.NoError(t, err)
	decls, err := Parse([]byte("1 / 0"), toks)
	require.NoError(t, err)

	var out bytes.Buffer
	interp := NewInterp(&out)
	_, err = interp.RunProgram(decls)
	require.Error(t, err)
}

func TestFloatArithmeticDoesNotMixWithInt(t *testing.T) {
	toks, err := Lex([]byte("val PI: Double = 3.0; PI + 1"))
	require.NoError(t, err)
	decls, err := Parse([]byte("val PI: Double = 3.0; PI + 1"), toks)
	require.NoError(t, err)

	var out bytes.Buffer
	interp := NewInterp(&out)
	_, err = interp.RunProgram(decls)
	require.Error(t, err)
}

func TestFloatModuloUsesFmod(t *testing.T) {
	_, result := run(t, "val X: Double = 5.5; val Y: Double = 2.0; X % Y")
	fv, ok := result.(FloatValue)
	require.True(t, ok)
	require.InDelta(t, 1.5, fv.F, 1e-9)
}

func TestUndefinedVariableFails(t *testing.T) {
	toks, err := Lex([]byte("missing"))
	require.NoError(t, err)
	decls, err := Parse([]byte("missing"), toks)
	require.NoError(t, err)

	var out bytes.Buffer
	interp := NewInterp(&out)
	_, err = interp.RunProgram(decls)
	require.Error(t, err)
}

func TestArityMismatchFails(t *testing.T) {
	toks, err := Lex([]byte("def one(n: Int): Int = n; one()"))
	require.NoError(t, err)
	decls, err := Parse([]byte("def one(n: Int): Int = n; one()"), toks)
	require.NoError(t, err)

	var out bytes.Buffer
	interp := NewInterp(&out)
	_, err = interp.RunProgram(decls)
	require.Error(t, err)
}

func TestSkipIsANoOp(t *testing.T) {
	out, result := run(t, "skip")
	require.Equal(t, "", out)
	require.Equal(t, NoneValue{}, result)
}

// TestIterativeMatchesRecursiveOnFactorial checks the iterative
// evaluator's testable property against a naive recursive evaluator on
// an input shallow enough for both to terminate without overflowing
// the host stack.
func TestIterativeMatchesRecursiveOnFactorial(t *testing.T) {
	src := "def fact(n: Int): Int = if n == 0 then 1 else n * fact(n-1); fact(8)"
	toks, err := Lex([]byte(src))
	require.NoError(t, err)
	decls, err := Parse([]byte(src), toks)
	require.NoError(t, err)

	env := builtinEnv()
	var mainBody Exp
	for _, d := range decls {
		switch decl := d.(type) {
		case Def:
			env[decl.Name] = closureFunc{name: decl.Name, params: decl.Args, body: decl.Body, env: env}
		case Main:
			mainBody = decl.Body
		}
	}

	var out bytes.Buffer
	interp := NewInterp(&out)

	iterResult, err := interp.eval(mainBody, env)
	require.NoError(t, err)

	recResult, err := recursiveEval(interp, mainBody, env)
	require.NoError(t, err)

	require.Equal(t, recResult, iterResult)
	require.Equal(t, IntValue{40320}, iterResult)
}
