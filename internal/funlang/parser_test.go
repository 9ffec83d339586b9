package funlang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) []Decl {
	t.Helper()
	toks, err := Lex([]byte(src))
	require.NoError(t, err)
	decls, err := Parse([]byte(src), toks)
	require.NoError(t, err)
	return decls
}

func TestParseValDecl(t *testing.T) {
	decls := parse(t, "val MAX: Int = 10; MAX")
	require.Len(t, decls, 2)
	c, ok := decls[0].(Const)
	require.True(t, ok)
	require.Equal(t, "MAX", c.Name)
	require.Equal(t, 10, c.Value)
	require.IsType(t, Main{}, decls[1])
}

func TestParseFConstDecl(t *testing.T) {
	decls := parse(t, "val PI: Double = 3.14; PI")
	fc, ok := decls[0].(FConst)
	require.True(t, ok)
	require.InDelta(t, 3.14, fc.Value, 1e-9)
}

func TestParseDefWithParams(t *testing.T) {
	decls := parse(t, "def add(a: Int, b: Int): Int = a + b; add(1, 2)")
	require.Len(t, decls, 2)
	d, ok := decls[0].(Def)
	require.True(t, ok)
	require.Equal(t, "add", d.Name)
	require.Equal(t, []Param{{Name: "a", Type: "Int"}, {Name: "b", Type: "Int"}}, d.Args)
	require.Equal(t, Aop{Op: "+", Left: Var{"a"}, Right: Var{"b"}}, d.Body)
}

func TestParseDefNoParams(t *testing.T) {
	decls := parse(t, "def zero(): Int = 0; zero()")
	d := decls[0].(Def)
	require.Empty(t, d.Args)
}

// TestParseRecursiveFactorial checks fact(5) parses to the expected
// recursive If/Call shape.
func TestParseRecursiveFactorial(t *testing.T) {
	decls := parse(t, "def fact(n: Int): Int = if n == 0 then 1 else n * fact(n-1); fact(5)")
	require.Len(t, decls, 2)
	d := decls[0].(Def)
	ifExp, ok := d.Body.(If)
	require.True(t, ok)
	require.Equal(t, Bop{Op: "==", Left: Var{"n"}, Right: Num{0}}, ifExp.Cond)
	require.Equal(t, Num{1}, ifExp.Then)
	mulExp, ok := ifExp.Else.(Aop)
	require.True(t, ok)
	require.Equal(t, "*", mulExp.Op)

	main := decls[1].(Main)
	call, ok := main.Body.(Call)
	require.True(t, ok)
	require.Equal(t, "fact", call.Name)
	require.Equal(t, []Exp{Num{5}}, call.Args)
}

func TestParseSequenceInBraces(t *testing.T) {
	decls := parse(t, "{ print_int(1); print_int(2) }")
	require.Len(t, decls, 1)
	main := decls[0].(Main)
	seq, ok := main.Body.(Sequence)
	require.True(t, ok)
	require.IsType(t, Call{}, seq.First)
	require.IsType(t, Call{}, seq.Second)
}

// TestParseDefBodyDoesNotSwallowSeparator checks that a def body ending
// in a bare M does not consume the top-level declaration semicolon as
// an in-expression Sequence.
func TestParseDefBodyDoesNotSwallowSeparator(t *testing.T) {
	decls := parse(t, "def one(): Int = 1; def two(): Int = 2; one()")
	require.Len(t, decls, 3)
	require.Equal(t, Num{1}, decls[0].(Def).Body)
	require.Equal(t, Num{2}, decls[1].(Def).Body)
}

func TestParsePrintString(t *testing.T) {
	decls := parse(t, `print_string("hello")`)
	main := decls[0].(Main)
	ps, ok := main.Body.(PrintString)
	require.True(t, ok)
	require.Equal(t, "hello", ps.Text)
}

func TestParseSkipAsCall(t *testing.T) {
	decls := parse(t, "skip")
	main := decls[0].(Main)
	call, ok := main.Body.(Call)
	require.True(t, ok)
	require.Equal(t, "skip", call.Name)
	require.Empty(t, call.Args)
}

func TestParseCharAndConstFactors(t *testing.T) {
	decls := parse(t, "val CODE: Int = 65; CODE + 'A'")
	main := decls[1].(Main)
	aop := main.Body.(Aop)
	require.Equal(t, Var{"CODE"}, aop.Left)
	require.Equal(t, ChConst{65}, aop.Right)
}

func TestParseExtraTokensFails(t *testing.T) {
	toks, err := Lex([]byte("1 2"))
	require.NoError(t, err)
	_, err = Parse([]byte("1 2"), toks)
	require.Error(t, err)
}

func TestParseMissingThenFails(t *testing.T) {
	toks, err := Lex([]byte("if 1 == 1 2 else 3"))
	require.NoError(t, err)
	_, err = Parse([]byte("if 1 == 1 2 else 3"), toks)
	require.Error(t, err)
}
