package whilelang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) []Stmt {
	t.Helper()
	toks, err := Lex([]byte(src))
	require.NoError(t, err)
	stmts, err := Parse([]byte(src), toks)
	require.NoError(t, err)
	return stmts
}

func TestParseAssign(t *testing.T) {
	stmts := parse(t, "x := 1 + 2")
	require.Len(t, stmts, 1)
	assign, ok := stmts[0].(Assign)
	require.True(t, ok)
	require.Equal(t, "x", assign.Name)
	require.Equal(t, Aop{Op: "+", Left: Num{1}, Right: Num{2}}, assign.Expr)
}

// TestParseLeftAssociativeAddition checks the parser's law that a + b + c
// parses as (a+b)+c.
func TestParseLeftAssociativeAddition(t *testing.T) {
	stmts := parse(t, "x := a + b + c")
	assign := stmts[0].(Assign)
	want := Aop{
		Op:    "+",
		Left:  Aop{Op: "+", Left: Var{"a"}, Right: Var{"b"}},
		Right: Var{"c"},
	}
	require.Equal(t, want, assign.Expr)
}

func TestParseRightAssociativeMultiplication(t *testing.T) {
	stmts := parse(t, "x := a * b * c")
	assign := stmts[0].(Assign)
	want := Aop{
		Op:   "*",
		Left: Var{"a"},
		Right: Aop{Op: "*", Left: Var{"b"}, Right: Var{"c"}},
	}
	require.Equal(t, want, assign.Expr)
}

func TestParseIfElse(t *testing.T) {
	stmts := parse(t, `if 1 == 2 then { write "a" } else { write "b" }`)
	require.Len(t, stmts, 1)
	ifStmt, ok := stmts[0].(If)
	require.True(t, ok)
	require.Equal(t, Bop{Op: "==", Left: Num{1}, Right: Num{2}}, ifStmt.Cond)
	require.Equal(t, []Stmt{WriteString{Text: "a"}}, ifStmt.Then)
	require.Equal(t, []Stmt{WriteString{Text: "b"}}, ifStmt.Else)
}

func TestParseWhileLoop(t *testing.T) {
	stmts := parse(t, "x := 1; while x < 5 do { x := x + 1 }; write x")
	require.Len(t, stmts, 3)
	require.IsType(t, Assign{}, stmts[0])
	while, ok := stmts[1].(While)
	require.True(t, ok)
	require.Equal(t, Bop{Op: "<", Left: Var{"x"}, Right: Num{5}}, while.Cond)
	require.IsType(t, WriteId{}, stmts[2])
}

func TestParseParenthesizedLogicalBExp(t *testing.T) {
	stmts := parse(t, `if (1 == 1) && (2 == 2) then { skip } else { skip }`)
	ifStmt := stmts[0].(If)
	lop, ok := ifStmt.Cond.(Lop)
	require.True(t, ok)
	require.Equal(t, "&&", lop.Op)
}

func TestParseSkipAndRead(t *testing.T) {
	stmts := parse(t, "skip; read x; write(x)")
	require.Len(t, stmts, 3)
	require.Equal(t, Skip{}, stmts[0])
	require.Equal(t, Read{Name: "x"}, stmts[1])
	require.Equal(t, WriteId{Name: "x"}, stmts[2])
}

func TestParseExtraTokensFails(t *testing.T) {
	toks, err := Lex([]byte("skip skip"))
	require.NoError(t, err)
	_, err = Parse([]byte("skip skip"), toks)
	require.Error(t, err)
}

func TestParseMissingThenFails(t *testing.T) {
	toks, err := Lex([]byte("if true write x"))
	require.NoError(t, err)
	_, err = Parse([]byte("if true write x"), toks)
	require.Error(t, err)
}
