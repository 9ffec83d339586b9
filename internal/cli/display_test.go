package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wfi-lang/wfi/internal/whilelang"
)

func TestDisplayTokensTreeShape(t *testing.T) {
	toks, err := whilelang.Lex([]byte("x := 1"))
	assert.NoError(t, err)

	var buf bytes.Buffer
	DisplayTokens(&buf, stringerTokens(toks), false)

	out := buf.String()
	assert.Contains(t, out, "├─ ")
	assert.Contains(t, out, "└─ ")
	assert.Contains(t, out, "identifier(x)")
}

func TestDisplayTokensEmpty(t *testing.T) {
	var buf bytes.Buffer
	DisplayTokens(&buf, nil, false)
	assert.Equal(t, "(no tokens)\n", buf.String())
}

func TestDisplayASTDumpsStructure(t *testing.T) {
	toks, err := whilelang.Lex([]byte("skip"))
	assert.NoError(t, err)
	stmts, err := whilelang.Parse([]byte("skip"), toks)
	assert.NoError(t, err)

	var buf bytes.Buffer
	DisplayAST(&buf, stmts, false)
	assert.Contains(t, buf.String(), "Skip")
}
