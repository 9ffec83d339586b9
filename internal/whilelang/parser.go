package whilelang

import "github.com/wfi-lang/wfi/internal/diag"

// parser is a recursive-descent reader over a fixed token slice,
// mirroring the index-threading style of the original reference
// parser: each parse* method advances p.pos and returns an error
// rather than passing an explicit next-index back to the caller.
type parser struct {
	toks []Token
	src  []byte
	pos  int
}

// Parse consumes toks entirely, producing the WHILE program's
// statement list. It fails with diag.ExtraTokens if tokens remain
// after a complete, well-formed parse.
func Parse(src []byte, toks []Token) ([]Stmt, error) {
	p := &parser{toks: toks, src: src}
	stmts, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, diag.ExtraTokens(src, p.pos, p.offsetAt(p.pos))
	}
	return stmts, nil
}

func (p *parser) offsetAt(i int) int {
	if i < len(p.toks) {
		return p.toks[i].Offset
	}
	if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		return last.Offset + len(last.String())
	}
	return 0
}

func (p *parser) peek() (Token, bool) {
	if p.pos < len(p.toks) {
		return p.toks[p.pos], true
	}
	return Token{}, false
}

func (p *parser) describeCurrent() string {
	if t, ok := p.peek(); ok {
		return t.String()
	}
	return "end of input"
}

// keywords lists every WHILE keyword, used to offer a "did you mean"
// hint when a parse failure's current token is an identifier close
// to one of them (e.g. a typo'd "whille").
var keywords = []string{"skip", "while", "if", "then", "else", "true", "false", "read", "write", "do"}

func (p *parser) errorf(expected string) error {
	t, ok := p.peek()
	err := diag.ParseError(p.src, p.pos, p.offsetAt(p.pos), expected, p.describeCurrent())
	if ok && t.Kind == Ident {
		err = err.WithSuggestion(t.Text, keywords)
	}
	return err
}

func (p *parser) matchKeyword(kw string) bool {
	t, ok := p.peek()
	if ok && t.Kind == Keyword && t.Text == kw {
		p.pos++
		return true
	}
	return false
}

func (p *parser) matchOp(op string) bool {
	t, ok := p.peek()
	if ok && t.Kind == Operator && t.Text == op {
		p.pos++
		return true
	}
	return false
}

func (p *parser) matchParen(par string) bool {
	t, ok := p.peek()
	if ok && t.Kind == Paren && t.Text == par {
		p.pos++
		return true
	}
	return false
}

func (p *parser) matchSemi() bool {
	t, ok := p.peek()
	if ok && t.Kind == Semi {
		p.pos++
		return true
	}
	return false
}

func (p *parser) matchIdent() (string, bool) {
	t, ok := p.peek()
	if ok && t.Kind == Ident {
		p.pos++
		return t.Text, true
	}
	return "", false
}

func (p *parser) matchNumber() (int, bool) {
	t, ok := p.peek()
	if ok && t.Kind == Number {
		p.pos++
		return t.Num, true
	}
	return 0, false
}

func (p *parser) matchString() (string, bool) {
	t, ok := p.peek()
	if ok && t.Kind == String {
		p.pos++
		return t.Text, true
	}
	return "", false
}

func isOpOneOf(t Token, ops ...string) bool {
	if t.Kind != Operator {
		return false
	}
	for _, op := range ops {
		if t.Text == op {
			return true
		}
	}
	return false
}

// parseAExp implements AExp := Te (('+'|'-') Te)*, left-associative.
func (p *parser) parseAExp() (AExp, error) {
	left, err := p.parseTe()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || !isOpOneOf(t, "+", "-") {
			return left, nil
		}
		p.pos++
		right, err := p.parseTe()
		if err != nil {
			return nil, err
		}
		left = Aop{Op: t.Text, Left: left, Right: right}
	}
}

// parseTe implements Te := Fa (('*'|'/'|'%') Te)?, right-associative:
// the optional tail recurses into Te itself, not Fa.
func (p *parser) parseTe() (AExp, error) {
	left, err := p.parseFa()
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if !ok || !isOpOneOf(t, "*", "/", "%") {
		return left, nil
	}
	p.pos++
	right, err := p.parseTe()
	if err != nil {
		return nil, err
	}
	return Aop{Op: t.Text, Left: left, Right: right}, nil
}

func (p *parser) parseFa() (AExp, error) {
	if p.matchParen("(") {
		inner, err := p.parseAExp()
		if err != nil {
			return nil, err
		}
		if !p.matchParen(")") {
			return nil, p.errorf("')'")
		}
		return inner, nil
	}
	if name, ok := p.matchIdent(); ok {
		return Var{Name: name}, nil
	}
	if n, ok := p.matchNumber(); ok {
		return Num{Value: n}, nil
	}
	return nil, p.errorf("'(' expression ')', identifier, or number")
}

// parseBExp implements the BExp alternatives. The
// relational-vs-parenthesized forms are distinguished by a single
// bounded attempt at an AExp: if that attempt does not end on a
// comparison operator, the position is rewound and the parenthesized
// forms are tried instead.
func (p *parser) parseBExp() (BExp, error) {
	start := p.pos

	if left, err := p.parseAExp(); err == nil {
		if t, ok := p.peek(); ok && isOpOneOf(t, "==", "!=", "<", ">", "<=", ">=") {
			p.pos++
			right, err := p.parseAExp()
			if err != nil {
				return nil, err
			}
			return Bop{Op: t.Text, Left: left, Right: right}, nil
		}
	}
	p.pos = start

	if p.matchParen("(") {
		inner, err := p.parseBExp()
		if err != nil {
			return nil, err
		}
		if !p.matchParen(")") {
			return nil, p.errorf("')'")
		}
		if t, ok := p.peek(); ok && isOpOneOf(t, "&&", "||") {
			p.pos++
			right, err := p.parseBExp()
			if err != nil {
				return nil, err
			}
			return Lop{Op: t.Text, Left: inner, Right: right}, nil
		}
		return inner, nil
	}

	if p.matchKeyword("true") {
		return TrueConst{}, nil
	}
	if p.matchKeyword("false") {
		return FalseConst{}, nil
	}

	return nil, p.errorf("a boolean expression")
}

// parseStmt implements the Stmt alternatives.
func (p *parser) parseStmt() (Stmt, error) {
	if p.matchKeyword("skip") {
		return Skip{}, nil
	}

	if t, ok := p.peek(); ok && t.Kind == Ident {
		name, _ := p.matchIdent()
		if !p.matchOp(":=") {
			return nil, p.errorf("':='")
		}
		expr, err := p.parseAExp()
		if err != nil {
			return nil, err
		}
		return Assign{Name: name, Expr: expr}, nil
	}

	if p.matchKeyword("if") {
		cond, err := p.parseBExp()
		if err != nil {
			return nil, err
		}
		if !p.matchKeyword("then") {
			return nil, p.errorf("'then'")
		}
		thenBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if !p.matchKeyword("else") {
			return nil, p.errorf("'else'")
		}
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return If{Cond: cond, Then: thenBlock, Else: elseBlock}, nil
	}

	if p.matchKeyword("while") {
		cond, err := p.parseBExp()
		if err != nil {
			return nil, err
		}
		if !p.matchKeyword("do") {
			return nil, p.errorf("'do'")
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return While{Cond: cond, Body: body}, nil
	}

	if p.matchKeyword("read") {
		name, ok := p.matchIdent()
		if !ok {
			return nil, p.errorf("identifier")
		}
		return Read{Name: name}, nil
	}

	if p.matchKeyword("write") {
		if name, ok := p.matchIdent(); ok {
			return WriteId{Name: name}, nil
		}
		if text, ok := p.matchString(); ok {
			return WriteString{Text: text}, nil
		}
		if p.matchParen("(") {
			if name, ok := p.matchIdent(); ok {
				if !p.matchParen(")") {
					return nil, p.errorf("')'")
				}
				return WriteId{Name: name}, nil
			}
			if text, ok := p.matchString(); ok {
				if !p.matchParen(")") {
					return nil, p.errorf("')'")
				}
				return WriteString{Text: text}, nil
			}
			return nil, p.errorf("identifier or string literal")
		}
		return nil, p.errorf("identifier, string literal, or '('")
	}

	return nil, p.errorf("a statement")
}

// parseStmts implements Stmts := Stmt (';' Stmts)?.
func (p *parser) parseStmts() ([]Stmt, error) {
	first, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if !p.matchSemi() {
		return []Stmt{first}, nil
	}
	rest, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	return append([]Stmt{first}, rest...), nil
}

// parseBlock implements Block := '{' Stmts '}' | Stmt.
func (p *parser) parseBlock() ([]Stmt, error) {
	if p.matchParen("{") {
		stmts, err := p.parseStmts()
		if err != nil {
			return nil, err
		}
		if !p.matchParen("}") {
			return nil, p.errorf("'}'")
		}
		return stmts, nil
	}
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return []Stmt{stmt}, nil
}
