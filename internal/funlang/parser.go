package funlang

import "github.com/wfi-lang/wfi/internal/diag"

// parser is a recursive-descent reader over a fixed token slice, in
// the same index-threading style as the WHILE parser.
type parser struct {
	toks []Token
	src  []byte
	pos  int
}

// Parse consumes toks entirely, producing the top-level declaration
// list. It fails with diag.ExtraTokens if tokens remain after a
// complete, well-formed parse.
func Parse(src []byte, toks []Token) ([]Decl, error) {
	p := &parser{toks: toks, src: src}
	decls, err := p.parseProg()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, diag.ExtraTokens(src, p.pos, p.offsetAt(p.pos))
	}
	return decls, nil
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

// keywords lists every FUN keyword, used to offer a "did you mean"
// hint when a parse failure's current token is an identifier close
// to one of them.
var keywords = []string{"if", "then", "else", "def", "val"}

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

func (p *parser) matchKind(k Kind) (Token, bool) {
	t, ok := p.peek()
	if ok && t.Kind == k {
		p.pos++
		return t, true
	}
	return Token{}, false
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

// parseProg implements Prog := (Defn ';' Prog) | Block, where a
// trailing Block with no declarations becomes the program's Main.
func (p *parser) parseProg() ([]Decl, error) {
	if decl, ok, err := p.tryParseDefn(); err != nil {
		return nil, err
	} else if ok {
		if !p.matchSemiToken() {
			return nil, p.errorf("';' after declaration")
		}
		rest, err := p.parseProg()
		if err != nil {
			return nil, err
		}
		return append([]Decl{decl}, rest...), nil
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return []Decl{Main{Body: body}}, nil
}

func (p *parser) matchSemiToken() bool {
	t, ok := p.peek()
	if ok && t.Kind == Semi {
		p.pos++
		return true
	}
	return false
}

// tryParseDefn reports whether the next tokens form a 'def' or 'val'
// declaration; unlike the bounded Exp backtracking in tryParseExp,
// this decision needs no rewind because 'def'/'val' are keywords that
// cannot otherwise start a Block.
func (p *parser) tryParseDefn() (Decl, bool, error) {
	if p.matchKeyword("def") {
		def, err := p.parseDef()
		return def, true, err
	}
	if p.matchKeyword("val") {
		val, err := p.parseVal()
		return val, true, err
	}
	return nil, false, nil
}

func (p *parser) parseDef() (Decl, error) {
	nameTok, ok := p.matchKind(Ident)
	if !ok {
		return nil, p.errorf("identifier after 'def'")
	}
	if _, ok := p.matchKind(LParen); !ok {
		return nil, p.errorf("'(' after def name")
	}
	var params []Param
	if _, ok := p.matchKind(RParen); !ok {
		var err error
		params, err = p.parseParamList()
		if err != nil {
			return nil, err
		}
		if _, ok := p.matchKind(RParen); !ok {
			return nil, p.errorf("')' after parameter list")
		}
	}
	if _, ok := p.matchKind(Colon); !ok {
		return nil, p.errorf("':' after parameter list")
	}
	tyTok, ok := p.matchKind(TypeName)
	if !ok {
		return nil, p.errorf("return type")
	}
	if !p.matchOp("=") {
		return nil, p.errorf("'=' after return type")
	}
	// A def body is parsed with Block_no_seq so its trailing semicolon
	// is left for the top-level declaration separator, not swallowed
	// as an in-body Sequence.
	body, err := p.parseBlockNoSeq()
	if err != nil {
		return nil, err
	}
	return Def{Name: nameTok.Text, Args: params, Type: tyTok.Text, Body: body}, nil
}

func (p *parser) parseVal() (Decl, error) {
	constTok, ok := p.matchKind(ConstName)
	if !ok {
		return nil, p.errorf("constant name after 'val'")
	}
	if _, ok := p.matchKind(Colon); !ok {
		return nil, p.errorf("':' after constant name")
	}
	tyTok, ok := p.matchKind(TypeName)
	if !ok || (tyTok.Text != "Int" && tyTok.Text != "Double") {
		return nil, p.errorf("type 'Int' or 'Double'")
	}
	if !p.matchOp("=") {
		return nil, p.errorf("'=' after val's type")
	}
	if tyTok.Text == "Int" {
		lit, ok := p.matchKind(IntLit)
		if !ok {
			return nil, p.errorf("integer literal")
		}
		return Const{Name: constTok.Text, Value: lit.Int}, nil
	}
	lit, ok := p.matchKind(DoubleLit)
	if !ok {
		return nil, p.errorf("double literal")
	}
	return FConst{Name: constTok.Text, Value: lit.Float}, nil
}

func (p *parser) parseParamList() ([]Param, error) {
	first, err := p.parseParam()
	if err != nil {
		return nil, err
	}
	params := []Param{first}
	for {
		if _, ok := p.matchKind(Comma); !ok {
			return params, nil
		}
		next, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, next)
	}
}

func (p *parser) parseParam() (Param, error) {
	nameTok, ok := p.matchKind(Ident)
	if !ok {
		return Param{}, p.errorf("identifier in parameter list")
	}
	if _, ok := p.matchKind(Colon); !ok {
		return Param{}, p.errorf("':' in parameter list")
	}
	tyTok, ok := p.matchKind(TypeName)
	if !ok {
		return Param{}, p.errorf("type in parameter list")
	}
	return Param{Name: nameTok.Text, Type: tyTok.Text}, nil
}

// parseBlock implements Block := '{' Exp '}' | Exp.
func (p *parser) parseBlock() (Exp, error) {
	if _, ok := p.matchKind(LBrace); ok {
		inner, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, ok := p.matchKind(RBrace); !ok {
			return nil, p.errorf("'}'")
		}
		return inner, nil
	}
	return p.parseExp()
}

// parseBlockNoSeq implements Block_no_seq := '{' Exp '}' | Exp_no_seq.
// Inside braces a Sequence is still allowed; only the brace-less form
// refuses to consume a trailing in-expression semicolon.
func (p *parser) parseBlockNoSeq() (Exp, error) {
	if _, ok := p.matchKind(LBrace); ok {
		inner, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, ok := p.matchKind(RBrace); !ok {
			return nil, p.errorf("'}'")
		}
		return inner, nil
	}
	return p.parseExpNoSeq()
}

func (p *parser) parseExpNoSeq() (Exp, error) {
	if p.matchKeyword("if") {
		cond, err := p.parseBExp()
		if err != nil {
			return nil, err
		}
		if !p.matchKeyword("then") {
			return nil, p.errorf("'then'")
		}
		thenBlk, err := p.parseBlockNoSeq()
		if err != nil {
			return nil, err
		}
		if !p.matchKeyword("else") {
			return nil, p.errorf("'else'")
		}
		elseBlk, err := p.parseBlockNoSeq()
		if err != nil {
			return nil, err
		}
		return If{Cond: cond, Then: thenBlk, Else: elseBlk}, nil
	}
	return p.parseM()
}

// parseBExp implements BExp := Exp CMP Exp; FUN's only boolean form is
// a single relational comparison, no '&&'/'||' combinators.
func (p *parser) parseBExp() (BExp, error) {
	left, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if !ok || !isOpOneOf(t, "==", "!=", "<", ">", "<=", ">=") {
		return nil, p.errorf("a boolean operator (==, !=, <, >, <=, >=)")
	}
	p.pos++
	right, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	return Bop{Op: t.Text, Left: left, Right: right}, nil
}

// tryParseExp attempts parseExp, rewinding on failure. It backs the
// one bounded-backtracking point in the grammar: deciding whether a
// semicolon after M starts an in-expression Sequence or is instead the
// top-level declaration separator.
func (p *parser) tryParseExp() (Exp, bool) {
	start := p.pos
	exp, err := p.parseExp()
	if err != nil {
		p.pos = start
		return nil, false
	}
	return exp, true
}

// parseExp implements Exp := 'if' BExp 'then' Block 'else' Block
//
//	| M (';' Exp)? | M.
func (p *parser) parseExp() (Exp, error) {
	if p.matchKeyword("if") {
		cond, err := p.parseBExp()
		if err != nil {
			return nil, err
		}
		if !p.matchKeyword("then") {
			return nil, p.errorf("'then'")
		}
		thenBlk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if !p.matchKeyword("else") {
			return nil, p.errorf("'else'")
		}
		elseBlk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return If{Cond: cond, Then: thenBlk, Else: elseBlk}, nil
	}

	m, err := p.parseM()
	if err != nil {
		return nil, err
	}
	if !p.matchSemiToken() {
		return m, nil
	}
	if next, ok := p.tryParseExp(); ok {
		return Sequence{First: m, Second: next}, nil
	}
	// The semicolon was not the start of an in-expression; leave it
	// for the caller (a top-level declaration separator).
	p.pos--
	return m, nil
}

// parseM implements M := 'print_string' '(' STRING ')' | L.
func (p *parser) parseM() (Exp, error) {
	if t, ok := p.peek(); ok && t.Kind == Ident && t.Text == "print_string" {
		save := p.pos
		p.pos++
		if _, ok := p.matchKind(LParen); ok {
			if strTok, ok := p.matchKind(StringLit); ok {
				if _, ok := p.matchKind(RParen); ok {
					return PrintString{Text: strTok.Text}, nil
				}
				return nil, p.errorf("')' after string")
			}
			return nil, p.errorf("string literal")
		}
		p.pos = save
	}
	return p.parseL()
}

// parseL implements L := T (('+'|'-') Exp_no_seq)?. The right-hand side
// may be an 'if' or another M, but a trailing "; Exp" is not taken into
// the addition: it is left for the enclosing Exp to turn into a
// Sequence, or for the top level as the declaration separator.
func (p *parser) parseL() (Exp, error) {
	left, err := p.parseT()
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if !ok || !isOpOneOf(t, "+", "-") {
		return left, nil
	}
	p.pos++
	right, err := p.parseExpNoSeq()
	if err != nil {
		return nil, err
	}
	return Aop{Op: t.Text, Left: left, Right: right}, nil
}

// parseT implements T := F (('*'|'/'|'%') T)?, right-associative.
func (p *parser) parseT() (Exp, error) {
	left, err := p.parseF()
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if !ok || !isOpOneOf(t, "*", "/", "%") {
		return left, nil
	}
	p.pos++
	right, err := p.parseT()
	if err != nil {
		return nil, err
	}
	return Aop{Op: t.Text, Left: left, Right: right}, nil
}

// parseF implements F := ID '(' Args? ')' | ID | CONST | '(' Exp ')' |
// INT | DOUBLE | CHAR.
func (p *parser) parseF() (Exp, error) {
	if t, ok := p.peek(); ok && t.Kind == Ident {
		name := t.Text
		p.pos++
		if _, ok := p.matchKind(LParen); ok {
			if _, ok := p.matchKind(RParen); ok {
				return Call{Name: name, Args: nil}, nil
			}
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			if _, ok := p.matchKind(RParen); !ok {
				return nil, p.errorf("')'")
			}
			return Call{Name: name, Args: args}, nil
		}
		if name == "skip" {
			return Call{Name: "skip", Args: nil}, nil
		}
		return Var{Name: name}, nil
	}

	if t, ok := p.matchKind(ConstName); ok {
		return Var{Name: t.Text}, nil
	}

	if _, ok := p.matchKind(LParen); ok {
		inner, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, ok := p.matchKind(RParen); !ok {
			return nil, p.errorf("')'")
		}
		return inner, nil
	}

	if t, ok := p.matchKind(IntLit); ok {
		return Num{Value: t.Int}, nil
	}

	if t, ok := p.matchKind(DoubleLit); ok {
		return FNum{Value: t.Float}, nil
	}

	if t, ok := p.matchKind(CharLit); ok {
		return ChConst{Code: t.Int}, nil
	}

	return nil, p.errorf("a factor (identifier, literal, call, or parenthesized expression)")
}

func (p *parser) parseArgList() ([]Exp, error) {
	first, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	args := []Exp{first}
	for {
		if _, ok := p.matchKind(Comma); !ok {
			return args, nil
		}
		next, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
}
