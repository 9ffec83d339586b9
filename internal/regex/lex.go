package regex

import "fmt"

// LexError reports the byte offset at which no alternative in the
// language regex could derive any further, with nothing nullable to
// fall back on.
type LexError struct {
	Offset  int
	Byte    byte
	HasByte bool
}

func (e *LexError) Error() string {
	if e.HasByte {
		return fmt.Sprintf("lexing error at byte offset %d (0x%02x)", e.Offset, e.Byte)
	}
	return fmt.Sprintf("lexing error at byte offset %d (unexpected end of input)", e.Offset)
}

// step records one character's worth of forward progress: the regex it
// was derived from, the character, and the rectification Simplify
// produced, replayed in reverse by the injection pass.
type step struct {
	r  Rexp
	c  byte
	rf *RectFun
}

// Lex runs the derivative lexing algorithm in two passes. Forward: for
// each byte of s, take the derivative of the current regex and
// simplify it, recording the pre-derivative regex and the
// rectification function. Backward: build the canonical value of the
// final (nullable) residual regex with MkEps, then replay the recorded
// steps right to left, lifting the value through each rectification
// and injecting the consumed byte back in. Both passes are plain
// loops, so lexing depth never grows the host call stack.
//
// r is expected to be a Star of an Alt of Recd regexes (the "language
// regex").
func Lex(r Rexp, s []byte) (Val, error) {
	steps := make([]step, 0, len(s))
	cur := r
	for i := 0; i < len(s); i++ {
		c := s[i]
		derived := Derivative(c, cur)
		simplified, rf := Simplify(derived)
		if _, ok := simplified.(Zero); ok {
			// The residual regex can never become nullable again (Zero's
			// derivative is always Zero), so report the failure here
			// instead of scanning to the end of input.
			return nil, &LexError{Offset: i, Byte: c, HasByte: true}
		}
		steps = append(steps, step{r: cur, c: c, rf: rf})
		cur = simplified
	}

	if !Nullable(cur) {
		return nil, &LexError{Offset: len(s)}
	}
	v := MkEps(cur)
	for i := len(steps) - 1; i >= 0; i-- {
		st := steps[i]
		rectified, err := Apply(st.rf, v)
		if err != nil {
			return nil, err
		}
		v = Inject(st.r, st.c, rectified)
	}
	return v, nil
}

// Tokenize runs Lex over the whole language regex and flattens the
// resulting value into its ordered (tag, lexeme) pairs.
func Tokenize(r Rexp, s []byte) ([]EnvPair, error) {
	v, err := Lex(r, s)
	if err != nil {
		return nil, err
	}
	return Env(v), nil
}
