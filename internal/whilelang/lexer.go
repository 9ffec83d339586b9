package whilelang

import (
	"strconv"
	"strings"

	"github.com/wfi-lang/wfi/internal/diag"
	"github.com/wfi-lang/wfi/internal/regex"
)

func seq(rs ...regex.Rexp) regex.Rexp {
	r := rs[len(rs)-1]
	for i := len(rs) - 2; i >= 0; i-- {
		r = regex.Seq{R1: rs[i], R2: r}
	}
	return r
}

func alt(rs ...regex.Rexp) regex.Rexp {
	r := rs[len(rs)-1]
	for i := len(rs) - 2; i >= 0; i-- {
		r = regex.Alt{R1: rs[i], R2: r}
	}
	return r
}

func word(s string) regex.Rexp {
	rs := make([]regex.Rexp, len(s))
	for i := 0; i < len(s); i++ {
		rs[i] = regex.Char{C: s[i]}
	}
	return seq(rs...)
}

var (
	letters = regex.NewRange("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	digits  = regex.NewRange("0123456789")
	nonzero = regex.NewRange("123456789")

	lessThan    = regex.Char{C: '<'}
	greaterThan = regex.Char{C: '>'}

	// keywordRegex treats "skip" and "do" as keywords, not identifiers.
	// The RPython reference lexes both as plain identifiers and relies
	// on the parser's match_keyword check, which can then never succeed
	// for either — a latent bug there, not a grammar rule to reproduce:
	// WHILE's grammar is "'skip'" and "'while' BExp 'do' Block".
	keywordRegex = alt(
		word("skip"), word("while"), word("if"), word("then"), word("else"),
		word("true"), word("false"), word("read"), word("write"), word("do"),
	)

	operatorsRegex = alt(
		regex.Char{C: '+'}, regex.Char{C: '-'}, regex.Char{C: '*'}, regex.Char{C: '/'}, regex.Char{C: '%'},
		word("=="), word("!="), lessThan, greaterThan, word("<="), word(">="),
		word(":="), word("&&"), word("||"),
	)

	symbolsRegex = alt(
		regex.Char{C: '\\'}, regex.Char{C: ','}, regex.Char{C: ';'}, regex.Char{C: ':'},
		regex.Char{C: '_'}, regex.Char{C: '.'}, lessThan, greaterThan, letters, regex.Char{C: '='},
	)

	parensRegex = alt(
		regex.Char{C: '('}, regex.Char{C: ')'}, regex.Char{C: '{'}, regex.Char{C: '}'},
	)

	numbersRegex = alt(regex.Char{C: '0'}, seq(nonzero, regex.Star{R: digits}))

	whitespaceRegex = regex.Plus{R: regex.NewRange(" \t\n")}

	identifierRegex = seq(letters, regex.Star{R: alt(letters, digits, regex.Char{C: '_'})})

	stringRegex = seq(
		regex.Char{C: '"'},
		regex.Star{R: alt(symbolsRegex, digits, parensRegex, whitespaceRegex, word("\\n"))},
		regex.Char{C: '"'},
	)

	commentRegex = seq(
		word("//"),
		regex.Star{R: alt(symbolsRegex, regex.Char{C: ' '}, parensRegex, digits)},
		regex.Char{C: '\n'},
	)

	languageRegex = regex.Star{R: alt(
		regex.Recd{Tag: "k", R: keywordRegex},
		regex.Recd{Tag: "o", R: operatorsRegex},
		regex.Recd{Tag: "str", R: stringRegex},
		regex.Recd{Tag: "p", R: parensRegex},
		regex.Recd{Tag: "s", R: regex.Char{C: ';'}},
		regex.Recd{Tag: "w", R: whitespaceRegex},
		regex.Recd{Tag: "i", R: identifierRegex},
		regex.Recd{Tag: "n", R: numbersRegex},
		regex.Recd{Tag: "c", R: commentRegex},
	)}
)

// Lex runs the Brzozowski derivative algorithm over src's language
// regex and maps the resulting (tag, lexeme) pairs to WHILE tokens,
// dropping whitespace and comments.
func Lex(src []byte) ([]Token, error) {
	pairs, err := regex.Tokenize(languageRegex, src)
	if err != nil {
		lexErr := err.(*regex.LexError)
		return nil, diag.LexError(src, lexErr.Offset, lexErr.HasByte, lexErr.Byte)
	}

	tokens := make([]Token, 0, len(pairs))
	offset := 0
	for _, p := range pairs {
		tok, ok := toToken(p.Tag, p.Value, offset)
		offset += len(p.Value)
		if !ok {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func toToken(tag, value string, offset int) (Token, bool) {
	switch tag {
	case "k":
		return Token{Kind: Keyword, Text: value, Offset: offset}, true
	case "o":
		return Token{Kind: Operator, Text: value, Offset: offset}, true
	case "str":
		return Token{Kind: String, Text: unquoteWhileString(value), Offset: offset}, true
	case "p":
		return Token{Kind: Paren, Text: value, Offset: offset}, true
	case "s":
		return Token{Kind: Semi, Offset: offset}, true
	case "i":
		return Token{Kind: Ident, Text: value, Offset: offset}, true
	case "n":
		n, _ := strconv.Atoi(value)
		return Token{Kind: Number, Num: n, Offset: offset}, true
	case "w", "c":
		return Token{}, false
	default:
		return Token{}, false
	}
}

// unquoteWhileString strips the surrounding double quotes and expands
// the only recognised escape, \n.
func unquoteWhileString(lexeme string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(lexeme, "\""), "\"")
	return strings.ReplaceAll(inner, "\\n", "\n")
}
