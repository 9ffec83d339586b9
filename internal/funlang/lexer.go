package funlang

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
	lowercase = regex.NewRange("abcdefghijklmnopqrstuvwxyz")
	uppercase = regex.NewRange("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	digits    = regex.NewRange("0123456789")
	nonzero   = regex.NewRange("123456789")

	keywordRegex = alt(
		word("if"), word("then"), word("else"), word("def"), word("val"),
	)

	typeRegex = alt(word("Int"), word("Double"), word("Void"))

	// identifierRegex also matches FUN's built-in function names
	// (print_int, print_char, ...); the parser resolves those by name
	// at Call sites rather than the lexer tagging them specially.
	identifierRegex = seq(lowercase, regex.Star{R: alt(lowercase, uppercase, digits, regex.Char{C: '_'})})

	// constRegex matches FUN's uppercase-led constant names, e.g. MAX.
	constRegex = seq(uppercase, regex.Star{R: alt(lowercase, uppercase, digits, regex.Char{C: '_'})})

	intRegex    = alt(regex.Char{C: '0'}, seq(nonzero, regex.Star{R: digits}))
	doubleRegex = seq(intRegex, regex.Char{C: '.'}, regex.Plus{R: digits})

	operatorsRegex = alt(
		regex.Char{C: '+'}, regex.Char{C: '-'}, regex.Char{C: '*'}, regex.Char{C: '/'}, regex.Char{C: '%'},
		regex.Char{C: '='}, word("=="), word("!="), regex.Char{C: '<'}, regex.Char{C: '>'}, word("<="), word(">="),
	)

	// allRegex is the string-literal-safe character class: every byte
	// that may appear inside a double-quoted string other than the
	// closing quote itself, including the two-character \n escape.
	allRegex = alt(
		lowercase, uppercase, digits, regex.NewRange(" !#$%&()*+,-./:;<=>?@[]^_`{|}~"),
		word("\\n"), word("\\\""),
	)

	stringRegex = seq(
		regex.Char{C: '"'},
		regex.Star{R: allRegex},
		regex.Char{C: '"'},
	)

	// charLiteralRegex accepts 'c' for any printable byte other than
	// the quote characters and backslash, plus the \n escape.
	charLiteralRegex = alt(
		seq(regex.Char{C: '\''}, regex.NewRange(" !#$%&()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[]^_`abcdefghijklmnopqrstuvwxyz{|}~"), regex.Char{C: '\''}),
		seq(regex.Char{C: '\''}, word("\\n"), regex.Char{C: '\''}),
	)

	semicolonRegex = regex.Char{C: ';'}
	colonRegex     = regex.Char{C: ':'}
	commaRegex     = regex.Char{C: ','}

	lParenRegex = regex.Char{C: '('}
	rParenRegex = regex.Char{C: ')'}
	lBraceRegex = regex.Char{C: '{'}
	rBraceRegex = regex.Char{C: '}'}

	whitespaceRegex = regex.NewRange(" \n\t\r")

	// commentBlockRegex matches a /* ... */ comment. Its body is any run
	// of letters, digits, whitespace and ASCII punctuation (the '*' and
	// '/' bytes included); '"' and '\' cannot appear inside a block
	// comment.
	commentBlockRegex = seq(
		word("/*"),
		regex.Star{R: alt(lowercase, uppercase, digits, regex.NewRange(" \n\t!#$%&'()+,-.:;<=>?@[]^_`{|}~"), regex.Char{C: '*'}, regex.Char{C: '/'})},
		word("*/"),
	)

	commentLineRegex = seq(
		word("//"),
		regex.Star{R: alt(lowercase, uppercase, digits, regex.NewRange(" \t!#$%&'()*+,-./:;<=>?@[]^_`{|}~"))},
		regex.Char{C: '\n'},
	)

	languageRegex = regex.Star{R: alt(
		regex.Recd{Tag: "k", R: keywordRegex},
		regex.Recd{Tag: "i", R: identifierRegex},
		regex.Recd{Tag: "t", R: typeRegex},
		regex.Recd{Tag: "ct", R: constRegex},
		regex.Recd{Tag: "str", R: stringRegex},
		regex.Recd{Tag: "o", R: operatorsRegex},
		regex.Recd{Tag: "d", R: doubleRegex},
		regex.Recd{Tag: "int", R: intRegex},
		regex.Recd{Tag: "s", R: semicolonRegex},
		regex.Recd{Tag: "col", R: colonRegex},
		regex.Recd{Tag: "comma", R: commaRegex},
		regex.Recd{Tag: "cl", R: charLiteralRegex},
		regex.Recd{Tag: "cblock", R: commentBlockRegex},
		regex.Recd{Tag: "cline", R: commentLineRegex},
		regex.Recd{Tag: "pl", R: lParenRegex},
		regex.Recd{Tag: "pr", R: rParenRegex},
		regex.Recd{Tag: "bl", R: lBraceRegex},
		regex.Recd{Tag: "br", R: rBraceRegex},
		regex.Recd{Tag: "w", R: whitespaceRegex},
	)}
)

// Lex runs the shared derivative engine over src's FUN language regex
// and maps the resulting (tag, lexeme) pairs to FUN tokens, dropping
// whitespace and comments.
func Lex(src []byte) ([]Token, error) {
	pairs, err := regex.Tokenize(languageRegex, src)
	if err != nil {
		lexErr := err.(*regex.LexError)
		return nil, diag.LexError(src, lexErr.Offset, lexErr.HasByte, lexErr.Byte)
	}

	tokens := make([]Token, 0, len(pairs))
	offset := 0
	for _, p := range pairs {
		tok, ok, err := toToken(p.Tag, p.Value, offset)
		if err != nil {
			return nil, diag.LexError(src, offset, len(p.Value) > 0, byteOrZero(p.Value))
		}
		offset += len(p.Value)
		if !ok {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func byteOrZero(s string) byte {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

// toToken converts one Brzozowski-tagged lexeme into a Token, mirroring
// the original lexer's per-class dispatch including the character
// literal's two-step decode: the \n escape becomes code 10, otherwise
// the literal's single enclosed byte supplies its own code.
func toToken(tag, value string, offset int) (Token, bool, error) {
	switch tag {
	case "k":
		return Token{Kind: Keyword, Text: value, Offset: offset}, true, nil
	case "i":
		return Token{Kind: Ident, Text: value, Offset: offset}, true, nil
	case "t":
		return Token{Kind: TypeName, Text: value, Offset: offset}, true, nil
	case "ct":
		return Token{Kind: ConstName, Text: value, Offset: offset}, true, nil
	case "str":
		return Token{Kind: StringLit, Text: unquoteFunString(value), Offset: offset}, true, nil
	case "o":
		return Token{Kind: Operator, Text: value, Offset: offset}, true, nil
	case "d":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Token{}, false, err
		}
		return Token{Kind: DoubleLit, Float: f, Offset: offset}, true, nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return Token{}, false, err
		}
		return Token{Kind: IntLit, Int: n, Offset: offset}, true, nil
	case "s":
		return Token{Kind: Semi, Offset: offset}, true, nil
	case "col":
		return Token{Kind: Colon, Offset: offset}, true, nil
	case "comma":
		return Token{Kind: Comma, Offset: offset}, true, nil
	case "cl":
		inner := value[1 : len(value)-1]
		var code int
		if inner == "\\n" {
			code = 10
		} else {
			code = int(inner[0])
		}
		return Token{Kind: CharLit, Int: code, Offset: offset}, true, nil
	case "pl":
		return Token{Kind: LParen, Offset: offset}, true, nil
	case "pr":
		return Token{Kind: RParen, Offset: offset}, true, nil
	case "bl":
		return Token{Kind: LBrace, Offset: offset}, true, nil
	case "br":
		return Token{Kind: RBrace, Offset: offset}, true, nil
	case "w", "cblock", "cline":
		return Token{}, false, nil
	default:
		return Token{}, false, nil
	}
}

// unquoteFunString strips the surrounding double quotes; \n expansion
// happens later in the evaluator's PrintString handling, matching the
// original reference's remove_quotes_and_convert_newlines, which runs
// at print time rather than at lex time.
func unquoteFunString(lexeme string) string {
	return strings.TrimSuffix(strings.TrimPrefix(lexeme, "\""), "\"")
}
