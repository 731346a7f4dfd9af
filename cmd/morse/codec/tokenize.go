package codec

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

type TokenKind int

const (
	TokenCode TokenKind = iota
	TokenCharGap
	TokenWordGap
)

func (k TokenKind) String() string {
	switch k {
	case TokenCode:
		return "code"
	case TokenCharGap:
		return "char-gap"
	case TokenWordGap:
		return "word-gap"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of the wire form. Text is only set for TokenCode
// and is not guaranteed to be made of symbols: anything between two gaps is a
// code token.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// IsSymbols reports whether the token consists only of dots and dashes.
func (t Token) IsSymbols() bool {
	return t.Kind == TokenCode && isSymbols(t.Text)
}

// Tokenize splits a Morse string into codes and gaps. A whitespace run of
// three or more characters, one containing a line break, or a bare "/" token
// is a word gap; any shorter whitespace run is a character gap. Adjacent gaps
// are emitted as they appear; consumers collapse them.
func Tokenize(morse string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		i := 0
		for i < len(morse) {
			r, size := utf8.DecodeRuneInString(morse[i:])
			start := i
			if unicode.IsSpace(r) {
				width, lineBreak := 0, false
				for i < len(morse) {
					r, size = utf8.DecodeRuneInString(morse[i:])
					if !unicode.IsSpace(r) {
						break
					}
					if r == '\n' || r == '\r' {
						lineBreak = true
					}
					width++
					i += size
				}
				kind := TokenCharGap
				if lineBreak || width >= len(WordGap) {
					kind = TokenWordGap
				}
				if !yield(Token{Kind: kind, Offset: start}) {
					return
				}
				continue
			}
			for i < len(morse) {
				r, size = utf8.DecodeRuneInString(morse[i:])
				if unicode.IsSpace(r) {
					break
				}
				i += size
			}
			text := morse[start:i]
			tok := Token{Kind: TokenCode, Text: text, Offset: start}
			if isSlashes(text) {
				tok = Token{Kind: TokenWordGap, Offset: start}
			}
			if !yield(tok) {
				return
			}
		}
	}
}

func isSlashes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '/' {
			return false
		}
	}
	return s != ""
}
