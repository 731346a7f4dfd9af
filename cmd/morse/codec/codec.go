package codec

import (
	"strings"
	"unicode"
)

// Encode converts text to Morse. Characters outside the alphabet are dropped
// and whitespace runs become a single word gap. It never fails.
func Encode(text string) string {
	out, _ := encode(text, false)
	return out
}

// EncodeReport is Encode plus an *UnsupportedCharacterError for every dropped
// character.
func EncodeReport(text string) (string, []error) {
	return encode(text, true)
}

// Decode converts Morse back to upper-case text. Codes that are not in the
// alphabet are skipped and decoding continues with the next token.
func Decode(morse string) string {
	out, _ := decode(morse, false)
	return out
}

// DecodeReport is Decode plus an *UnknownCodeError for every skipped token.
func DecodeReport(morse string) (string, []error) {
	return decode(morse, true)
}

func encode(text string, report bool) (string, []error) {
	var (
		sb        strings.Builder
		issues    []error
		wordOpen  bool // a code has been written for the current word
		needSpace bool // a word gap is owed before the next code
	)
	for offset, r := range text {
		if unicode.IsSpace(r) {
			if wordOpen {
				needSpace = true
				wordOpen = false
			}
			continue
		}
		code, ok := toMorse[upper(r)]
		if !ok {
			if report {
				issues = append(issues, &UnsupportedCharacterError{Char: r, Offset: offset})
			}
			continue
		}
		switch {
		case wordOpen:
			sb.WriteString(CharGap)
		case needSpace:
			sb.WriteString(WordGap)
			needSpace = false
		}
		sb.WriteString(code)
		wordOpen = true
	}
	return sb.String(), issues
}

func decode(morse string, report bool) (string, []error) {
	var (
		sb        strings.Builder
		issues    []error
		needSpace bool
	)
	for tok := range Tokenize(morse) {
		switch tok.Kind {
		case TokenWordGap:
			needSpace = sb.Len() > 0
		case TokenCode:
			r, ok := fromMorse[tok.Text]
			if !ok {
				if report {
					issues = append(issues, &UnknownCodeError{Code: tok.Text, Offset: tok.Offset})
				}
				continue
			}
			if needSpace {
				sb.WriteByte(' ')
				needSpace = false
			}
			sb.WriteRune(r)
		}
	}
	return sb.String(), issues
}
