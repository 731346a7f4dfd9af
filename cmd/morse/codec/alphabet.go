// Package codec converts between plain text and International Morse code.
//
// The alphabet table is built once at init and never mutated, so every
// function in this package is safe for concurrent use without locking.
package codec

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Symbol is a single Morse element.
type Symbol byte

const (
	Dot  Symbol = '.'
	Dash Symbol = '-'
)

// Code is the ordered, non-empty symbol sequence for one character.
type Code []Symbol

func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for _, s := range c {
		sb.WriteByte(byte(s))
	}
	return sb.String()
}

// Wire-form separators.
const (
	CharGap = " "
	WordGap = "   "
)

// Entry is one row of the alphabet table.
type Entry struct {
	Char rune
	Code Code
}

var toMorse = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.",
	'!': "-.-.--", '/': "-..-.", '(': "-.--.", ')': "-.--.-",
	'&': ".-...", ':': "---...", ';': "-.-.-.", '=': "-...-",
	'+': ".-.-.", '-': "-....-", '_': "..--.-", '"': ".-..-.",
	'$': "...-..-", '@': ".--.-.",
}

var fromMorse map[string]rune

func init() {
	if err := validate(toMorse); err != nil {
		panic(err)
	}
	fromMorse = lo.Invert(toMorse)
}

// validate checks that every code is well formed and that no two characters
// share a code, which is what makes decoding unambiguous.
func validate(table map[rune]string) error {
	for r, code := range table {
		if code == "" {
			return fmt.Errorf("morse table: empty code for %q", r)
		}
		if !isSymbols(code) {
			return fmt.Errorf("morse table: code %q for %q contains non-symbol characters", code, r)
		}
	}
	if dups := lo.FindDuplicates(lo.Values(table)); len(dups) > 0 {
		slices.Sort(dups)
		return fmt.Errorf("morse table: codes mapped to more than one character: %v", dups)
	}
	return nil
}

func isSymbols(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != byte(Dot) && s[i] != byte(Dash) {
			return false
		}
	}
	return true
}

func toCode(s string) Code {
	code := make(Code, len(s))
	for i := 0; i < len(s); i++ {
		code[i] = Symbol(s[i])
	}
	return code
}

// Lookup returns the code for r. Letters are matched case-insensitively.
func Lookup(r rune) (Code, bool) {
	s, ok := toMorse[upper(r)]
	if !ok {
		return nil, false
	}
	return toCode(s), true
}

// Reverse returns the character for a wire-form code such as "...".
func Reverse(code string) (rune, bool) {
	r, ok := fromMorse[code]
	return r, ok
}

// Entries returns the table sorted letters first, then digits, then punctuation.
func Entries() []Entry {
	entries := make([]Entry, 0, len(toMorse))
	for r, s := range toMorse {
		entries = append(entries, Entry{Char: r, Code: toCode(s)})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if ca, cb := class(a.Char), class(b.Char); ca != cb {
			return ca - cb
		}
		return int(a.Char) - int(b.Char)
	})
	return entries
}

func class(r rune) int {
	switch {
	case r >= 'A' && r <= 'Z':
		return 0
	case r >= '0' && r <= '9':
		return 1
	default:
		return 2
	}
}

func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
