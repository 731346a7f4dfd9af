package codec

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedCharacter = errors.New("unsupported character")
	ErrUnknownCode          = errors.New("unknown code")
)

// UnsupportedCharacterError reports a character Encode had to drop.
type UnsupportedCharacterError struct {
	Char   rune
	Offset int // byte offset in the input
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf("%v %q at offset %d", ErrUnsupportedCharacter, e.Char, e.Offset)
}

func (e *UnsupportedCharacterError) Unwrap() error { return ErrUnsupportedCharacter }

// UnknownCodeError reports a token Decode had to skip.
type UnknownCodeError struct {
	Code   string
	Offset int // byte offset in the input
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("%v %q at offset %d", ErrUnknownCode, e.Code, e.Offset)
}

func (e *UnknownCodeError) Unwrap() error { return ErrUnknownCode }
