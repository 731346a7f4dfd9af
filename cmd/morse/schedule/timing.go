package schedule

import (
	"errors"
	"fmt"
	"time"
)

// PARIS is 50 units long, which defines the standard words-per-minute speed.
const unitsPerWord = 50

var (
	ErrInvalidWPM        = errors.New("WPM must be positive")
	ErrInvalidFarnsworth = errors.New("effective WPM must not exceed character WPM")
)

// Timing holds the two base durations of a schedule. Unit drives symbols and
// the gap inside a character; Spacing drives the gaps between characters (3x)
// and words (7x). With Spacing equal to Unit this is the standard 1:3:1:3:7
// convention. A zero Spacing means Unit.
type Timing struct {
	Unit    time.Duration
	Spacing time.Duration
}

// Standard returns 1:3:1:3:7 timing for the given unit.
func Standard(unit time.Duration) Timing {
	return Timing{Unit: unit, Spacing: unit}
}

// FromWPM returns standard timing for a words-per-minute speed.
func FromWPM(wpm int) (Timing, error) {
	if wpm <= 0 {
		return Timing{}, fmt.Errorf("%w: got %d", ErrInvalidWPM, wpm)
	}
	return Standard(unitForWPM(wpm)), nil
}

// Farnsworth sends characters at charWPM but stretches the gaps between
// characters and words so the overall speed is effectiveWPM.
func Farnsworth(charWPM, effectiveWPM int) (Timing, error) {
	if charWPM <= 0 || effectiveWPM <= 0 {
		return Timing{}, fmt.Errorf("%w: got %d/%d", ErrInvalidWPM, charWPM, effectiveWPM)
	}
	if effectiveWPM > charWPM {
		return Timing{}, fmt.Errorf("%w: %d > %d", ErrInvalidFarnsworth, effectiveWPM, charWPM)
	}
	if effectiveWPM == charWPM {
		return Standard(unitForWPM(charWPM)), nil
	}
	c, s := float64(charWPM), float64(effectiveWPM)
	// ARRL: total extra delay per word spread over 19 spacing units.
	spacing := time.Duration(float64(time.Second) * (60*c - 37.2*s) / (19 * s * c))
	return Timing{Unit: unitForWPM(charWPM), Spacing: spacing}, nil
}

func unitForWPM(wpm int) time.Duration {
	return time.Duration(float64(time.Minute) / float64(unitsPerWord*wpm))
}

func (t Timing) dot() time.Duration { return t.Unit }
func (t Timing) dash() time.Duration { return 3 * t.Unit }
func (t Timing) intraGap() time.Duration { return t.Unit }
func (t Timing) charGap() time.Duration { return 3 * t.spacing() }
func (t Timing) wordGap() time.Duration { return 7 * t.spacing() }

func (t Timing) spacing() time.Duration {
	if t.Spacing <= 0 {
		return t.Unit
	}
	return t.Spacing
}
