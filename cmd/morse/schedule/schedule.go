// Package schedule turns a Morse string into a timeline of tone on/off
// transitions. It owns no audio resource and reads no clock: the same input
// always yields the same timeline, which an audio driver then executes.
package schedule

import (
	"iter"
	"time"

	"github.com/gigurra/morse/cmd/morse/codec"
)

// ToneEvent is a tone transition at an offset from the start of playback.
type ToneEvent struct {
	At time.Duration
	On bool
}

// Timeline is a lazily computed schedule. It is a value; ranging over Events
// twice walks the input twice and yields identical sequences.
type Timeline struct {
	morse  string
	timing Timing
}

// Schedule returns the timeline for morse with standard timing.
func Schedule(morse string, unit time.Duration) Timeline {
	return ScheduleTiming(morse, Standard(unit))
}

// ScheduleTiming returns the timeline for morse with explicit timing.
func ScheduleTiming(morse string, timing Timing) Timeline {
	return Timeline{morse: morse, timing: timing}
}

func (tl Timeline) Timing() Timing { return tl.timing }

// Events yields tone transitions in non-decreasing time order, alternating
// on and off and always ending with an off.
func (tl Timeline) Events() iter.Seq[ToneEvent] {
	return func(yield func(ToneEvent) bool) {
		tl.walk(yield)
	}
}

// Collect returns all events.
func (tl Timeline) Collect() []ToneEvent {
	var events []ToneEvent
	for ev := range tl.Events() {
		events = append(events, ev)
	}
	return events
}

// Duration is the time of the last off transition. Input with gaps but no
// tones has a silent duration equal to its collapsed gaps; empty input has
// zero duration.
func (tl Timeline) Duration() time.Duration {
	return tl.walk(nil)
}

// Empty reports whether the timeline contains no tones.
func (tl Timeline) Empty() bool {
	for range tl.Events() {
		return false
	}
	return true
}

// walk drives the schedule. A nil yield only measures. The silence owed
// before the next tone is tracked in pending and only ever raised to the
// largest gap required, so adjacent gaps never add up.
func (tl Timeline) walk(yield func(ToneEvent) bool) time.Duration {
	timing := tl.timing
	if timing.Unit <= 0 {
		return 0
	}

	var cursor, pending time.Duration
	toned := false

	for tok := range codec.Tokenize(tl.morse) {
		switch tok.Kind {
		case codec.TokenCharGap:
			pending = max(pending, timing.charGap())
		case codec.TokenWordGap:
			pending = max(pending, timing.wordGap())
		case codec.TokenCode:
			if !tok.IsSymbols() {
				pending = max(pending, timing.charGap())
				continue
			}
			for i := 0; i < len(tok.Text); i++ {
				length := timing.dot()
				if codec.Symbol(tok.Text[i]) == codec.Dash {
					length = timing.dash()
				}
				start := cursor + pending
				cursor = start + length
				toned = true
				if yield != nil {
					if !yield(ToneEvent{At: start, On: true}) || !yield(ToneEvent{At: cursor, On: false}) {
						return cursor
					}
				}
				pending = timing.intraGap()
			}
		}
	}

	if !toned {
		return pending
	}
	return cursor
}
