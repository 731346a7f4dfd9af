// Package tone executes Morse timelines as sound. Drivers are swappable; the
// Player on top of them makes sure only one timeline plays at a time.
package tone

import (
	"math"
	"time"

	"github.com/gigurra/morse/cmd/morse/schedule"
	"github.com/gopxl/beep/v2"
)

// Options configures the oscillator.
type Options struct {
	SampleRate beep.SampleRate
	Frequency  float64 // Hz
	Volume     float64 // 0..1
}

// DefaultOptions is a 700 Hz tone at half volume, the usual CW sidetone.
func DefaultOptions() Options {
	return Options{
		SampleRate: beep.SampleRate(44100),
		Frequency:  700,
		Volume:     0.5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SampleRate <= 0 {
		o.SampleRate = d.SampleRate
	}
	if o.Frequency <= 0 {
		o.Frequency = d.Frequency
	}
	if o.Volume <= 0 || o.Volume > 1 {
		o.Volume = d.Volume
	}
	return o
}

// Segment is one tone, from its on transition to its off transition.
type Segment struct {
	Start time.Duration
	End   time.Duration
}

func (s Segment) Length() time.Duration { return s.End - s.Start }

// Segments pairs the on/off events of a timeline.
func Segments(tl schedule.Timeline) []Segment {
	var segments []Segment
	var start time.Duration
	for ev := range tl.Events() {
		if ev.On {
			start = ev.At
			continue
		}
		segments = append(segments, Segment{Start: start, End: ev.At})
	}
	return segments
}

// Render turns a timeline into a stream of silence and enveloped sine tones.
// Sample positions are derived from absolute event times so rounding does not
// accumulate over long messages.
func Render(tl schedule.Timeline, opts Options) beep.Streamer {
	opts = opts.withDefaults()
	sr := opts.SampleRate

	var parts []beep.Streamer
	pos := 0
	for _, seg := range Segments(tl) {
		start, end := sr.N(seg.Start), sr.N(seg.End)
		if start > pos {
			parts = append(parts, beep.Silence(start-pos))
		}
		parts = append(parts, newToneStreamer(end-start, opts))
		pos = end
	}
	if total := sr.N(tl.Duration()); total > pos {
		parts = append(parts, beep.Silence(total-pos))
	}
	return beep.Seq(parts...)
}

type toneStreamer struct {
	samples   int
	position  int
	frequency float64
	volume    float64
	rate      float64
}

func newToneStreamer(samples int, opts Options) *toneStreamer {
	return &toneStreamer{
		samples:   samples,
		frequency: opts.Frequency,
		volume:    opts.Volume,
		rate:      float64(opts.SampleRate),
	}
}

func (t *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if t.position >= t.samples {
		return 0, false
	}
	for i := range samples {
		if t.position >= t.samples {
			return i, true
		}

		phase := 2 * math.Pi * t.frequency * float64(t.position) / t.rate
		value := math.Sin(phase) * t.envelope() * t.volume
		samples[i][0] = value
		samples[i][1] = value
		t.position++
	}
	return len(samples), true
}

// envelope ramps the first and last 5% of the tone to avoid clicks.
func (t *toneStreamer) envelope() float64 {
	fadeLen := max(t.samples/20, 10)
	if fadeLen*2 > t.samples {
		fadeLen = max(t.samples/2, 1)
	}
	switch {
	case t.position < fadeLen:
		return float64(t.position) / float64(fadeLen)
	case t.position >= t.samples-fadeLen:
		return float64(t.samples-t.position) / float64(fadeLen)
	default:
		return 1
	}
}

func (t *toneStreamer) Err() error {
	return nil
}
