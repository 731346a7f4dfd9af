package tone

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/gigurra/morse/cmd/morse/schedule"
)

// BellDriver rings the terminal bell at the start of every tone. It is the
// fallback when no audio device can be opened.
type BellDriver struct {
	Out io.Writer
}

func (d BellDriver) Play(ctx context.Context, tl schedule.Timeline) error {
	return runSegments(ctx, tl, func(Segment) error {
		_, err := io.WriteString(d.Out, "\a")
		return err
	})
}

// BeepDriver plays every tone through the system beeper.
type BeepDriver struct {
	Frequency float64
}

func (d BeepDriver) Play(ctx context.Context, tl schedule.Timeline) error {
	freq := d.Frequency
	if freq <= 0 {
		freq = beeep.DefaultFreq
	}
	return runSegments(ctx, tl, func(seg Segment) error {
		ms := int(seg.Length() / time.Millisecond)
		if err := beeep.Beep(freq, max(ms, 1)); err != nil {
			return fmt.Errorf("beep failed: %w", err)
		}
		return nil
	})
}

// runSegments calls fire at each tone start, measured from a single start
// instant so slow callbacks do not push later tones back, then waits out the
// timeline's full duration.
func runSegments(ctx context.Context, tl schedule.Timeline, fire func(Segment) error) error {
	start := time.Now()
	for _, seg := range Segments(tl) {
		if err := sleepUntil(ctx, start.Add(seg.Start)); err != nil {
			return err
		}
		if err := fire(seg); err != nil {
			return err
		}
	}
	return sleepUntil(ctx, start.Add(tl.Duration()))
}

func sleepUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
