//go:build (linux && cgo) || windows || darwin

package tone

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gigurra/morse/cmd/morse/schedule"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether speaker playback is supported in this build.
const AudioAvailable = true

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
)

// initSpeaker opens the device once per process; the first sample rate wins.
func initSpeaker(sr beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerRate != 0 {
		return speakerRate, nil
	}
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	speakerRate = sr
	return sr, nil
}

// SpeakerDriver plays timelines on the default audio device.
type SpeakerDriver struct {
	Options Options
}

func (d SpeakerDriver) Play(ctx context.Context, tl schedule.Timeline) error {
	opts := d.Options.withDefaults()
	sr, err := initSpeaker(opts.SampleRate)
	if err != nil {
		return err
	}
	opts.SampleRate = sr

	done := make(chan struct{})
	speaker.Play(beep.Seq(Render(tl, opts), beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}
