//go:build !((linux && cgo) || windows || darwin)

package tone

import (
	"context"

	"github.com/gigurra/morse/cmd/morse/schedule"
)

// AudioAvailable indicates whether speaker playback is supported in this build.
// Audio requires CGO for native sound libraries on Linux and the BSDs.
const AudioAvailable = false

// SpeakerDriver is unavailable without cgo; NewDriver falls back to the bell.
type SpeakerDriver struct {
	Options Options
}

func (d SpeakerDriver) Play(ctx context.Context, tl schedule.Timeline) error {
	return ErrAudioUnavailable
}
