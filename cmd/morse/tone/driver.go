package tone

import (
	"fmt"
	"io"
)

const (
	DriverSpeaker = "speaker"
	DriverBeep    = "beep"
	DriverBell    = "bell"
)

// NewDriver returns the named driver. An empty name means the speaker. When
// the speaker is requested but this build has no audio, the bell driver on
// bellOut is returned together with ErrAudioUnavailable so callers can tell
// the user about the downgrade.
func NewDriver(name string, opts Options, bellOut io.Writer) (Driver, error) {
	switch name {
	case "", DriverSpeaker:
		if !AudioAvailable {
			return BellDriver{Out: bellOut}, ErrAudioUnavailable
		}
		return SpeakerDriver{Options: opts}, nil
	case DriverBeep:
		return BeepDriver{Frequency: opts.Frequency}, nil
	case DriverBell:
		return BellDriver{Out: bellOut}, nil
	default:
		return nil, fmt.Errorf("unknown audio driver %q (speaker, beep, bell)", name)
	}
}
