package tone

import (
	"fmt"
	"io"
	"os"

	"github.com/gigurra/morse/cmd/morse/schedule"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// WriteWAV renders the timeline as 16-bit mono PCM. It needs no audio device
// and works in every build.
func WriteWAV(w io.WriteSeeker, tl schedule.Timeline, opts Options) error {
	opts = opts.withDefaults()
	format := beep.Format{
		SampleRate:  opts.SampleRate,
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(w, Render(tl, opts), format); err != nil {
		return fmt.Errorf("failed to encode wav: %w", err)
	}
	return nil
}

// WriteWAVFile is WriteWAV into a newly created file at path.
func WriteWAVFile(path string, tl schedule.Timeline, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, tl, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
