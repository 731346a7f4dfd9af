// Package notify tells the user about conditions worth interrupting them for,
// such as a missing audio device or speech recogniser.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gen2brain/beeep"
)

// Notifier delivers a user-visible message.
type Notifier interface {
	Notify(title, message string) error
}

var desktopNotify = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Desktop sends OS notifications when enabled and always falls back to
// writing the message to Fallback (stderr when nil).
type Desktop struct {
	Enabled  bool
	Fallback io.Writer
}

func (d Desktop) Notify(title, message string) error {
	if d.Enabled {
		err := desktopNotify(title, message)
		if err == nil {
			return nil
		}
		slog.Debug("desktop notification failed", "error", err)
	}

	out := d.Fallback
	if out == nil {
		out = os.Stderr
	}
	_, err := fmt.Fprintf(out, "[%s] %s\n", title, message)
	return err
}

// Func adapts a function to Notifier.
type Func func(title, message string) error

func (f Func) Notify(title, message string) error { return f(title, message) }
