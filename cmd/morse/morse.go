// Package morse wires the codec, scheduler and tone drivers into the morse
// command tree.
package morse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/gigurra/morse/cmd/morse/codec"
	"github.com/gigurra/morse/cmd/morse/config"
	"github.com/gigurra/morse/cmd/morse/notify"
	"github.com/gigurra/morse/cmd/morse/schedule"
	"github.com/gigurra/morse/cmd/morse/tone"
	"golang.org/x/term"
)

var (
	clipboardWriteAll = clipboard.WriteAll
	loadConfig        = config.Load
)

// env bundles what every subcommand needs besides its own params.
type env struct {
	cfg       *config.Config
	notifier  notify.Notifier
	stdout    io.Writer
	stderr    io.Writer
	newDriver func(name string, opts tone.Options, bellOut io.Writer) (tone.Driver, error)
	bell      *tone.Player // set once the speaker has failed at runtime
}

func newEnv(stdout, stderr io.Writer) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &env{
		cfg:       cfg,
		notifier:  notify.Desktop{Enabled: cfg.Notifications, Fallback: stderr},
		stdout:    stdout,
		stderr:    stderr,
		newDriver: tone.NewDriver,
	}, nil
}

func (e *env) setupLogging(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: e.cfg.SlogLevel(),
	})
	slog.SetDefault(slog.New(handler))
}

// timing resolves flag values against the config; zero flags mean "use config".
// A configured Farnsworth speed is capped at the character speed, so a lower
// -w never turns it invalid.
func (e *env) timing(wpm, effectiveWPM int) (schedule.Timing, error) {
	if wpm <= 0 {
		wpm = e.cfg.WPM
	}
	if effectiveWPM <= 0 {
		effectiveWPM = min(e.cfg.EffectiveWPM, wpm)
	}
	if effectiveWPM > 0 {
		return schedule.Farnsworth(wpm, effectiveWPM)
	}
	return schedule.FromWPM(wpm)
}

func (e *env) toneOptions() tone.Options {
	opts := tone.DefaultOptions()
	opts.Frequency = e.cfg.FrequencyHz
	opts.Volume = e.cfg.Volume
	return opts
}

// driver opens the requested audio driver, downgrading to the terminal bell
// and telling the user when the speaker is unavailable.
func (e *env) driver(name string) (tone.Driver, error) {
	if name == "" {
		name = e.cfg.Driver
	}
	d, err := e.newDriver(name, e.toneOptions(), e.stderr)
	if errors.Is(err, tone.ErrAudioUnavailable) {
		e.warnNoAudio(err)
		return d, nil
	}
	return d, err
}

func (e *env) warnNoAudio(err error) {
	slog.Warn("audio output unavailable, using terminal bell", "error", err)
	_ = e.notifier.Notify("morse", "Audio output is unavailable; falling back to the terminal bell.")
}

// play runs one timeline. A speaker that fails to open at runtime is treated
// like a build without audio, and later timelines go straight to the bell.
func (e *env) play(ctx context.Context, player *tone.Player, tl schedule.Timeline) error {
	if e.bell != nil {
		return e.bell.Play(ctx, tl)
	}
	err := player.Play(ctx, tl)
	if errors.Is(err, tone.ErrAudioUnavailable) {
		e.warnNoAudio(err)
		e.bell = tone.NewPlayer(tone.BellDriver{Out: e.stderr})
		return e.bell.Play(ctx, tl)
	}
	return err
}

// report logs the non-fatal issues of a conversion.
func report(issues []error) {
	for _, issue := range issues {
		var unsupported *codec.UnsupportedCharacterError
		var unknown *codec.UnknownCodeError
		switch {
		case errors.As(issue, &unsupported):
			slog.Warn("dropped unsupported character", "char", string(unsupported.Char), "offset", unsupported.Offset)
		case errors.As(issue, &unknown):
			slog.Warn("skipped unknown code", "code", unknown.Code, "offset", unknown.Offset)
		}
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 120
}

// fail exits the process; an interrupted command exits quietly.
func fail(name string, err error) {
	if errors.Is(err, context.Canceled) {
		os.Exit(130)
	}
	fmt.Fprintf(os.Stderr, "morse %s: %v\n", name, err)
	os.Exit(1)
}
