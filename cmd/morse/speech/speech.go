// Package speech captures a single spoken utterance as text through an
// external recogniser. The capability is optional: when nothing is
// configured every capture reports ErrCapabilityUnavailable.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/GiGurra/cmder"
	"github.com/kballard/go-shellquote"
)

var (
	ErrCapabilityUnavailable = errors.New("speech capture is not available")
	ErrCaptureFailed         = errors.New("speech capture failed")
	ErrCaptureBusy           = errors.New("a speech capture is already in progress")
)

// CaptureTimeout bounds a single recogniser run.
var CaptureTimeout = 2 * time.Minute

// Capturer records until the speaker stops and returns the recognised text.
type Capturer interface {
	Capture(ctx context.Context) (string, error)
}

// New returns a Command capturer for a non-empty command line, otherwise a
// capturer that is always unavailable.
func New(commandLine string) Capturer {
	if strings.TrimSpace(commandLine) == "" {
		return Unavailable{}
	}
	return Command{Line: commandLine}
}

type Unavailable struct{}

func (Unavailable) Capture(context.Context) (string, error) {
	return "", ErrCapabilityUnavailable
}

// Command runs an external recogniser, e.g. a whisper.cpp wrapper script,
// and takes its trimmed stdout as the utterance.
type Command struct {
	Line string
}

func (c Command) Capture(ctx context.Context) (string, error) {
	argv, err := shellquote.Split(c.Line)
	if err != nil {
		return "", fmt.Errorf("%w: invalid command %q: %v", ErrCapabilityUnavailable, c.Line, err)
	}
	if len(argv) == 0 {
		return "", ErrCapabilityUnavailable
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCapabilityUnavailable, err)
	}

	slog.Debug("starting speech capture", "command", argv[0])
	result := cmder.New(argv...).
		WithAttemptTimeout(CaptureTimeout).
		Run(ctx)
	if result.Err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(result.StdErr)
		if msg == "" {
			return "", fmt.Errorf("%w: %v", ErrCaptureFailed, result.Err)
		}
		return "", fmt.Errorf("%w: %v: %s", ErrCaptureFailed, result.Err, msg)
	}

	text := strings.Join(strings.Fields(result.StdOut), " ")
	if text == "" {
		return "", fmt.Errorf("%w: nothing recognised", ErrCaptureFailed)
	}
	return text, nil
}

// Session allows one capture at a time for a single input.
type Session struct {
	mu       sync.Mutex
	capturer Capturer
	cancel   context.CancelFunc
}

func NewSession(c Capturer) *Session {
	return &Session{capturer: c}
}

// Capture runs one capture. It fails with ErrCaptureBusy while another
// capture on the same session is still running.
func (s *Session) Capture(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return "", ErrCaptureBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
		cancel()
	}()

	return s.capturer.Capture(ctx)
}

// Cancel aborts the running capture, if any.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Append adds a recognised utterance to pending input, separated by one space.
func Append(input, utterance string) string {
	utterance = strings.TrimSpace(utterance)
	switch {
	case utterance == "":
		return input
	case input == "" || strings.HasSuffix(input, " "):
		return input + utterance
	default:
		return input + " " + utterance
	}
}
