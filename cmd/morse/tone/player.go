package tone

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gigurra/morse/cmd/morse/schedule"
	"github.com/google/uuid"
)

var ErrAudioUnavailable = errors.New("audio output is not available in this build")

// Driver plays one timeline relative to the moment Play is called. It must
// silence output and return promptly once ctx is cancelled.
type Driver interface {
	Play(ctx context.Context, tl schedule.Timeline) error
}

// DriverFunc adapts a function to Driver.
type DriverFunc func(ctx context.Context, tl schedule.Timeline) error

func (f DriverFunc) Play(ctx context.Context, tl schedule.Timeline) error { return f(ctx, tl) }

// Player serialises playback on a single driver: starting a new timeline
// cancels the active one and waits for it to go quiet first.
type Player struct {
	mu     sync.Mutex
	driver Driver
	active *playback
}

type playback struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPlayer(driver Driver) *Player {
	return &Player{driver: driver}
}

// Play blocks until the timeline finishes, is replaced by another Play, or is
// stopped. Replaced and stopped playbacks return context.Canceled.
func (p *Player) Play(ctx context.Context, tl schedule.Timeline) error {
	ctx, cancel := context.WithCancel(ctx)
	pb := &playback{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	p.mu.Lock()
	p.stopLocked()
	p.active = pb
	p.mu.Unlock()

	slog.Debug("playback started", "playback_id", pb.id, "duration", tl.Duration())
	err := p.driver.Play(ctx, tl)
	cancel()
	close(pb.done)

	p.mu.Lock()
	if p.active == pb {
		p.active = nil
	}
	p.mu.Unlock()

	if err != nil {
		slog.Debug("playback ended", "playback_id", pb.id, "error", err)
		return err
	}
	slog.Debug("playback finished", "playback_id", pb.id)
	return nil
}

// Stop cancels the active playback, if any, and waits for it to end.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Active reports whether a timeline is currently playing.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active != nil
}

// stopLocked must be called with p.mu held. The playing goroutine closes done
// before it takes the lock, so waiting here cannot deadlock.
func (p *Player) stopLocked() {
	if p.active == nil {
		return
	}
	p.active.cancel()
	<-p.active.done
	p.active = nil
}
