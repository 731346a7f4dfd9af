package live

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/morse/cmd/morse/notify"
	"github.com/gigurra/morse/cmd/morse/schedule"
	"github.com/gigurra/morse/cmd/morse/speech"
	"github.com/gigurra/morse/cmd/morse/tone"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestTypingConvertsEveryKeystroke(t *testing.T) {
	m := New(Deps{}, ModeEncode)
	m, _ = update(t, m, runes("s"))
	if m.Output() != "..." {
		t.Errorf("output after 's' = %q, want %q", m.Output(), "...")
	}
	m, _ = update(t, m, runes("os"))
	m, _ = update(t, m, key(tea.KeySpace))
	m, _ = update(t, m, runes("e"))
	if want := "... --- ...   ."; m.Output() != want {
		t.Errorf("output = %q, want %q", m.Output(), want)
	}
	m, _ = update(t, m, key(tea.KeyBackspace))
	m, _ = update(t, m, key(tea.KeyBackspace))
	if m.Input() != "sos" || m.Output() != "... --- ..." {
		t.Errorf("after backspace input=%q output=%q", m.Input(), m.Output())
	}
	m, _ = update(t, m, key(tea.KeyCtrlU))
	if m.Input() != "" || m.Output() != "" {
		t.Errorf("after clear input=%q output=%q", m.Input(), m.Output())
	}
}

func TestTabSwapsDirection(t *testing.T) {
	m := New(Deps{}, ModeEncode)
	m, _ = update(t, m, runes("hi"))
	m, _ = update(t, m, key(tea.KeyTab))
	if m.Mode() != ModeDecode {
		t.Fatalf("mode = %v, want decode", m.Mode())
	}
	if m.Input() != ".... .." || m.Output() != "HI" {
		t.Errorf("after tab input=%q output=%q", m.Input(), m.Output())
	}
}

func TestPartialMorseShowsBestEffort(t *testing.T) {
	m := New(Deps{}, ModeDecode)
	m, _ = update(t, m, runes(".... ........ .."))
	if m.Output() != "HI" {
		t.Errorf("output = %q, want %q", m.Output(), "HI")
	}
	if !strings.Contains(m.View(), "1 unsupported codes skipped") {
		t.Errorf("view should mention the skipped code:\n%s", m.View())
	}
}

func TestCopy(t *testing.T) {
	var copied string
	m := New(Deps{Copy: func(s string) error { copied = s; return nil }}, ModeEncode)
	m, _ = update(t, m, runes("e"))
	m, _ = update(t, m, key(tea.KeyCtrlY))
	if copied != "." {
		t.Errorf("copied = %q, want %q", copied, ".")
	}
	if !strings.Contains(m.View(), "copied to clipboard") {
		t.Error("view should confirm the copy")
	}
}

func TestPlayUsesMorseSide(t *testing.T) {
	var played []schedule.ToneEvent
	player := tone.NewPlayer(tone.DriverFunc(func(_ context.Context, tl schedule.Timeline) error {
		played = tl.Collect()
		return nil
	}))
	m := New(Deps{Player: player, Timing: schedule.Standard(time.Millisecond)}, ModeEncode)
	m, _ = update(t, m, runes("t"))

	m, cmd := update(t, m, key(tea.KeyCtrlP))
	if cmd == nil {
		t.Fatal("ctrl+p should return a playback command")
	}
	if !m.playing {
		t.Error("model should be playing")
	}
	m, _ = update(t, m, cmd())
	if m.playing {
		t.Error("model should be idle after playback finished")
	}
	want := []schedule.ToneEvent{{At: 0, On: true}, {At: 3 * time.Millisecond, On: false}}
	if len(played) != 2 || played[0] != want[0] || played[1] != want[1] {
		t.Errorf("played %v, want %v", played, want)
	}
}

func TestPlaybackFallsBackWhenAudioUnavailable(t *testing.T) {
	speakerCalls, bellCalls := 0, 0
	speaker := tone.NewPlayer(tone.DriverFunc(func(context.Context, schedule.Timeline) error {
		speakerCalls++
		return tone.ErrAudioUnavailable
	}))
	bell := tone.NewPlayer(tone.DriverFunc(func(context.Context, schedule.Timeline) error {
		bellCalls++
		return nil
	}))
	var notes []string
	m := New(Deps{
		Player:   speaker,
		Fallback: bell,
		Timing:   schedule.Standard(time.Millisecond),
		Notifier: notify.Func(func(_, message string) error {
			notes = append(notes, message)
			return nil
		}),
	}, ModeEncode)
	m, _ = update(t, m, runes("e"))

	m, cmd := update(t, m, key(tea.KeyCtrlP))
	m, cmd = update(t, m, cmd())
	if cmd == nil {
		t.Fatal("a failed speaker should replay on the fallback")
	}
	if !strings.Contains(m.View(), "terminal bell") {
		t.Error("status should mention the bell fallback")
	}
	m, _ = update(t, m, cmd())
	if m.playing {
		t.Error("model should be idle after the fallback finished")
	}

	m, cmd = update(t, m, key(tea.KeyCtrlP))
	_, _ = update(t, m, cmd())
	if speakerCalls != 1 || bellCalls != 2 {
		t.Errorf("speaker calls = %d, bell calls = %d, want 1 and 2", speakerCalls, bellCalls)
	}
	if len(notes) != 1 {
		t.Errorf("notifications = %v, want one", notes)
	}
}

func TestPlaybackWithoutFallbackReportsUnavailable(t *testing.T) {
	speaker := tone.NewPlayer(tone.DriverFunc(func(context.Context, schedule.Timeline) error {
		return tone.ErrAudioUnavailable
	}))
	m := New(Deps{Player: speaker, Timing: schedule.Standard(time.Millisecond)}, ModeEncode)
	m, _ = update(t, m, runes("e"))
	m, cmd := update(t, m, key(tea.KeyCtrlP))
	m, cmd = update(t, m, cmd())
	if cmd != nil {
		t.Error("no fallback means no replay")
	}
	if !strings.Contains(m.View(), "audio output unavailable") {
		t.Errorf("view should report missing audio:\n%s", m.View())
	}
}

func TestStalePlaybackDoesNotClearState(t *testing.T) {
	m := New(Deps{Player: tone.NewPlayer(tone.DriverFunc(func(context.Context, schedule.Timeline) error { return nil }))}, ModeEncode)
	m, _ = update(t, m, key(tea.KeyCtrlP))
	m, _ = update(t, m, key(tea.KeyCtrlP))
	m, _ = update(t, m, playDoneMsg{seq: 1, err: context.Canceled})
	if !m.playing {
		t.Error("a replaced playback finishing should not mark the newer one idle")
	}
}

func TestSpeechUnavailableNotifies(t *testing.T) {
	var notified string
	deps := Deps{
		Speech:   speech.NewSession(speech.Unavailable{}),
		Notifier: notify.Func(func(_, message string) error { notified = message; return nil }),
	}
	m := New(deps, ModeEncode)
	m, cmd := update(t, m, key(tea.KeyCtrlL))
	if cmd == nil {
		t.Fatal("ctrl+l should return a capture command")
	}
	m, _ = update(t, m, cmd())
	if !strings.Contains(notified, "not available") {
		t.Errorf("notified %q, want capability message", notified)
	}
	if m.capturing {
		t.Error("capture state should be reset")
	}
}

func TestSpeechAppendsUtterance(t *testing.T) {
	m := New(Deps{}, ModeEncode)
	m, _ = update(t, m, runes("hi"))
	m, _ = update(t, m, captureMsg{text: "there"})
	if m.Input() != "hi there" {
		t.Errorf("input = %q, want %q", m.Input(), "hi there")
	}

	m = New(Deps{}, ModeDecode)
	m, _ = update(t, m, runes("...."))
	m, _ = update(t, m, captureMsg{text: "e"})
	if m.Input() != "....   ." || m.Output() != "H E" {
		t.Errorf("decode append input=%q output=%q", m.Input(), m.Output())
	}
}

func TestCaptureFailureKeepsInput(t *testing.T) {
	m := New(Deps{}, ModeEncode)
	m, _ = update(t, m, runes("ok"))
	m, _ = update(t, m, captureMsg{err: errors.New("mic unplugged")})
	if m.Input() != "ok" {
		t.Errorf("input = %q, want unchanged", m.Input())
	}
	if !strings.Contains(m.View(), "mic unplugged") {
		t.Error("view should show the capture error")
	}
}

func TestQuit(t *testing.T) {
	m := New(Deps{}, ModeEncode)
	_, cmd := update(t, m, key(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"capture failed", 0, "capture failed"},
		{"capture failed", 40, "capture failed"},
		{"capture failed", 8, "capture…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
