package notify

import (
	"bytes"
	"errors"
	"testing"
)

func withDesktopNotify(t *testing.T, f func(title, message string) error) {
	t.Helper()
	orig := desktopNotify
	desktopNotify = f
	t.Cleanup(func() { desktopNotify = orig })
}

func TestDesktopDisabledWritesFallback(t *testing.T) {
	called := false
	withDesktopNotify(t, func(string, string) error {
		called = true
		return nil
	})

	var buf bytes.Buffer
	if err := (Desktop{Fallback: &buf}).Notify("morse", "no audio"); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if called {
		t.Error("desktop notification should not be sent when disabled")
	}
	if got, want := buf.String(), "[morse] no audio\n"; got != want {
		t.Errorf("fallback = %q, want %q", got, want)
	}
}

func TestDesktopEnabled(t *testing.T) {
	var gotTitle, gotMessage string
	withDesktopNotify(t, func(title, message string) error {
		gotTitle, gotMessage = title, message
		return nil
	})

	var buf bytes.Buffer
	if err := (Desktop{Enabled: true, Fallback: &buf}).Notify("morse", "hello"); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if gotTitle != "morse" || gotMessage != "hello" {
		t.Errorf("desktop got (%q, %q), want (morse, hello)", gotTitle, gotMessage)
	}
	if buf.Len() != 0 {
		t.Errorf("fallback should be unused, got %q", buf.String())
	}
}

func TestDesktopFailureFallsBack(t *testing.T) {
	withDesktopNotify(t, func(string, string) error { return errors.New("no dbus") })

	var buf bytes.Buffer
	if err := (Desktop{Enabled: true, Fallback: &buf}).Notify("morse", "hello"); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if buf.String() != "[morse] hello\n" {
		t.Errorf("fallback = %q", buf.String())
	}
}
