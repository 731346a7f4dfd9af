package common

import (
	"path/filepath"
	"testing"
)

func TestCacheDir_XDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	if got, want := CacheDir(), filepath.Join("/tmp/xdg-cache", "morse"); got != want {
		t.Errorf("CacheDir() = %q, want %q", got, want)
	}
}

func TestCacheDir_Home(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/tmp/home")
	if got, want := CacheDir(), filepath.Join("/tmp/home", ".cache", "morse"); got != want {
		t.Errorf("CacheDir() = %q, want %q", got, want)
	}
}

func TestDefaultParamEnricher(t *testing.T) {
	if DefaultParamEnricher() == nil {
		t.Error("DefaultParamEnricher() returned nil")
	}
}
