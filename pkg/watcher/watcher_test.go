package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherDetectsChangeViaPolling(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	writeFile(t, path, "{}")

	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithDebounceDuration(10*time.Millisecond),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling mode when forced")
	}

	// Mtime resolution can be coarse; change the size too.
	time.Sleep(30 * time.Millisecond)
	writeFile(t, path, `{"Values":[1,2,3]}`)

	select {
	case <-w.Changed():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestWatcherOnChangeCallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	writeFile(t, path, "a")

	changed := make(chan struct{}, 1)
	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithDebounceDuration(10*time.Millisecond),
		WithOnChange(func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(30 * time.Millisecond)
	writeFile(t, path, "ab")

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for onChange")
	}
}

func TestWatcherDoubleStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	writeFile(t, path, "x")

	w, err := New(path, WithForcePoll(true))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	writeFile(t, path, "x")

	w, err := New(path, WithForcePoll(true))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
	if w.IsStarted() {
		t.Error("watcher should be stopped")
	}
}

func TestWatcherMissingFileStarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-yet.json")

	w, err := New(path, WithForcePoll(true), WithPollInterval(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("watching a not-yet-existing file should start, got %v", err)
	}
	w.Stop()
}

func TestDebouncerCoalesces(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	fired := make(chan struct{}, 8)

	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired <- struct{}{} })
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("debounced callback never fired")
	}

	select {
	case <-fired:
		t.Error("burst of triggers should coalesce into one callback")
	case <-time.After(100 * time.Millisecond):
	}
}
