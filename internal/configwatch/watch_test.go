package configwatch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func startWatch(t *testing.T, path string, calls *atomic.Int32) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, 50*time.Millisecond, logger, func() { calls.Add(1) })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// Let the watcher register the directory.
	time.Sleep(100 * time.Millisecond)
}

func TestWatch_DebouncedWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	startWatch(t, path, &calls)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("a: 2\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	eventually(t, 2*time.Second, 20*time.Millisecond, func() bool {
		return calls.Load() >= 1
	}, "onChange was not called")

	time.Sleep(150 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("onChange called %d times, want 1 after debounce", n)
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	startWatch(t, path, &calls)

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("b: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("onChange called %d times for unrelated file", n)
	}
}

func TestWatch_RenameIntoPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	startWatch(t, path, &calls)

	tmp := filepath.Join(dir, "config.yaml.tmp")
	if err := os.WriteFile(tmp, []byte("a: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	eventually(t, 2*time.Second, 20*time.Millisecond, func() bool {
		return calls.Load() >= 1
	}, "onChange was not called after rename")
}

func TestWatch_MissingDirectory(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "config.yaml"), 0, logger, func() {})
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
