package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestReloadsAfterWrite(t *testing.T) {
	dir := t.TempDir()

	var reloads atomic.Int32
	w, err := New(dir, func() error {
		reloads.Add(1)
		return nil
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	w.debounce = 50 * time.Millisecond

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("## New\n\nContent"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for reloads.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no reload within 3s of a corpus write")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()

	var reloads atomic.Int32
	w, err := New(dir, func() error {
		reloads.Add(1)
		return nil
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	w.debounce = 50 * time.Millisecond

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "twinchat.db"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if n := reloads.Load(); n != 0 {
		t.Errorf("reloaded %d times for a non-corpus file, want 0", n)
	}
}

func TestBurstOfWritesDebouncesToOneReload(t *testing.T) {
	dir := t.TempDir()

	var reloads atomic.Int32
	w, err := New(dir, func() error {
		reloads.Add(1)
		return nil
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	w.debounce = 200 * time.Millisecond

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "notes.txt")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("draft"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(600 * time.Millisecond)
	if n := reloads.Load(); n != 1 {
		t.Errorf("reloaded %d times for a write burst, want 1", n)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), func() error { return nil }, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}
