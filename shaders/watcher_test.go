package shaders

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsChangedFiles(t *testing.T) {

	dir := t.TempDir()
	watchedPath := filepath.Join(dir, "quad.glsl")
	otherPath := filepath.Join(dir, "other.glsl")

	for _, p := range []string{watchedPath, otherPath} {
		if err := os.WriteFile(p, []byte("//shader:vertex\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	w, err := NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(&ShaderProgram{Name: watchedPath}); err != nil {
		t.Fatal(err)
	}

	if changed := w.TakeChanged(); changed != nil {
		t.Fatalf("expected no changes before writing; got %v", changed)
	}

	if err := os.WriteFile(otherPath, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(watchedPath, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}

	var changed []string
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {

		changed = w.TakeChanged()
		if len(changed) > 0 {
			break
		}

		time.Sleep(10 * time.Millisecond)
	}

	if len(changed) != 1 || changed[0] != watchedPath {
		t.Fatalf("expected only '%s' to be reported; got %v", watchedPath, changed)
	}

}

func TestWatcherCloseTwice(t *testing.T) {

	w, err := NewWatcher()
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("expected first close to succeed; got %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("expected second close to be a no-op; got %v", err)
	}
}
