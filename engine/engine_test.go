package engine

import (
	"testing"

	"github.com/bloeys/nframe/glapi/glfake"
)

func TestResizeCallbacksSkipEmptySizes(t *testing.T) {

	ctx := glfake.New()
	w := &Window{Ctx: ctx}

	calls := 0
	var gotW, gotH int32
	w.ResizeCallbacks = append(w.ResizeCallbacks, func(width, height int32) {
		calls++
		gotW, gotH = width, height
	})

	// Minimized
	w.fireResize(0, 0)
	w.fireResize(800, -1)
	if calls != 0 {
		t.Fatalf("expected no resize callbacks for empty sizes; got %d", calls)
	}

	w.fireResize(1280, 720)
	if calls != 1 || gotW != 1280 || gotH != 720 {
		t.Fatalf("expected one callback with 1280x720; got %d calls with %dx%d", calls, gotW, gotH)
	}

	if ctx.LastViewport != [4]int32{0, 0, 1280, 720} {
		t.Fatalf("expected viewport to follow the drawable size; got %v", ctx.LastViewport)
	}
}

func TestDropCallbacks(t *testing.T) {

	w := &Window{}

	var paths []string
	w.DropCallbacks = append(w.DropCallbacks, func(path string) {
		paths = append(paths, path)
	})

	w.fireDrop("")
	w.fireDrop("/tmp/a.png")
	w.fireDrop("/tmp/b.jpg")

	if len(paths) != 2 || paths[0] != "/tmp/a.png" || paths[1] != "/tmp/b.jpg" {
		t.Fatalf("expected the two non-empty paths in order; got %v", paths)
	}
}

func TestQuitStopsRun(t *testing.T) {

	isRunning = true
	Quit()

	if isRunning {
		t.Fatalf("expected Quit to clear the running flag")
	}
}
