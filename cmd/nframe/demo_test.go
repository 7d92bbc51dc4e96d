package main

import "testing"

func TestWindowToFramebuffer(t *testing.T) {

	// 2x high dpi display
	x, y := windowToFramebuffer(100, 50, 640, 360, 1280, 720)
	if x != 200 || y != 100 {
		t.Fatalf("expected (200, 100); got (%d, %d)", x, y)
	}

	x, y = windowToFramebuffer(7, 9, 0, 0, 1280, 720)
	if x != 7 || y != 9 {
		t.Fatalf("expected an empty window to leave coordinates as is; got (%d, %d)", x, y)
	}
}

func TestRgbToRgba(t *testing.T) {

	got := rgbToRgba([]uint8{1, 2, 3, 4, 5, 6})
	expected := []uint8{1, 2, 3, 255, 4, 5, 6, 255}

	if len(got) != len(expected) {
		t.Fatalf("expected %v; got %v", expected, got)
	}

	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected %v; got %v", expected, got)
		}
	}
}
