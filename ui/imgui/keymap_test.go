package imgui

import (
	"testing"

	imgui "github.com/AllenDang/cimgui-go"
	"github.com/veandco/go-sdl2/sdl"
)

func TestSdlScancodeToImGuiKey(t *testing.T) {

	tests := []struct {
		scancode sdl.Scancode
		key      imgui.Key
	}{
		{sdl.SCANCODE_TAB, imgui.KeyTab},
		{sdl.SCANCODE_RETURN, imgui.KeyEnter},
		{sdl.SCANCODE_LSHIFT, imgui.KeyLeftShift},
		{sdl.SCANCODE_C, imgui.KeyC},
		{sdl.SCANCODE_F12, imgui.KeyF12},
		{sdl.SCANCODE_AUDIOPLAY, imgui.KeyNone},
	}

	for _, tt := range tests {
		if got := SdlScancodeToImGuiKey(tt.scancode); got != tt.key {
			t.Errorf("scancode %d: expected key %d; got %d", tt.scancode, tt.key, got)
		}
	}
}
