package imgui

import (
	imgui "github.com/AllenDang/cimgui-go"
	"github.com/veandco/go-sdl2/sdl"
)

var scancodeToKey = map[sdl.Scancode]imgui.Key{
	sdl.SCANCODE_TAB:       imgui.KeyTab,
	sdl.SCANCODE_LEFT:      imgui.KeyLeftArrow,
	sdl.SCANCODE_RIGHT:     imgui.KeyRightArrow,
	sdl.SCANCODE_UP:        imgui.KeyUpArrow,
	sdl.SCANCODE_DOWN:      imgui.KeyDownArrow,
	sdl.SCANCODE_PAGEUP:    imgui.KeyPageUp,
	sdl.SCANCODE_PAGEDOWN:  imgui.KeyPageDown,
	sdl.SCANCODE_HOME:      imgui.KeyHome,
	sdl.SCANCODE_END:       imgui.KeyEnd,
	sdl.SCANCODE_INSERT:    imgui.KeyInsert,
	sdl.SCANCODE_DELETE:    imgui.KeyDelete,
	sdl.SCANCODE_BACKSPACE: imgui.KeyBackspace,
	sdl.SCANCODE_SPACE:     imgui.KeySpace,
	sdl.SCANCODE_RETURN:    imgui.KeyEnter,
	sdl.SCANCODE_KP_ENTER:  imgui.KeyKeypadEnter,
	sdl.SCANCODE_ESCAPE:    imgui.KeyEscape,

	sdl.SCANCODE_LCTRL:  imgui.KeyLeftCtrl,
	sdl.SCANCODE_LSHIFT: imgui.KeyLeftShift,
	sdl.SCANCODE_LALT:   imgui.KeyLeftAlt,
	sdl.SCANCODE_LGUI:   imgui.KeyLeftSuper,
	sdl.SCANCODE_RCTRL:  imgui.KeyRightCtrl,
	sdl.SCANCODE_RSHIFT: imgui.KeyRightShift,
	sdl.SCANCODE_RALT:   imgui.KeyRightAlt,
	sdl.SCANCODE_RGUI:   imgui.KeyRightSuper,

	sdl.SCANCODE_A: imgui.KeyA,
	sdl.SCANCODE_C: imgui.KeyC,
	sdl.SCANCODE_V: imgui.KeyV,
	sdl.SCANCODE_X: imgui.KeyX,
	sdl.SCANCODE_Y: imgui.KeyY,
	sdl.SCANCODE_Z: imgui.KeyZ,

	sdl.SCANCODE_F1:  imgui.KeyF1,
	sdl.SCANCODE_F2:  imgui.KeyF2,
	sdl.SCANCODE_F3:  imgui.KeyF3,
	sdl.SCANCODE_F4:  imgui.KeyF4,
	sdl.SCANCODE_F5:  imgui.KeyF5,
	sdl.SCANCODE_F6:  imgui.KeyF6,
	sdl.SCANCODE_F7:  imgui.KeyF7,
	sdl.SCANCODE_F8:  imgui.KeyF8,
	sdl.SCANCODE_F9:  imgui.KeyF9,
	sdl.SCANCODE_F10: imgui.KeyF10,
	sdl.SCANCODE_F11: imgui.KeyF11,
	sdl.SCANCODE_F12: imgui.KeyF12,
}

// SdlScancodeToImGuiKey returns imgui.KeyNone for keys imgui doesn't need (e.g. media keys).
// Letters other than the ones used by shortcuts come through text input instead.
func SdlScancodeToImGuiKey(scancode sdl.Scancode) imgui.Key {

	if k, ok := scancodeToKey[scancode]; ok {
		return k
	}

	return imgui.KeyNone
}
