// Package input gathers what the user did during one frame: key presses, where mouse
// buttons were clicked, files dropped on the window and quit requests.
//
// The engine calls EventLoopStart once per frame and then forwards SDL events to the
// Handle functions. While the ui owns the mouse or keyboard, queries about that device
// report nothing, so clicking a ui button doesn't also pick the object behind it.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// clickPos is where a mouse button went down, in window coordinates with (0, 0) at the top left
type clickPos struct {
	X int32
	Y int32
}

type frame struct {
	// heldKeys tracks keys that are down so repeats and held keys aren't reported as new presses
	heldKeys    map[sdl.Keycode]struct{}
	pressedKeys map[sdl.Keycode]struct{}

	// clicks keeps the first press of each button this frame. Presses shorter than a frame
	// still show up since only the press is recorded.
	clicks map[uint8]clickPos

	droppedFiles []string
	quit         bool

	mouseCaptured    bool
	keyboardCaptured bool
}

var cur = frame{
	heldKeys:    map[sdl.Keycode]struct{}{},
	pressedKeys: map[sdl.Keycode]struct{}{},
	clicks:      map[uint8]clickPos{},
}

// EventLoopStart starts a new frame. The captured flags say whether the ui wants the mouse or keyboard this frame.
func EventLoopStart(mouseCaptured, keyboardCaptured bool) {

	cur.mouseCaptured = mouseCaptured
	cur.keyboardCaptured = keyboardCaptured

	clear(cur.pressedKeys)
	clear(cur.clicks)
	cur.droppedFiles = cur.droppedFiles[:0]
	cur.quit = false
}

// ClearKeyboardState forgets held keys, which is needed when the ui takes the keyboard
// because their release events never arrive here
func ClearKeyboardState() {
	clear(cur.heldKeys)
	clear(cur.pressedKeys)
}

func ClearMouseState() {
	clear(cur.clicks)
}

func HandleKeyboardEvent(e *sdl.KeyboardEvent) {

	key := e.Keysym.Sym
	if e.State == sdl.RELEASED {
		delete(cur.heldKeys, key)
		return
	}

	if _, held := cur.heldKeys[key]; held || e.Repeat != 0 {
		return
	}

	cur.heldKeys[key] = struct{}{}
	cur.pressedKeys[key] = struct{}{}
}

func HandleMouseBtnEvent(e *sdl.MouseButtonEvent) {

	if e.State != sdl.PRESSED {
		return
	}

	if _, ok := cur.clicks[e.Button]; ok {
		return
	}

	cur.clicks[e.Button] = clickPos{X: e.X, Y: e.Y}
}

func HandleDropEvent(e *sdl.DropEvent) {

	if e.Type != sdl.DROPFILE || e.File == "" {
		return
	}

	cur.droppedFiles = append(cur.droppedFiles, e.File)
}

func HandleQuitEvent(e *sdl.QuitEvent) {
	cur.quit = true
}

// KeyClicked reports whether kc went down this frame. Held keys and repeats don't count.
func KeyClicked(kc sdl.Keycode) bool {

	if cur.keyboardCaptured {
		return false
	}

	_, ok := cur.pressedKeys[kc]
	return ok
}

// MouseClickPos returns where button mb (e.g. sdl.BUTTON_LEFT) was pressed this frame
func MouseClickPos(mb uint8) (x, y int32, ok bool) {

	if cur.mouseCaptured {
		return 0, 0, false
	}

	c, ok := cur.clicks[mb]
	return c.X, c.Y, ok
}

// DroppedFiles returns the paths of files dropped on the window this frame.
// The slice is reused by the next frame.
func DroppedFiles() []string {
	return cur.droppedFiles
}

func IsQuitClicked() bool {
	return cur.quit
}
