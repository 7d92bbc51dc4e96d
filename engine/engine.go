package engine

import (
	"fmt"
	"runtime"

	imgui "github.com/AllenDang/cimgui-go"
	"github.com/bloeys/nframe/assert"
	"github.com/bloeys/nframe/glapi"
	"github.com/bloeys/nframe/input"
	"github.com/bloeys/nframe/logging"
	"github.com/bloeys/nframe/timing"
	nframeimgui "github.com/bloeys/nframe/ui/imgui"
	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	// Clearing and reading integer attachments needs glClearTexImage, which is core since 4.4,
	// and the bindings are loaded for 4.5
	MinGlMajorVersion = 4
	MinGlMinorVersion = 5
)

var (
	isInited = false

	isSdlButtonLeftDown   = false
	isSdlButtonMiddleDown = false
	isSdlButtonRightDown  = false

	ImguiRelativeMouseModePosX float32
	ImguiRelativeMouseModePosY float32
)

type Window struct {
	SDLWin *sdl.Window
	GlCtx  sdl.GLContext

	// Ctx is handed to framebuffers, textures and pickers created for this window
	Ctx glapi.Context

	EventCallbacks []func(sdl.Event)

	// ResizeCallbacks get the new drawable size in pixels. They are not called while minimized.
	ResizeCallbacks []func(width, height int32)

	// DropCallbacks get the path of every file dropped on the window
	DropCallbacks []func(path string)
}

func (w *Window) handleInputs() {

	imIo := imgui.CurrentIO()

	imguiCaptureMouse := imIo.WantCaptureMouse()
	imguiCaptureKeyboard := imIo.WantCaptureKeyboard()

	input.EventLoopStart(imguiCaptureMouse, imguiCaptureKeyboard)

	// Without this, keys held while imgui grabs the keyboard stay down
	// forever because we never see their release
	if imguiCaptureMouse {
		input.ClearMouseState()
	}

	if imguiCaptureKeyboard {
		input.ClearKeyboardState()
	}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		switch e := event.(type) {

		case *sdl.MouseWheelEvent:
			imIo.AddMouseWheelDelta(float32(e.X), float32(e.Y))

		case *sdl.KeyboardEvent:

			if !imguiCaptureKeyboard {
				input.HandleKeyboardEvent(e)
			}

			isDown := e.Type == sdl.KEYDOWN
			imIo.AddKeyEvent(nframeimgui.SdlScancodeToImGuiKey(e.Keysym.Scancode), isDown)

			switch e.Keysym.Sym {
			case sdl.K_LCTRL, sdl.K_RCTRL:
				imIo.SetKeyCtrl(isDown)
			case sdl.K_LSHIFT, sdl.K_RSHIFT:
				imIo.SetKeyShift(isDown)
			case sdl.K_LALT, sdl.K_RALT:
				imIo.SetKeyAlt(isDown)
			case sdl.K_LGUI, sdl.K_RGUI:
				imIo.SetKeySuper(isDown)
			}

		case *sdl.TextInputEvent:
			imIo.AddInputCharactersUTF8(e.GetText())

		case *sdl.MouseButtonEvent:

			if !imguiCaptureMouse {
				input.HandleMouseBtnEvent(e)
			}

			isPressed := e.State == sdl.PRESSED

			switch e.Button {
			case sdl.BUTTON_LEFT:
				isSdlButtonLeftDown = isPressed
			case sdl.BUTTON_MIDDLE:
				isSdlButtonMiddleDown = isPressed
			case sdl.BUTTON_RIGHT:
				isSdlButtonRightDown = isPressed
			}

		case *sdl.DropEvent:

			input.HandleDropEvent(e)
			if e.Type == sdl.DROPFILE {
				w.fireDrop(e.File)
			}

		case *sdl.WindowEvent:

			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w.fireResize(w.SDLWin.GLGetDrawableSize())
			}

		case *sdl.QuitEvent:
			input.HandleQuitEvent(e)
		}
	}

	if sdl.GetRelativeMouseMode() {
		imIo.SetMousePos(imgui.Vec2{X: ImguiRelativeMouseModePosX, Y: ImguiRelativeMouseModePosY})
	} else {
		x, y, _ := sdl.GetMouseState()
		imIo.SetMousePos(imgui.Vec2{X: float32(x), Y: float32(y)})
	}

	// Pass presses as held this frame so clicks shorter than a frame aren't lost
	imIo.SetMouseButtonDown(imgui.MouseButtonLeft, isSdlButtonLeftDown)
	imIo.SetMouseButtonDown(imgui.MouseButtonRight, isSdlButtonRightDown)
	imIo.SetMouseButtonDown(imgui.MouseButtonMiddle, isSdlButtonMiddleDown)
}

// fireResize updates the default viewport and notifies ResizeCallbacks.
// Minimizing reports a zero size, which is ignored.
func (w *Window) fireResize(fbWidth, fbHeight int32) {

	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}

	w.Ctx.Viewport(0, 0, fbWidth, fbHeight)
	for i := 0; i < len(w.ResizeCallbacks); i++ {
		w.ResizeCallbacks[i](fbWidth, fbHeight)
	}
}

func (w *Window) fireDrop(path string) {

	if path == "" {
		return
	}

	logging.InfoLog.Debug("file dropped on window", "path", path)
	for i := 0; i < len(w.DropCallbacks); i++ {
		w.DropCallbacks[i](path)
	}
}

func (w *Window) SetTitle(title string) {
	w.SDLWin.SetTitle(title)
}

// SetFullscreen switches between borderless desktop fullscreen and windowed mode
func (w *Window) SetFullscreen(enabled bool) error {

	flags := uint32(0)
	if enabled {
		flags = uint32(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}

	if err := w.SDLWin.SetFullscreen(flags); err != nil {
		return fmt.Errorf("failed to set fullscreen=%v: %w", enabled, err)
	}

	return nil
}

func (w *Window) Destroy() error {

	if w.GlCtx != nil {
		sdl.GLDeleteContext(w.GlCtx)
		w.GlCtx = nil
	}

	return w.SDLWin.Destroy()
}

// Init must be called on the main goroutine before creating windows.
// glMajor/glMinor request a core context of at least that version.
func Init(glMajor, glMinor int) error {

	assert.T(glMajor > MinGlMajorVersion || (glMajor == MinGlMajorVersion && glMinor >= MinGlMinorVersion), "OpenGL %d.%d requested but at least %d.%d is needed", glMajor, glMinor, MinGlMajorVersion, MinGlMinorVersion)

	isInited = true

	runtime.LockOSThread()
	timing.Init()

	if err := initSDL(glMajor, glMinor); err != nil {
		return fmt.Errorf("failed to init SDL: %w", err)
	}

	return nil
}

func initSDL(glMajor, glMinor int) error {

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.ShowCursor(1)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, glMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, glMinor)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	// Dropped files arrive as events instead of being ignored
	sdl.EventState(sdl.DROPFILE, sdl.ENABLE)

	return nil
}

func CreateOpenGLWindowCentered(title string, width, height int32, flags WindowFlags) (*Window, error) {
	return createWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, WindowFlags_OPENGL|flags)
}

func createWindow(title string, x, y, width, height int32, flags WindowFlags) (*Window, error) {

	assert.T(isInited, "engine.Init() was not called!")

	sdlWin, err := sdl.CreateWindow(title, x, y, width, height, uint32(flags))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	win := &Window{
		SDLWin:          sdlWin,
		EventCallbacks:  make([]func(sdl.Event), 0),
		ResizeCallbacks: make([]func(width, height int32), 0),
		DropCallbacks:   make([]func(path string), 0),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		return nil, fmt.Errorf("failed to create OpenGL context: %w", err)
	}

	err = initOpenGL()
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to init OpenGL: %w", err)
	}

	win.Ctx = glapi.NewGL45()

	// Get rid of the blinding white startup screen (unfortunately there is still one frame of white)
	win.Ctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	sdlWin.GLSwap()

	logging.InfoLog.Info("created window", "title", title, "width", width, "height", height, "gl", gl.GoStr(gl.GetString(gl.VERSION)))
	return win, nil
}

func initOpenGL() error {

	if err := gl.Init(); err != nil {
		return err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ClearColor(0, 0, 0, 1)

	return nil
}

func SetSrgbFramebuffer(isEnabled bool) {

	if isEnabled {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		gl.Disable(gl.FRAMEBUFFER_SRGB)
	}
}

func SetVSync(enabled bool) {

	if enabled {
		sdl.GLSetSwapInterval(1)
	} else {
		sdl.GLSetSwapInterval(0)
	}
}
