package engine

import (
	"github.com/bloeys/nframe/renderer"
	"github.com/bloeys/nframe/timing"
	nframeimgui "github.com/bloeys/nframe/ui/imgui"
)

var (
	isRunning = false
)

type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Run calls game.Init then loops until Quit is called, after which game.DeInit is called.
//
// Each frame: events are processed, the ui frame is started, game.Update and game.Render
// are called, then the ui is drawn over the default framebuffer and the window is swapped.
func Run(g Game, w *Window, rend renderer.Render, ui *nframeimgui.ImguiInfo) {

	isRunning = true

	g.Init()

	// Let everyone know the starting size
	w.fireResize(w.SDLWin.GLGetDrawableSize())

	for isRunning {

		timing.FrameStarted()
		w.handleInputs()

		winWidth, winHeight := w.SDLWin.GetSize()
		ui.FrameStart(float32(winWidth), float32(winHeight))

		g.Update()
		g.Render()

		fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
		ui.Render(float32(winWidth), float32(winHeight), fbWidth, fbHeight)

		w.SDLWin.GLSwap()

		g.FrameEnd()
		rend.FrameEnd()
		timing.FrameEnded()
	}

	g.DeInit()
}

// Quit ends Run after the current frame completes
func Quit() {
	isRunning = false
}
