package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	imgui "github.com/AllenDang/cimgui-go"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nframe/buffers"
	"github.com/bloeys/nframe/config"
	"github.com/bloeys/nframe/engine"
	"github.com/bloeys/nframe/input"
	"github.com/bloeys/nframe/logging"
	"github.com/bloeys/nframe/materials"
	"github.com/bloeys/nframe/picking"
	"github.com/bloeys/nframe/renderer/rendgl"
	"github.com/bloeys/nframe/shaders"
	"github.com/bloeys/nframe/textures"
	"github.com/bloeys/nframe/timing"
	nframeimgui "github.com/bloeys/nframe/ui/imgui"
	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/urfave/cli"
	"github.com/veandco/go-sdl2/sdl"
)

//go:embed scene.glsl
var sceneShaderSrc []byte

// Unit quad centered on the origin as position and uv
var quadVerts = []float32{
	-0.5, -0.5, 0, 0,
	0.5, -0.5, 1, 0,
	0.5, 0.5, 1, 1,

	-0.5, -0.5, 0, 0,
	0.5, 0.5, 1, 1,
	-0.5, 0.5, 0, 1,
}

type sceneQuad struct {
	Id    int32
	Pos   gglm.Vec2
	Size  gglm.Vec2
	Color gglm.Vec4
	Tex   *textures.Texture
}

type Demo struct {
	Cfg *config.Config
	Win *engine.Window

	Rend      *rendgl.RendGL
	ImGUIInfo *nframeimgui.ImguiInfo

	Picker   *picking.Picker
	SceneMat *materials.Material
	QuadVao  buffers.VertexArray
	Quads    []sceneQuad

	// Watcher is nil when hot reload is disabled
	Watcher *shaders.Watcher

	ScreenshotDir string

	fbWidth  int32
	fbHeight int32

	selectedId          int32
	highlightSelected   bool
	animate             bool
	screenshotRequested bool
	lastScreenshot      string
}

func runDemo(c *cli.Context) error {

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.Bool("v") {
		cfg.Log.Level = "debug"
	}

	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		return err
	}

	if err := engine.Init(cfg.Gl.Major, cfg.Gl.Minor); err != nil {
		return err
	}
	defer sdl.Quit()

	flags := engine.WindowFlags_ALLOW_HIGHDPI
	if cfg.Window.Resizable {
		flags |= engine.WindowFlags_RESIZABLE
	}

	win, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, flags)
	if err != nil {
		return err
	}
	defer win.Destroy()

	if cfg.Window.Fullscreen {
		if err := win.SetFullscreen(true); err != nil {
			logging.WarnLog.Warn("could not go fullscreen", "err", err)
		}
	}

	engine.SetVSync(cfg.Window.VSync)
	engine.SetSrgbFramebuffer(cfg.Gl.Srgb)

	rend, err := rendgl.NewRendGL()
	if err != nil {
		return err
	}

	imguiInfo, err := nframeimgui.NewImGui(win.Ctx)
	if err != nil {
		return err
	}

	demo, err := newDemo(cfg, win, rend, imguiInfo, c.String("screenshot-dir"))
	if err != nil {
		return err
	}

	engine.Run(demo, win, rend, imguiInfo)
	return nil
}

func newDemo(cfg *config.Config, win *engine.Window, rend *rendgl.RendGL, imguiInfo *nframeimgui.ImguiInfo, screenshotDir string) (*Demo, error) {

	fbWidth, fbHeight := win.SDLWin.GLGetDrawableSize()

	picker, err := picking.NewPickerFromSpec(win.Ctx, cfg.Scene.Spec(fbWidth, fbHeight))
	if err != nil {
		return nil, err
	}
	picker.ClearColor = cfg.Scene.ClearColor

	d := &Demo{
		Cfg:               cfg,
		Win:               win,
		Rend:              rend,
		ImGUIInfo:         imguiInfo,
		Picker:            picker,
		ScreenshotDir:     screenshotDir,
		fbWidth:           fbWidth,
		fbHeight:          fbHeight,
		selectedId:        picking.NoObject,
		highlightSelected: true,
		animate:           true,
	}

	if err := d.loadSceneMaterial(); err != nil {
		picker.Delete()
		return nil, err
	}

	vbo := buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeVec2},
		buffers.Element{ElementType: buffers.DataTypeVec2},
	)
	vbo.SetData(quadVerts, buffers.BufUsage_Static_Draw)

	d.QuadVao = buffers.NewVertexArray()
	d.QuadVao.AddVertexBuffer(vbo)
	d.QuadVao.UnBind()

	d.Quads = []sceneQuad{
		{Id: 0, Pos: *gglm.NewVec2(-0.5, 0.4), Size: *gglm.NewVec2(0.6, 0.6), Color: *gglm.NewVec4(0.9, 0.3, 0.3, 1)},
		{Id: 1, Pos: *gglm.NewVec2(0.45, 0.35), Size: *gglm.NewVec2(0.5, 0.8), Color: *gglm.NewVec4(0.3, 0.8, 0.4, 1)},
		{Id: 2, Pos: *gglm.NewVec2(0, -0.45), Size: *gglm.NewVec2(1.2, 0.4), Color: *gglm.NewVec4(0.3, 0.5, 0.9, 1)},
	}

	return d, nil
}

// loadSceneMaterial uses scene.glsl from the shader dir when present so it can be hot reloaded,
// and the built in source otherwise
func (d *Demo) loadSceneMaterial() error {

	shaderPath := filepath.Join(d.Cfg.Shaders.Dir, "scene.glsl")
	_, err := os.Stat(shaderPath)
	if errors.Is(err, fs.ErrNotExist) {

		logging.InfoLog.Infof("no '%s', using the built in scene shader", shaderPath)
		d.SceneMat, err = materials.NewMaterialSrc("scene", sceneShaderSrc)
		return err
	}

	d.SceneMat, err = materials.NewMaterial("scene", shaderPath)
	if err != nil {
		return err
	}

	if !d.Cfg.Shaders.HotReload {
		return nil
	}

	d.Watcher, err = shaders.NewWatcher()
	if err != nil {
		return err
	}

	return d.Watcher.Watch(&d.SceneMat.ShaderProg)
}

func (d *Demo) Init() {

	d.Win.ResizeCallbacks = append(d.Win.ResizeCallbacks, d.handleResize)
	d.Win.DropCallbacks = append(d.Win.DropCallbacks, d.showDroppedName)
	d.Win.EventCallbacks = append(d.Win.EventCallbacks, d.handleWindowEvents)
}

func (d *Demo) handleWindowEvents(e sdl.Event) {

	we, ok := e.(*sdl.WindowEvent)
	if !ok {
		return
	}

	if we.Event == sdl.WINDOWEVENT_MINIMIZED {
		logging.InfoLog.Debug("window minimized")
	}
}

func (d *Demo) handleResize(width, height int32) {

	d.fbWidth = width
	d.fbHeight = height

	if width == d.Picker.Fbo.Width() && height == d.Picker.Fbo.Height() {
		return
	}

	d.Picker.Resize(width, height)
}

func (d *Demo) showDroppedName(path string) {
	d.Win.SetTitle(d.Cfg.Window.Title + " - " + filepath.Base(path))
}

// loadDropped puts a dropped image on the selected quad, or on every quad when nothing is selected
func (d *Demo) loadDropped(path string) {

	tex, err := textures.LoadTexture(d.Win.Ctx, path, &textures.TextureLoadOptions{})
	if err != nil {
		logging.ErrLog.Error("failed to load dropped file", "path", path, "err", err)
		return
	}

	for i := 0; i < len(d.Quads); i++ {

		q := &d.Quads[i]
		if d.selectedId != picking.NoObject && q.Id != d.selectedId {
			continue
		}

		d.setQuadTexture(q, tex)
	}

	// Not used by anything
	if !d.isTextureUsed(tex) {
		tex.Delete()
	}
}

func (d *Demo) setQuadTexture(q *sceneQuad, tex *textures.Texture) {

	old := q.Tex
	q.Tex = tex

	if old != nil && !d.isTextureUsed(old) {
		old.Delete()
	}
}

func (d *Demo) isTextureUsed(tex *textures.Texture) bool {

	for i := 0; i < len(d.Quads); i++ {
		if d.Quads[i].Tex == tex {
			return true
		}
	}

	return false
}

func (d *Demo) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	if d.Watcher != nil {
		d.Watcher.Poll()
	}

	if input.KeyClicked(sdl.K_F11) {
		isFullscreen := d.Win.SDLWin.GetFlags()&sdl.WINDOW_FULLSCREEN_DESKTOP != 0
		if err := d.Win.SetFullscreen(!isFullscreen); err != nil {
			logging.WarnLog.Warn("failed to toggle fullscreen", "err", err)
		}
	}

	if input.KeyClicked(sdl.K_F12) {
		d.screenshotRequested = true
	}

	if x, y, ok := input.MouseClickPos(sdl.BUTTON_LEFT); ok {
		d.pick(x, y)
	}

	for _, path := range input.DroppedFiles() {
		d.loadDropped(path)
	}

	if d.animate {
		t := float32(timing.ElapsedTime().Seconds())
		d.Quads[1].Pos.Data[1] = 0.35 + 0.1*float32(math.Sin(float64(t)))
	}

	d.showDebugWindow()
}

// pick selects the quad under window position (x, y)
func (d *Demo) pick(x, y int32) {

	winWidth, winHeight := d.Win.SDLWin.GetSize()
	fbX, fbY := windowToFramebuffer(x, y, winWidth, winHeight, d.fbWidth, d.fbHeight)

	d.selectedId = d.Picker.PickAt(fbX, fbY)
	logging.InfoLog.Debug("picked", "x", fbX, "y", fbY, "id", d.selectedId)
}

// windowToFramebuffer converts window coordinates to framebuffer pixels, which differ on high dpi displays
func windowToFramebuffer(x, y, winWidth, winHeight, fbWidth, fbHeight int32) (int32, int32) {

	if winWidth <= 0 || winHeight <= 0 {
		return x, y
	}

	return x * fbWidth / winWidth, y * fbHeight / winHeight
}

func (d *Demo) showDebugWindow() {

	imgui.Begin("nframe")

	imgui.Text(fmt.Sprintf("FPS: %.1f", timing.GetAvgFPS()))
	imgui.Text(fmt.Sprintf("Framebuffer '%s' (id=%d) %dx%d", d.Picker.Fbo.Name, d.Picker.Fbo.Id, d.Picker.Fbo.Width(), d.Picker.Fbo.Height()))

	for i := 0; i < d.Picker.Fbo.ColorAttachmentCount(); i++ {
		a, _ := d.Picker.Fbo.GetColorAttachmentInfo(i)
		imgui.LabelText(fmt.Sprintf("Color %d", i), fmt.Sprintf("%s tex=%d", a.Format, a.Id))
	}

	if d.Picker.Fbo.HasDepthAttachment() {
		imgui.LabelText("Depth", fmt.Sprintf("tex=%d", d.Picker.Fbo.GetDepthAttachment()))
	}

	imgui.Spacing()

	if d.selectedId == picking.NoObject {
		imgui.Text("Selected: none")
	} else {
		imgui.Text(fmt.Sprintf("Selected: %d", d.selectedId))
	}

	imgui.Checkbox("Highlight selected", &d.highlightSelected)
	imgui.Checkbox("Animate", &d.animate)

	if d.lastScreenshot != "" {
		imgui.Text("Screenshot: " + d.lastScreenshot)
	}

	imgui.End()
}

func (d *Demo) Render() {

	d.Picker.Begin()

	selectedId := picking.NoObject
	if d.highlightSelected {
		selectedId = d.selectedId
	}
	d.SceneMat.SetUnifInt32("selectedId", selectedId)
	d.SceneMat.SetUnifInt32("diffTex", int32(materials.TextureSlot_Diffuse))

	for i := 0; i < len(d.Quads); i++ {

		q := &d.Quads[i]

		d.SceneMat.SetUnifVec2("pos", &q.Pos)
		d.SceneMat.SetUnifVec2("size", &q.Size)
		d.SceneMat.SetUnifVec4("color", &q.Color)
		d.SceneMat.SetUnifInt32("objectId", q.Id)

		if q.Tex != nil {
			q.Tex.Active(uint32(materials.TextureSlot_Diffuse))
			d.SceneMat.SetUnifInt32("hasDiffTex", 1)
		} else {
			d.SceneMat.SetUnifInt32("hasDiffTex", 0)
		}

		d.Rend.DrawVertexArray(d.SceneMat, &d.QuadVao, 0, int32(len(quadVerts)/4))
	}

	if d.screenshotRequested {
		d.screenshotRequested = false
		d.saveScreenshot()
	}

	d.Picker.End(d.fbWidth, d.fbHeight)

	d.Win.Ctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	d.Rend.DrawScreenQuad(d.Picker.ColorAttachment(), gglm.NewVec2(1, 1), gglm.NewVec2(0, 0))
}

// saveScreenshot writes color slot 0 of the scene to a png
func (d *Demo) saveScreenshot() {

	info, ok := d.Picker.Fbo.GetColorAttachmentInfo(0)
	if !ok {
		return
	}

	w, h := d.Picker.Fbo.Width(), d.Picker.Fbo.Height()
	channels := info.Format.ChannelCount()

	pixels := make([]uint8, int(w)*int(h)*channels)
	d.Picker.Fbo.ReadPixelsUint8(0, 0, 0, w, h, pixels)

	if channels == 3 {
		pixels = rgbToRgba(pixels)
	}

	path := filepath.Join(d.ScreenshotDir, "nframe-"+time.Now().Format("20060102-150405")+".png")
	if err := textures.WritePNG(path, int(w), int(h), pixels, true); err != nil {
		logging.ErrLog.Error("failed to save screenshot", "err", err)
		return
	}

	d.lastScreenshot = path
	logging.InfoLog.Info("saved screenshot", "path", path)
}

func rgbToRgba(rgb []uint8) []uint8 {

	rgba := make([]uint8, len(rgb)/3*4)
	for i, j := 0, 0; i+2 < len(rgb); i, j = i+3, j+4 {
		rgba[j] = rgb[i]
		rgba[j+1] = rgb[i+1]
		rgba[j+2] = rgb[i+2]
		rgba[j+3] = 255
	}

	return rgba
}

func (d *Demo) FrameEnd() {
}

func (d *Demo) DeInit() {

	if d.Watcher != nil {
		d.Watcher.Close()
	}

	for i := 0; i < len(d.Quads); i++ {
		if d.Quads[i].Tex != nil {
			d.Quads[i].Tex.Delete()
		}
	}

	d.QuadVao.Delete()
	d.SceneMat.Delete()
	d.Picker.Delete()
	d.ImGUIInfo.Delete()
	d.Rend.Delete()
}
