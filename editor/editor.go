// Package editor ties the pieces together: it owns the GPU device, the
// icosphere buffers and pipelines, the camera, and the pick state, and
// implements the engine's Runner so input, updates and rendering drive it.
package editor

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pepijnd/planetary/config"
	"github.com/pepijnd/planetary/engine"
	"github.com/pepijnd/planetary/engine/camera"
	"github.com/pepijnd/planetary/engine/graphics"
	"github.com/pepijnd/planetary/engine/resources"
	"github.com/pepijnd/planetary/engine/window"
	"github.com/pepijnd/planetary/logger"
	"github.com/pepijnd/planetary/ui"
)

// GLFW key codes for the editor bindings.
const (
	keyQ = 81 // roll left
	keyE = 69 // roll right
	keyZ = 90 // decrease subdivision depth
	keyX = 88 // increase subdivision depth
	keyM = 77 // cycle MSAA sample count
	keyP = 80 // toggle perspective/orthographic
	keyO = 79 // less directional lighting
	keyL = 76 // more directional lighting
)

// maxDepth bounds the subdivision depth reachable from the keyboard; deeper
// meshes stall the rebuild noticeably.
const maxDepth = 6

// sampleCycle is the MSAA progression the M key steps through.
var sampleCycle = []uint32{1, 2, 4, 8}

// lightDir is the fixed directional light, pointing down-left past the
// camera's home position.
var lightDir = mgl32.Vec3{-0.4, -0.8, -0.4}.Normalize()

const (
	rotateSpeed = 0.005
	rollStep    = 0.1
)

// Editor is the application driven by the engine loops. All entry points
// lock the editor; events and updates arrive on engine goroutines while
// Render runs on the main thread.
type Editor struct {
	mu sync.Mutex

	cfg *config.Config
	win window.Window

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	state    *graphics.State

	cam     camera.Camera
	uiState *ui.State
	overlay ui.Overlay
	clock   *engine.Clock
	reg     *resources.Registry

	icoBuf  *IcoBuffer
	uniform *graphics.UniformBinding[IcoUniform]
	atlas   *graphics.TextureBinding

	screen *graphics.Renderer[*IcoPipeline]
	sel    *graphics.Renderer[*IcoPipeline]
	picker *Picker

	depthTex    *graphics.Texture
	msaaTex     *graphics.Texture
	selectTex   *graphics.Texture
	selectDepth *graphics.Texture

	samples      uint32
	perspective  float32
	lightMix     float32
	selected     uint32
	siblings     [3]uint32
	targetsDirty bool

	pendingResize *[2]int

	// drag state for the orbit/pan camera gestures
	dragging bool
	panning  bool
	lastX    int32
	lastY    int32
}

var _ engine.Runner = &Editor{}

// New creates the editor on the given window: GPU device, surface, render
// targets, mesh buffers, pipelines and camera, all sized from the config.
//
// Parameters:
//   - cfg: the validated editor configuration
//   - win: the window to render into
//   - overlay: the UI layer; pass ui.Nop{} for none
//
// Returns:
//   - *Editor: the ready editor
//   - error: an error if any GPU setup step fails
func New(cfg *config.Config, win window.Window, overlay ui.Overlay) (*Editor, error) {
	e := &Editor{
		cfg:         cfg,
		win:         win,
		overlay:     overlay,
		clock:       engine.NewClock(),
		samples:     uint32(cfg.Graphics.Samples),
		perspective: boolToBlend(cfg.Editor.Perspective),
		lightMix:    cfg.Editor.LightMix,
	}

	if err := e.initGPU(); err != nil {
		return nil, err
	}

	width, heightPx := uint32(win.Width()), uint32(win.Height())
	e.cam = camera.New(float32(width)/float32(heightPx), cfg.Editor.Zoom, e.perspective)
	e.uiState = ui.NewState(e.samples, cfg.Editor.Depth, cfg.Editor.Zoom, e.perspective, e.lightMix)

	var err error
	e.uniform, err = graphics.NewUniformBinding[IcoUniform](e.state, "ico uniform",
		wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	if err != nil {
		return nil, err
	}

	e.reg = resources.NewRegistry()
	if err := e.reg.CompileShader(e.state, shaderIco, icoShaderSource); err != nil {
		return nil, err
	}
	if err := e.reg.CompileShader(e.state, shaderSelect, selectShaderSource); err != nil {
		return nil, err
	}

	atlas := resources.Load(cfg.Assets.AtlasPaths)
	atlasTex, err := graphics.NewArray(e.state, "face atlas", atlas.Width, atlas.Height, atlas.Layers)
	if err != nil {
		return nil, err
	}
	e.reg.AddTexture(textureAtlas, atlasTex)
	e.atlas, err = graphics.NewTextureArrayBinding(e.state, "face atlas", atlasTex)
	if err != nil {
		return nil, err
	}
	if cfg.Assets.StitchPath != "" {
		if err := resources.SaveStitched(atlas, cfg.Assets.StitchPath); err != nil {
			logger.Sugar.Warnw("failed to write stitched atlas", "error", err)
		}
	}

	e.icoBuf, err = NewIcoBuffer(e.state, cfg.Editor.Depth)
	if err != nil {
		return nil, err
	}

	e.screen = graphics.NewRenderer(NewScreenPipeline(e.state, e.reg, e.icoBuf, e.uniform, e.atlas))
	e.sel = graphics.NewRenderer(NewSelectPipeline(e.reg, e.icoBuf, e.uniform))

	if err := e.createTargets(); err != nil {
		return nil, err
	}
	e.picker, err = NewPicker(e.state)
	if err != nil {
		return nil, err
	}

	return e, nil
}

func boolToBlend(perspective bool) float32 {
	if perspective {
		return 1
	}
	return 0
}

// initGPU requests the device through the window's surface and configures
// the swapchain at the window size.
func (e *Editor) initGPU() error {
	e.instance = wgpu.CreateInstance(nil)
	e.surface = e.instance.CreateSurface(e.win.SurfaceDescriptor())

	adapter, err := e.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: e.surface,
	})
	if err != nil {
		return fmt.Errorf("failed to request adapter: %w", err)
	}
	e.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "planetary device",
	})
	if err != nil {
		return fmt.Errorf("failed to request device: %w", err)
	}

	e.state = &graphics.State{
		Device: device,
		Queue:  device.GetQueue(),
	}
	e.configureSurface(e.win.Width(), e.win.Height())
	return nil
}

// configureSurface (re)configures the swapchain and updates the state's
// surface size and format.
func (e *Editor) configureSurface(width, height int) {
	caps := e.surface.GetCapabilities(e.adapter)
	e.state.Format = caps.Formats[0]

	presentMode := wgpu.PresentModeImmediate
	if e.cfg.Graphics.VSync {
		presentMode = wgpu.PresentModeFifo
	}

	e.surface.Configure(e.adapter, e.state.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      e.state.Format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],
	})
	e.state.Width = uint32(width)
	e.state.Height = uint32(height)
}

// createTargets (re)creates the size- and sample-dependent render targets.
func (e *Editor) createTargets() error {
	for _, t := range []*graphics.Texture{e.depthTex, e.msaaTex, e.selectTex, e.selectDepth} {
		if t != nil {
			t.Release()
		}
	}

	var err error
	e.depthTex, err = graphics.NewDepth(e.state, "main depth", e.samples)
	if err != nil {
		return err
	}

	e.msaaTex = nil
	if e.samples > 1 {
		e.msaaTex, err = graphics.NewMSAA(e.state, "msaa color", e.samples)
		if err != nil {
			return err
		}
	}

	e.selectTex, err = graphics.NewSelect(e.state, "select target")
	if err != nil {
		return err
	}
	e.selectDepth, err = graphics.NewDepth(e.state, "select depth", 1)
	if err != nil {
		return err
	}

	e.targetsDirty = false
	return nil
}

// HandleEvent processes one queued input event on the dispatch goroutine.
func (e *Editor) HandleEvent(ev engine.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev := ev.(type) {
	case engine.ResizeEvent:
		if ev.Width > 0 && ev.Height > 0 {
			e.pendingResize = &[2]int{ev.Width, ev.Height}
		}

	case engine.MouseButtonEvent:
		e.handleMouseButton(ev)

	case engine.MouseMoveEvent:
		e.handleMouseMove(ev)

	case engine.ScrollEvent:
		if e.overlay.HasMouse() {
			return
		}
		e.cam.Zoom(ev.Delta)
		e.uiState.Zoom.Set(e.cam.ZoomLevel())

	case engine.KeyEvent:
		e.overlay.HandleKey(ev.Key, ev.Pressed)
		if ev.Pressed && !e.overlay.HasKeyboard() {
			e.handleKey(ev.Key)
		}
	}
}

func (e *Editor) handleMouseButton(ev engine.MouseButtonEvent) {
	if ev.Button != window.ButtonLeft && ev.Button != window.ButtonMiddle {
		return
	}

	if ev.Pressed {
		if e.overlay.HasMouse() {
			return
		}
		e.dragging = true
		// Middle drag always pans; left drag pans with Ctrl held.
		e.panning = ev.Button == window.ButtonMiddle || ev.Mods&window.ModCtrl != 0
		e.lastX, e.lastY = ev.X, ev.Y
		return
	}

	e.dragging = false
}

func (e *Editor) handleMouseMove(ev engine.MouseMoveEvent) {
	e.overlay.HandleCursor(ev.X, ev.Y)
	if ev.X >= 0 && ev.Y >= 0 && !e.overlay.HasMouse() {
		e.picker.Track(uint32(ev.X), uint32(ev.Y))
	}

	if !e.dragging {
		return
	}
	dx := ev.X - e.lastX
	dy := ev.Y - e.lastY
	e.lastX, e.lastY = ev.X, ev.Y

	if e.panning {
		w := max(e.win.Width(), 1)
		h := max(e.win.Height(), 1)
		e.cam.Pan(float32(dx)/float32(w), float32(dy)/float32(h))
		return
	}
	e.cam.Rotate(-float32(dx)*rotateSpeed, -float32(dy)*rotateSpeed)
}

func (e *Editor) handleKey(key uint32) {
	switch key {
	case keyQ:
		e.cam.Roll(rollStep)
	case keyE:
		e.cam.Roll(-rollStep)
	case keyZ:
		e.uiState.Depth.Set(max(e.uiState.Depth.Get()-1, 0))
	case keyX:
		e.uiState.Depth.Set(min(e.uiState.Depth.Get()+1, maxDepth))
	case keyM:
		e.uiState.Samples.Set(nextSample(e.uiState.Samples.Get()))
	case keyP:
		if e.uiState.Perspective.Get() > 0.5 {
			e.uiState.Perspective.Set(0)
		} else {
			e.uiState.Perspective.Set(1)
		}
	case keyO:
		e.uiState.LightMix.Set(max(e.uiState.LightMix.Get()-0.1, 0))
	case keyL:
		e.uiState.LightMix.Set(min(e.uiState.LightMix.Get()+0.1, 1))
	}
}

func nextSample(current uint32) uint32 {
	for i, s := range sampleCycle {
		if s == current {
			return sampleCycle[(i+1)%len(sampleCycle)]
		}
	}
	return sampleCycle[0]
}

// Update advances editor state once per tick: it applies UI changes to the
// GPU resources they invalidate and uploads the frame uniform.
func (e *Editor) Update(dt float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.overlay.Update(e.uiState)

	e.uiState.Samples.OnChange(func(s uint32) {
		e.samples = s
		e.targetsDirty = true
		// Only the screen pipeline targets the multisampled attachment.
		e.screen.Invalidate(graphics.InvalidPipeline)
		logger.Sugar.Infow("sample count changed", "samples", s)
	})
	e.uiState.Depth.OnChange(func(d int) {
		if err := e.icoBuf.SetDepth(e.state, d); err != nil {
			logger.Sugar.Errorw("failed to rebuild mesh", "depth", d, "error", err)
			return
		}
		// The face index space restarts on rebuild; the old selection is
		// meaningless.
		e.selected = 0
		e.siblings = [3]uint32{}
	})
	e.uiState.Zoom.OnChange(func(z float32) {
		e.cam.SetZoom(z)
	})
	e.uiState.Perspective.OnChange(func(p float32) {
		e.perspective = p
		e.cam.SetPerspective(p)
	})
	e.uiState.LightMix.OnChange(func(m float32) {
		e.lightMix = m
	})

	u := IcoUniform{
		ViewProj: [16]float32(e.cam.ViewProjection()),
		ViewPos:  [3]float32(e.cam.Position()),
		Selected: e.selected,
		LightDir: [3]float32(lightDir),
		S1:       e.perspective,
		Siblings: e.siblings,
		S2:       e.lightMix,
		S3:       1.0,
	}
	e.uniform.Write(e.state, &u)

	e.uiState.Selected = e.selected
	e.uiState.FPS = e.clock.FPS()
}

// Render draws one frame on the main thread: main pass, selection pass, and
// the hover pick copy. The previous frame's copy is resolved first, giving
// the selection highlight one frame of latency behind the cursor.
func (e *Editor) Render() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pendingResize != nil {
		size := *e.pendingResize
		e.pendingResize = nil
		e.resize(size[0], size[1])
	}
	if e.targetsDirty {
		if err := e.createTargets(); err != nil {
			return err
		}
	}

	// The readback must be unmapped before this frame's copy targets it.
	if index, ok, err := e.picker.Resolve(e.state); err != nil {
		logger.Sugar.Warnw("pick resolution failed", "error", err)
	} else if ok {
		e.applyPick(index)
	}

	if err := e.screen.Update(e.state, e.samples); err != nil {
		return err
	}
	if err := e.sel.Update(e.state, 1); err != nil {
		return err
	}

	surfaceTex, err := e.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTex.CreateView(nil)
	if err != nil {
		surfaceTex.Release()
		return err
	}
	defer func() {
		view.Release()
		surfaceTex.Release()
	}()

	encoder, err := e.state.Device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}

	var msaaView *wgpu.TextureView
	if e.msaaTex != nil {
		msaaView = e.msaaTex.View()
	}
	pass := graphics.BeginMainPass(encoder, view, msaaView, e.depthTex.View(), e.samples)
	pass.ExecuteBundles(e.screen.Pipeline().Bundle())
	pass.End()

	selPass := graphics.BeginSelectPass(encoder, e.selectTex.View(), e.selectDepth.View())
	selPass.ExecuteBundles(e.sel.Pipeline().Bundle())
	selPass.End()

	e.picker.Copy(encoder, e.selectTex)

	cmd, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		return err
	}
	e.state.Queue.Submit(cmd)
	cmd.Release()
	encoder.Release()

	e.surface.Present()

	e.clock.Tick()
	return nil
}

// applyPick records the face under the cursor and resolves its adjacency for
// the highlight uniforms. Index 0 or a stale index clears the selection.
func (e *Editor) applyPick(index uint32) {
	if index == e.selected {
		return
	}
	face := e.icoBuf.Mesh().Face(index)
	if face == nil {
		e.selected = 0
		e.siblings = [3]uint32{}
		return
	}
	e.selected = face.Index
	e.siblings = face.Siblings
	logger.Sugar.Debugw("face under cursor",
		"index", face.Index,
		"siblings", face.Siblings,
		"texture", face.TexIndex)
}

// Selected returns the currently selected face index, 0 for none.
func (e *Editor) Selected() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Resize reconfigures the surface and render targets for a new framebuffer
// size. The engine also calls this when the surface reports itself lost.
func (e *Editor) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resize(width, height)
}

func (e *Editor) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.configureSurface(width, height)
	if err := e.createTargets(); err != nil {
		logger.Sugar.Errorw("failed to recreate render targets", "error", err)
		e.targetsDirty = true
		return
	}
	if err := e.picker.Resize(e.state); err != nil {
		logger.Sugar.Errorw("failed to resize pick readback", "error", err)
	}
	e.cam.SetAspect(float32(width) / float32(height))
	logger.Sugar.Debugw("resized", "width", width, "height", height)
}

// Config returns the editor's configuration with the current adjustable
// values written back, for saving on exit.
func (e *Editor) Config() *config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := *e.cfg
	cfg.Graphics.Samples = int(e.samples)
	cfg.Editor.Depth = e.uiState.Depth.Get()
	cfg.Editor.Zoom = e.cam.ZoomLevel()
	cfg.Editor.Perspective = e.perspective > 0.5
	cfg.Editor.LightMix = e.lightMix
	return &cfg
}
