// Package inspector is an ImGui front end for the simulator: the body in a
// 3D view next to live controls for the selected part, the movement rate,
// the animation sequences and the carried object.
package inspector

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/config"
	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/sim"
	"github.com/Faultbox/cydsim/internal/viewer"
	"github.com/Faultbox/cydsim/internal/viewer/scene"
	"github.com/Faultbox/cydsim/pkg/math"
)

const (
	title      = "cydsim inspector"
	panelWidth = float32(380)
)

// App owns the ImGui window and the simulation it shows.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]

	cfg  *config.Config
	ctx  *sim.Context
	rate *sim.FrameRate

	renderer *viewer.Renderer
	fb       *viewer.Framebuffer
	cam      *scene.OrbitCamera
	lines    scene.Lines

	lastMouse imgui.Vec2
	picked    chan pick
	status    string
}

// New opens the window and prepares the 3D view. ctx must have been built
// from cfg.
func New(cfg *config.Config, ctx *sim.Context) (*App, error) {
	a := &App{
		cfg:    cfg,
		ctx:    ctx,
		rate:   sim.NewFrameRate(cfg.Sim.TargetFPS),
		cam:    scene.NewOrbitCamera(),
		picked: make(chan pick, 1),
	}

	var err error
	a.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}
	a.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	a.backend.CreateWindow(title, cfg.Viewer.Width, cfg.Viewer.Height)
	a.backend.SetTargetFPS(uint(cfg.Sim.TargetFPS))

	w, h := cfg.Viewer.Width-int(panelWidth), cfg.Viewer.Height
	a.renderer, err = viewer.NewRenderer(w, h)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	a.fb, err = viewer.NewFramebuffer(w, h)
	if err != nil {
		a.renderer.Close()
		return nil, fmt.Errorf("create framebuffer: %w", err)
	}

	logger.Info("inspector ready",
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
		zap.Duration("frame_target", a.rate.Target()),
	)
	return a, nil
}

// Run blocks until the window is closed.
func (a *App) Run() {
	a.backend.Run(a.render)
}

// Close releases GL resources.
func (a *App) Close() {
	if a.fb != nil {
		a.fb.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
}

func (a *App) render() {
	select {
	case p := <-a.picked:
		a.reload(p)
	default:
	}

	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyEscape)) {
		a.backend.SetShouldClose(true)
	}
	for _, cmd := range commands(imguiKeys{}) {
		a.ctx.Apply(cmd)
	}
	a.ctx.Frame(a.rate.SpeedFactor())
	a.rate.Update(time.Now())

	a.menu()

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, workSize.Y))
	if imgui.BeginV("Cyd", nil, flags) {
		a.panel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+panelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-panelWidth, workSize.Y))
	if imgui.BeginV("View", nil, flags|imgui.WindowFlagsNoScrollbar) {
		a.view()
	}
	imgui.End()
}

func (a *App) menu() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open body model...") {
			a.openDialog(bodyModel)
		}
		if imgui.MenuItemBool("Open animation library...") {
			a.openDialog(animLibrary)
		}
		imgui.Separator()
		if imgui.MenuItemBool("Save settings") {
			a.saveSettings()
		}
		imgui.Separator()
		if imgui.MenuItemBool("Exit") {
			a.backend.SetShouldClose(true)
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

// view draws the scene into the framebuffer and shows it as an image that
// takes orbit drags and zoom.
func (a *App) view() {
	avail := imgui.ContentRegionAvail()
	a.fb.Resize(int(avail.X), int(avail.Y))
	w, h := a.fb.Size()

	a.cam.Follow(a.ctx.Skeleton.RootMatrix().Translation())
	a.lines.Reset()
	a.lines.Grid(5, 0.5)
	a.lines.Body(a.ctx)
	a.lines.Objects(a.ctx)

	restore := a.fb.Bind()
	a.renderer.Resize(w, h)
	proj := math.Perspective(gomath.Pi/4, a.renderer.Aspect(), 0.05, 100)
	a.renderer.Begin()
	a.renderer.DrawLines(&a.lines, proj.Mul(a.cam.ViewMatrix()))
	restore()

	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(a.fb.Texture()))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(float32(w), float32(h)),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.1, 0.1, 0.15, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mouse := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			a.cam.HandleDrag(mouse.X-a.lastMouse.X, mouse.Y-a.lastMouse.Y)
		}
		a.lastMouse = mouse

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			a.cam.HandleZoom(wheel)
		}
	}
}
