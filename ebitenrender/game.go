package ebitenrender

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/yohamta/donburi"

	ss "github.com/bjorn2code64/shapeshifter"
	"github.com/bjorn2code64/shapeshifter/ecs"
)

// RunConfig holds the parameters for Run.
type RunConfig struct {
	Title string
	// Window size in device-independent pixels. Zero means three quarters of
	// the scene's logical size.
	Width, Height int
	ShowFPS       bool
	// ScreenshotDir is where Scene.Screenshot writes PNGs. Defaults to
	// "screenshots".
	ScreenshotDir string
	// World receives simulation notifications. A Quit notification ends the
	// run. May be nil.
	World donburi.World
	// Runner, when set, ends the run once its script completes.
	Runner *ss.TestRunner
	// Backend overrides the default backend.
	Backend *Backend
}

// Game adapts a Scene to the ebiten.Game interface. Each Update polls input,
// builds a Frame stamped with the milliseconds since the game started, and
// steps the scene. Time spent paused is excluded from the tick.
type Game struct {
	scene   *ss.Scene
	backend *Backend
	cfg     RunConfig

	start     time.Time
	pausedAt  time.Time
	pausedFor time.Duration
	paused    bool

	input      inputState
	events     ss.EventQueue
	quit       bool
	scriptDone bool

	target *ebiten.Image
	fps    *fpsOverlay
}

// NewGame wires scene to a backend and returns the ebiten.Game driving it.
func NewGame(scene *ss.Scene, cfg RunConfig) *Game {
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	b := cfg.Backend
	if b == nil {
		b = NewBackend()
	}
	g := &Game{
		scene:   scene,
		backend: b,
		cfg:     cfg,
		start:   time.Now(),
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	if cfg.World != nil {
		ecs.OnNotification(cfg.World, ss.NotifyQuit, func() { g.quit = true })
	}
	if cfg.Runner != nil {
		scene.SetTestRunner(cfg.Runner)
	}
	scene.SetBackend(b)
	scene.SetScreenshotFunc(g.saveScreenshot)
	return g
}

// Tick returns the simulation clock in milliseconds.
func (g *Game) Tick() uint64 {
	now := time.Now()
	paused := g.pausedFor
	if g.paused {
		paused += now.Sub(g.pausedAt)
	}
	return uint64((now.Sub(g.start) - paused).Milliseconds())
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.quit || g.scriptDone {
		return ebiten.Termination
	}

	in, ptr := g.input.poll(&g.events)
	if in.IsPressed(ss.KeyPause) {
		g.togglePause()
	}
	if g.paused {
		g.events.Clear()
		return nil
	}

	f := &ss.Frame{Tick: g.Tick(), Pointer: ptr, Input: in, Events: &g.events}
	ok, err := g.scene.Step(f)
	g.events.Clear()
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}
	if g.cfg.World != nil {
		ecs.NotificationEventType.ProcessEvents(g.cfg.World)
	}
	if !ok || g.quit {
		return ebiten.Termination
	}
	// Stop one frame late so the final screenshot is drawn.
	if g.cfg.Runner != nil && g.cfg.Runner.Done() {
		g.scriptDone = true
	}
	return nil
}

func (g *Game) togglePause() {
	now := time.Now()
	if g.paused {
		g.pausedFor += now.Sub(g.pausedAt)
	} else {
		g.pausedAt = now
	}
	g.paused = !g.paused
}

// Paused reports whether the simulation clock is stopped.
func (g *Game) Paused() bool {
	return g.paused
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.backend.SetTarget(screen)
	g.scene.Render(g.backend)
	g.backend.SetTarget(nil)

	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", 4, screen.Bounds().Dy()-16)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}

	g.target = screen
	g.scene.FlushScreenshots()
	g.target = nil
}

// Layout implements ebiten.Game. The scene always renders at its logical
// resolution; Ebitengine scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	sz := g.scene.ScreenSize()
	return sz.Width, sz.Height
}

func (g *Game) saveScreenshot(label string) {
	if g.target == nil {
		return
	}
	path, err := ss.SaveScreenshot(g.cfg.ScreenshotDir, label, Capture(g.target), time.Now())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[shapeshifter] %v\n", err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[shapeshifter] screenshot %s\n", path)
}

// Run opens a window and drives scene until the window closes, a Quit
// notification arrives, the update function halts or the script finishes.
func Run(scene *ss.Scene, cfg RunConfig) error {
	g := NewGame(scene, cfg)
	defer g.backend.Close()

	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		sz := scene.ScreenSize()
		w, h = sz.Width*3/4, sz.Height*3/4
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// fpsOverlay shows the current FPS and TPS in the top-right corner,
// refreshed about twice a second.
type fpsOverlay struct {
	img  *ebiten.Image
	last time.Time
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 fits "FPS: 60.0\nTPS: 60.0".
	return &fpsOverlay{img: ebiten.NewImage(100, 32)}
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if now := time.Now(); now.Sub(o.last) >= 500*time.Millisecond {
		o.last = now
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx()-o.img.Bounds().Dx()), 0)
	screen.DrawImage(o.img, op)
}
