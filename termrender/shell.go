package termrender

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/yohamta/donburi"

	ss "github.com/bjorn2code64/shapeshifter"
	"github.com/bjorn2code64/shapeshifter/ecs"
)

// Terminals report key presses and autorepeats but never releases, so a key
// counts as held until this long after its last press.
const defaultHoldWindow = 180 * time.Millisecond

// RunConfig holds the parameters for Run.
type RunConfig struct {
	// Screen to draw on. Nil opens the controlling terminal.
	Screen tcell.Screen
	// FrameInterval defaults to 16ms.
	FrameInterval time.Duration
	// HoldWindow defaults to 180ms.
	HoldWindow time.Duration
	// World receives simulation notifications; a Quit notification ends the run.
	World donburi.World
	// Runner, when set, ends the run once its script completes.
	Runner *ss.TestRunner
	// ScreenshotDir defaults to "screenshots".
	ScreenshotDir string
}

// Shell drives a Scene from a tcell screen: it turns terminal key events into
// engine input, steps the scene on a fixed interval and renders the result.
type Shell struct {
	scene   *ss.Scene
	screen  tcell.Screen
	backend *Backend
	cfg     RunConfig

	start     time.Time
	pausedAt  time.Time
	pausedFor time.Duration
	paused    bool

	held   heldKeys
	prev   ss.KeySet
	events ss.EventQueue
	quit   bool
}

// NewShell wires scene to a backend on screen. The screen must already be
// initialised.
func NewShell(scene *ss.Scene, screen tcell.Screen, cfg RunConfig) *Shell {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 16 * time.Millisecond
	}
	if cfg.HoldWindow <= 0 {
		cfg.HoldWindow = defaultHoldWindow
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	sh := &Shell{
		scene:   scene,
		screen:  screen,
		backend: NewBackend(screen, scene.ScreenSize()),
		cfg:     cfg,
		start:   time.Now(),
		held:    heldKeys{window: cfg.HoldWindow},
	}
	if cfg.World != nil {
		ecs.OnNotification(cfg.World, ss.NotifyQuit, func() { sh.quit = true })
	}
	if cfg.Runner != nil {
		scene.SetTestRunner(cfg.Runner)
	}
	scene.SetBackend(sh.backend)
	scene.SetScreenshotFunc(sh.saveScreenshot)
	return sh
}

// Backend returns the shell's terminal backend.
func (sh *Shell) Backend() *Backend {
	return sh.backend
}

// HandleEvent feeds one tcell event to the shell. It returns false when the
// user asked to leave with Ctrl-C.
func (sh *Shell) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		k, ok := MapKey(ev)
		if !ok {
			return true
		}
		// Repeats of a held key extend the hold without a new key-down event.
		if !sh.held.down(now).Has(k) {
			sh.events.Push(ss.Event{Type: ss.EventKeyDown, Key: k})
		}
		sh.held.press(k, now)
	case *tcell.EventResize:
		sh.backend.Resize()
		sh.screen.Sync()
	}
	return true
}

// Frame steps and renders one frame at now. It returns false once the run
// should end.
func (sh *Shell) Frame(now time.Time) (bool, error) {
	down := sh.held.down(now)
	in := ss.NextInput(sh.prev, down)
	sh.prev = down
	if in.IsPressed(ss.KeyPause) {
		sh.togglePause(now)
	}
	if sh.paused {
		sh.events.Clear()
		return !sh.quit, nil
	}

	f := &ss.Frame{Tick: sh.Tick(now), Input: in, Events: &sh.events}

	ok, err := sh.scene.Step(f)
	sh.events.Clear()
	if err != nil {
		return false, fmt.Errorf("step: %w", err)
	}
	if sh.cfg.World != nil {
		ecs.NotificationEventType.ProcessEvents(sh.cfg.World)
	}

	sh.backend.Clear()
	sh.scene.Render(sh.backend)
	sh.scene.FlushScreenshots()
	sh.screen.Show()

	if !ok || sh.quit {
		return false, nil
	}
	if sh.cfg.Runner != nil && sh.cfg.Runner.Done() {
		return false, nil
	}
	return true, nil
}

// Tick returns the simulation clock at now in milliseconds, excluding time
// spent paused.
func (sh *Shell) Tick(now time.Time) uint64 {
	paused := sh.pausedFor
	if sh.paused {
		paused += now.Sub(sh.pausedAt)
	}
	return uint64((now.Sub(sh.start) - paused).Milliseconds())
}

// Paused reports whether the simulation clock is stopped.
func (sh *Shell) Paused() bool {
	return sh.paused
}

func (sh *Shell) togglePause(now time.Time) {
	if sh.paused {
		sh.pausedFor += now.Sub(sh.pausedAt)
	} else {
		sh.pausedAt = now
	}
	sh.paused = !sh.paused
}

// Loop polls the screen for events and runs frames until the run ends.
func (sh *Shell) Loop() error {
	ticker := time.NewTicker(sh.cfg.FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := sh.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !sh.HandleEvent(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			more, err := sh.Frame(now)
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
	}
}

// Run opens the terminal (unless cfg.Screen is set), drives scene until it
// ends and restores the terminal.
func Run(scene *ss.Scene, cfg RunConfig) error {
	screen := cfg.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init terminal: %w", err)
		}
		defer screen.Fini()
	}
	screen.HideCursor()
	return NewShell(scene, screen, cfg).Loop()
}

// saveScreenshot writes the cell grid as a PNG with one pixel per cell.
func (sh *Shell) saveScreenshot(label string) {
	path, err := ss.SaveScreenshot(sh.cfg.ScreenshotDir, label, sh.Snapshot(), time.Now())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[shapeshifter] %v\n", err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[shapeshifter] screenshot %s\n", path)
}

// Snapshot renders the current cell grid to an image, one pixel per cell,
// colored with the cell's foreground where a glyph is drawn.
func (sh *Shell) Snapshot() *image.NRGBA {
	w, h := sh.screen.Size()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mainc, _, style, _ := sh.screen.GetContent(x, y)
			if mainc == ' ' || mainc == 0 {
				img.SetNRGBA(x, y, color.NRGBA{A: 255})
				continue
			}
			fg, _, _ := style.Decompose()
			r, g, b := fg.RGB()
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return img
}
