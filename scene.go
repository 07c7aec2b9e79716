package shapeshifter

import (
	"fmt"
	"time"
)

// UpdateFunc replaces the scene's default movement pass. It returns false
// only to request that the whole simulation halt.
type UpdateFunc func(f *Frame) bool

// pendingShape is a shape waiting for the next frame boundary.
type pendingShape struct {
	shape  *Shape
	active bool
}

const defaultShapeCap = 256

// Scene owns the live shape list, the pending insertion queue, and the
// backend resources of every registered shape.
//
// Structural changes are two-phase: Enqueue only appends to the pending
// buffer, which PreRender flushes into the live list at a frame boundary.
// Code iterating the live list during Update may therefore create shapes
// freely. RemoveShape is immediate.
type Scene struct {
	shapes  []*Shape
	pending []pendingShape
	backend Backend
	screen  Size
	debug   bool

	updateFn UpdateFunc
	deinitFn func()
	halted   bool

	// Scripted input (inject.go, testrunner.go)
	injectQueue []syntheticKeyEvent
	injectHeld  KeySet
	testRunner  *TestRunner

	// Screenshots (screenshot.go)
	screenshotQueue []string
	screenshotFn    func(label string)

	drawBuf []*Shape
}

// NewScene creates a scene with the given fixed logical resolution.
func NewScene(screen Size) *Scene {
	return &Scene{
		screen:  screen,
		shapes:  make([]*Shape, 0, defaultShapeCap),
		drawBuf: make([]*Shape, 0, defaultShapeCap),
	}
}

// ScreenSize returns the logical resolution every backend maps to its output.
func (s *Scene) ScreenSize() Size {
	return s.screen
}

// SetBackend sets the resource capability used when shapes join or leave the
// live list. A nil backend skips resource management entirely.
func (s *Scene) SetBackend(b Backend) {
	s.backend = b
}

// Backend returns the current resource backend, or nil.
func (s *Scene) Backend() Backend {
	return s.backend
}

// SetUpdateFunc installs the per-frame simulation. Without one, Update moves
// every active shape by its cached step.
func (s *Scene) SetUpdateFunc(fn UpdateFunc) {
	s.updateFn = fn
}

// SetDeInitFunc installs a teardown hook run by DeInit before the live list
// is cleared.
func (s *Scene) SetDeInitFunc(fn func()) {
	s.deinitFn = fn
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-shape
// use panics and per-frame timing stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that shape
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// --- Registration ---

// Enqueue schedules a shape to join the live list at the next PreRender,
// with the given active flag. Until then it is neither moved nor drawn by
// the scene.
func (s *Scene) Enqueue(shape *Shape, active bool) {
	if shape == nil {
		panic("shapeshifter: cannot enqueue nil shape")
	}
	if s.debug {
		debugCheckDisposed(shape, "Enqueue")
	}
	s.pending = append(s.pending, pendingShape{shape: shape, active: active})
}

// Pending returns the number of shapes waiting for the next frame boundary.
func (s *Scene) Pending() int {
	return len(s.pending)
}

// PreRender flushes the pending queue into the live list in enqueue order,
// creating backend resources for each shape and its children. Shapes whose
// resources fail to create are still registered; the first error is
// returned after the queue is drained.
func (s *Scene) PreRender() error {
	var firstErr error
	for i := range s.pending {
		p := s.pending[i]
		if err := s.initShape(p.shape); err != nil && firstErr == nil {
			firstErr = err
		}
		p.shape.SetActive(p.active)
		s.shapes = append(s.shapes, p.shape)
		s.pending[i] = pendingShape{}
	}
	s.pending = s.pending[:0]
	return firstErr
}

// initShape creates backend resources for shape and, recursively, its children.
func (s *Scene) initShape(shape *Shape) error {
	if s.backend == nil {
		return nil
	}
	if err := s.backend.CreateResources(shape); err != nil {
		return fmt.Errorf("create resources for %s %q: %w", shape.Kind, shape.Name, err)
	}
	for _, c := range shape.children {
		if err := s.initShape(c); err != nil {
			return err
		}
	}
	return nil
}

// discardShape releases backend resources for shape and its children.
func (s *Scene) discardShape(shape *Shape) {
	if s.backend != nil {
		for _, c := range shape.children {
			s.discardShape(c)
		}
		s.backend.DiscardResources(shape)
	}
	shape.Resource = nil
}

// RemoveShape removes shape from the live list immediately and releases its
// backend resources. The shape itself is left to the caller. Returns false
// if the shape was not live.
func (s *Scene) RemoveShape(shape *Shape) bool {
	for i, c := range s.shapes {
		if c == shape {
			s.discardShape(shape)
			copy(s.shapes[i:], s.shapes[i+1:])
			s.shapes[len(s.shapes)-1] = nil
			s.shapes = s.shapes[:len(s.shapes)-1]
			return true
		}
	}
	// A shape removed before its first frame must not appear later.
	for i, p := range s.pending {
		if p.shape == shape {
			copy(s.pending[i:], s.pending[i+1:])
			s.pending[len(s.pending)-1] = pendingShape{}
			s.pending = s.pending[:len(s.pending)-1]
			return true
		}
	}
	return false
}

// RemoveAllShapes releases the resources of every live shape and empties
// both the live list and the pending queue.
func (s *Scene) RemoveAllShapes() {
	for i, c := range s.shapes {
		s.discardShape(c)
		s.shapes[i] = nil
	}
	s.shapes = s.shapes[:0]
	for i := range s.pending {
		s.pending[i] = pendingShape{}
	}
	s.pending = s.pending[:0]
}

// Shapes returns the live list in insertion order. The returned slice MUST
// NOT be mutated.
func (s *Scene) Shapes() []*Shape {
	return s.shapes
}

// --- Frame ---

// Update advances the simulation by one frame. With an UpdateFunc installed
// it delegates entirely to it; otherwise every active shape moves by its
// cached step. Returns false once a halt has been requested.
func (s *Scene) Update(f *Frame) bool {
	if s.halted {
		return false
	}
	if s.updateFn != nil {
		if !s.updateFn(f) {
			s.halted = true
			return false
		}
		return true
	}
	s.MoveActive()
	return true
}

// MoveActive moves every active live shape by its cached step.
func (s *Scene) MoveActive() {
	for _, c := range s.shapes {
		if c.active {
			c.Move()
		}
	}
}

// Step runs one canonical frame: scripted input is merged into f, the
// pending queue is flushed, then Update runs. Entities queued during the
// previous frame are therefore live, and collidable, in this one.
func (s *Scene) Step(f *Frame) (bool, error) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.applyInjectedInput(f)

	err := s.PreRender()
	ok := s.Update(f)

	if s.debug {
		s.debugLog(debugStats{
			updateTime:   time.Since(t0),
			shapeCount:   len(s.shapes),
			activeCount:  countActive(s.shapes),
			pendingCount: len(s.pending),
		})
	}
	return ok, err
}

// DeInit runs the teardown hook, then releases every registered shape.
func (s *Scene) DeInit() {
	if s.deinitFn != nil {
		s.deinitFn()
	}
	s.RemoveAllShapes()
	s.halted = false
}
