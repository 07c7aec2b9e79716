// Package shapeshifter is a small retained-mode 2D shape engine.
//
// A [Scene] owns a flat, insertion-ordered list of [Shape] values at a fixed
// logical resolution. Shapes carry kinematics (position, speed, compass
// heading with a cached per-frame step) and a render payload selected by
// [ShapeKind]: rectangles, circles, bitmaps, text labels and groups.
//
// # Frames
//
// The shell drives one frame at a time:
//
//	scene := shapeshifter.NewScene(shapeshifter.Size{Width: 1000, Height: 1080})
//	scene.SetBackend(backend)
//	scene.SetUpdateFunc(game.Update)
//
//	// every frame
//	frame := &shapeshifter.Frame{Tick: ms, Input: input, Events: &events}
//	if ok, err := scene.Step(frame); err != nil || !ok { ... }
//	scene.Render(backend)
//
// [Scene.Enqueue] never mutates the live list; queued shapes join it when the
// next [Scene.Step] flushes the pending queue, before the update runs.
// [Scene.RemoveShape] is immediate.
//
// # Time and input
//
// Nothing in the engine reads a clock or polls a device. Ticks arrive in
// [Frame.Tick] and drive [TickGate] timers; keys arrive as an [Input]
// snapshot plus an [EventQueue]. Given the same ticks and input the engine is
// fully deterministic, which is what [TestRunner] scripts rely on.
//
// # Backends
//
// Drawing and per-shape resources go through the [Backend] interface. The
// ebitenrender and termrender packages provide Ebitengine and terminal
// implementations.
package shapeshifter
