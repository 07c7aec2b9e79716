package shapeshifter

// injectKind selects how a synthetic key event changes the frame's input.
type injectKind uint8

const (
	injectTap     injectKind = iota // down and pressed for exactly one frame
	injectHold                      // pressed now, held until released
	injectRelease                   // stop holding
	injectEvent                     // queue an EventKeyDown
)

// syntheticKeyEvent represents a single injected key action.
type syntheticKeyEvent struct {
	key  Key
	kind injectKind
}

// InjectKeyPress queues a one-frame tap of k (pressed and down). The event
// is consumed on the next Step.
func (s *Scene) InjectKeyPress(k Key) {
	s.injectQueue = append(s.injectQueue, syntheticKeyEvent{key: k, kind: injectTap})
}

// InjectKeyDown queues k going down; it stays held on every following frame
// until InjectKeyUp.
func (s *Scene) InjectKeyDown(k Key) {
	s.injectQueue = append(s.injectQueue, syntheticKeyEvent{key: k, kind: injectHold})
}

// InjectKeyUp queues the release of a key held with InjectKeyDown.
func (s *Scene) InjectKeyUp(k Key) {
	s.injectQueue = append(s.injectQueue, syntheticKeyEvent{key: k, kind: injectRelease})
}

// InjectKeyEvent queues a discrete EventKeyDown for k, as a window message
// would arrive.
func (s *Scene) InjectKeyEvent(k Key) {
	s.injectQueue = append(s.injectQueue, syntheticKeyEvent{key: k, kind: injectEvent})
}

// applyInjectedInput pops one event from the inject queue and merges it, plus
// every key still held by injection, into f.
func (s *Scene) applyInjectedInput(f *Frame) {
	if len(s.injectQueue) > 0 {
		evt := s.injectQueue[0]
		copy(s.injectQueue, s.injectQueue[1:])
		s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

		switch evt.kind {
		case injectTap:
			f.Input.Down = f.Input.Down.With(evt.key)
			f.Input.Pressed = f.Input.Pressed.With(evt.key)
		case injectHold:
			s.injectHeld = s.injectHeld.With(evt.key)
			f.Input.Pressed = f.Input.Pressed.With(evt.key)
		case injectRelease:
			s.injectHeld = s.injectHeld.Without(evt.key)
		case injectEvent:
			if f.Events == nil {
				f.Events = &EventQueue{}
			}
			f.Events.Push(Event{Type: EventKeyDown, Key: evt.key})
		}
	}
	f.Input.Down |= s.injectHeld
}

// PendingInjections returns the number of queued synthetic key events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}
