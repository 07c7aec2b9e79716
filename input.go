package shapeshifter

import "strings"

// Key identifies a logical key. Shells map their platform key codes onto
// these values; the simulation never sees platform codes.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyFire
	KeyEscape
	KeyEnter
	KeyPause
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "unknown",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyFire:    "fire",
	KeyEscape:  "escape",
	KeyEnter:   "enter",
	KeyPause:   "pause",
}

// String returns the key's lower-case name.
func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "unknown"
}

// ParseKey returns the Key with the given name (case-insensitive).
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := KeyUnknown + 1; k < keyCount; k++ {
		if keyNames[k] == name {
			return k, true
		}
	}
	return KeyUnknown, false
}

// KeySet is a bitmask of keys.
// Values can be combined with bitwise OR (e.g. KeySetOf(KeyLeft, KeyFire)).
type KeySet uint32

// KeySetOf builds a set from the given keys.
func KeySetOf(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

// With returns the set with k added.
func (s KeySet) With(k Key) KeySet {
	return s | 1<<k
}

// Without returns the set with k removed.
func (s KeySet) Without(k Key) KeySet {
	return s &^ (1 << k)
}

// Input is the keyboard snapshot for one frame. Down holds every key
// currently held; Pressed holds keys that went down since the previous frame.
type Input struct {
	Down    KeySet
	Pressed KeySet
}

// IsDown reports whether k is held.
func (in Input) IsDown(k Key) bool {
	return in.Down.Has(k)
}

// IsPressed reports whether k went down this frame.
func (in Input) IsPressed(k Key) bool {
	return in.Pressed.Has(k)
}

// NextInput derives a snapshot from the set of keys held this frame and the
// set held in the previous frame, deriving Pressed edges.
func NextInput(prevDown, down KeySet) Input {
	return Input{Down: down, Pressed: down &^ prevDown}
}

// EventType identifies a kind of discrete input event.
type EventType uint8

const (
	EventKeyDown     EventType = iota // a key went down
	EventKeyUp                        // a key was released
	EventPointerDown                  // a pointer button was pressed
	EventPointerUp                    // a pointer button was released
	EventPointerMove                  // the pointer moved
)

// Event is a discrete input event queued by the shell.
type Event struct {
	Type EventType
	Key  Key
	Pos  Vec2
}

// EventQueue is a FIFO of input events drained once per frame.
type EventQueue struct {
	events []Event
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Pop removes and returns the oldest event.
func (q *EventQueue) Pop() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	e := q.events[0]
	copy(q.events, q.events[1:])
	q.events[len(q.events)-1] = Event{}
	q.events = q.events[:len(q.events)-1]
	return e, true
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Clear discards every queued event.
func (q *EventQueue) Clear() {
	q.events = q.events[:0]
}

// Frame is everything the shell hands the engine for one update.
type Frame struct {
	// Tick is a monotonic millisecond counter from an arbitrary epoch.
	Tick uint64
	// Pointer is the current pointer position in logical coordinates.
	Pointer Vec2
	Input   Input
	// Events may be nil when the shell has nothing queued.
	Events *EventQueue
}
