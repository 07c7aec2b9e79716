package termrender

import (
	"time"

	"github.com/gdamore/tcell/v2"

	ss "github.com/bjorn2code64/shapeshifter"
)

var specialKeys = map[tcell.Key]ss.Key{
	tcell.KeyLeft:   ss.KeyLeft,
	tcell.KeyRight:  ss.KeyRight,
	tcell.KeyUp:     ss.KeyUp,
	tcell.KeyDown:   ss.KeyDown,
	tcell.KeyEscape: ss.KeyEscape,
	tcell.KeyEnter:  ss.KeyEnter,
}

var runeKeys = map[rune]ss.Key{
	' ': ss.KeyFire,
	'a': ss.KeyLeft,
	'A': ss.KeyLeft,
	'd': ss.KeyRight,
	'D': ss.KeyRight,
	'w': ss.KeyUp,
	's': ss.KeyDown,
	'p': ss.KeyPause,
	'P': ss.KeyPause,
}

// MapKey translates a tcell key event to a logical key.
func MapKey(ev *tcell.EventKey) (ss.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		k, ok := runeKeys[ev.Rune()]
		return k, ok
	}
	k, ok := specialKeys[ev.Key()]
	return k, ok
}

// heldKeys approximates key state from press events alone.
type heldKeys struct {
	window time.Duration
	last   map[ss.Key]time.Time
}

func (h *heldKeys) press(k ss.Key, now time.Time) {
	if h.last == nil {
		h.last = make(map[ss.Key]time.Time)
	}
	h.last[k] = now
}

// down returns the keys pressed within the hold window before now and forgets
// the rest.
func (h *heldKeys) down(now time.Time) ss.KeySet {
	var set ss.KeySet
	for k, t := range h.last {
		if now.Sub(t) <= h.window {
			set = set.With(k)
		} else {
			delete(h.last, k)
		}
	}
	return set
}
