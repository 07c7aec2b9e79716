package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	ss "github.com/bjorn2code64/shapeshifter"
)

// keyMap binds physical keys to engine keys. Several physical keys may share
// one engine key.
var keyMap = map[ebiten.Key]ss.Key{
	ebiten.KeyArrowLeft:   ss.KeyLeft,
	ebiten.KeyA:           ss.KeyLeft,
	ebiten.KeyArrowRight:  ss.KeyRight,
	ebiten.KeyD:           ss.KeyRight,
	ebiten.KeyArrowUp:     ss.KeyUp,
	ebiten.KeyArrowDown:   ss.KeyDown,
	ebiten.KeySpace:       ss.KeyFire,
	ebiten.KeyControlLeft: ss.KeyFire,
	ebiten.KeyEscape:      ss.KeyEscape,
	ebiten.KeyEnter:       ss.KeyEnter,
	ebiten.KeyP:           ss.KeyPause,
}

// MapKey returns the engine key bound to k.
func MapKey(k ebiten.Key) (ss.Key, bool) {
	key, ok := keyMap[k]
	return key, ok
}

// inputState polls Ebitengine once per tick and turns it into the engine's
// held-key set plus discrete events.
type inputState struct {
	prevDown ss.KeySet
	buf      []ebiten.Key
}

// poll returns this tick's input snapshot and pushes key and pointer events
// onto q.
func (s *inputState) poll(q *ss.EventQueue) (ss.Input, ss.Vec2) {
	var down ss.KeySet
	for pk, k := range keyMap {
		if ebiten.IsKeyPressed(pk) {
			down = down.With(k)
		}
	}

	s.buf = inpututil.AppendJustPressedKeys(s.buf[:0])
	for _, pk := range s.buf {
		if k, ok := keyMap[pk]; ok {
			q.Push(ss.Event{Type: ss.EventKeyDown, Key: k})
		}
	}
	s.buf = inpututil.AppendJustReleasedKeys(s.buf[:0])
	for _, pk := range s.buf {
		if k, ok := keyMap[pk]; ok {
			q.Push(ss.Event{Type: ss.EventKeyUp, Key: k})
		}
	}

	cx, cy := ebiten.CursorPosition()
	pos := ss.Vec2{X: float64(cx), Y: float64(cy)}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		q.Push(ss.Event{Type: ss.EventPointerDown, Pos: pos})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		q.Push(ss.Event{Type: ss.EventPointerUp, Pos: pos})
	}

	in := ss.NextInput(s.prevDown, down)
	s.prevDown = down
	return in, pos
}
