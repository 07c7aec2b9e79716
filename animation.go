package shapeshifter

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup drives up to four float64 fields of one Shape in lockstep.
// Build it with TweenPosition, TweenAlpha or TweenColor and advance it from
// the update function with the frame's elapsed seconds. Disposing the target
// stops the group.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Shape
	Done   bool
}

// Update advances the group by dt seconds. Nothing is written once the
// target is disposed.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition slides shape to (toX, toY). It writes the position directly,
// so a shape that also moves under its own speed will fight the tween.
func TweenPosition(shape *Shape, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: shape}
	g.tweens[0] = gween.New(float32(shape.pos.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(shape.pos.Y), float32(toY), duration, fn)
	g.fields[0] = &shape.pos.X
	g.fields[1] = &shape.pos.Y
	return g
}

// TweenAlpha fades shape.Alpha to the target value.
func TweenAlpha(shape *Shape, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: shape}
	g.tweens[0] = gween.New(float32(shape.Alpha), float32(to), duration, fn)
	g.fields[0] = &shape.Alpha
	return g
}

// TweenColor blends every channel of shape.Color toward to.
func TweenColor(shape *Shape, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: shape}
	g.tweens[0] = gween.New(float32(shape.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(shape.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(shape.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(shape.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &shape.Color.R
	g.fields[1] = &shape.Color.G
	g.fields[2] = &shape.Color.B
	g.fields[3] = &shape.Color.A
	return g
}

// TweenSet runs several groups in lockstep. A nil or finished group is skipped.
type TweenSet []*TweenGroup

// Update advances every unfinished group by dt seconds.
func (ts TweenSet) Update(dt float32) {
	for _, g := range ts {
		if g != nil && !g.Done {
			g.Update(dt)
		}
	}
}

// Done reports whether every group has finished.
func (ts TweenSet) Done() bool {
	for _, g := range ts {
		if g != nil && !g.Done {
			return false
		}
	}
	return true
}
