// Package termrender draws a shapeshifter scene into a terminal with tcell.
//
// The scene's logical resolution is letterboxed into the terminal through a
// shapeshifter.Scaler that treats each cell as twice as tall as it is wide.
// Rectangles and bitmaps become blocks of glyphs and text is written one rune
// per cell, so the output is recognisable rather than faithful.
package termrender

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	ss "github.com/bjorn2code64/shapeshifter"
)

// CellAspect is the height/width ratio assumed for a terminal cell.
const CellAspect = 2.0

// Backend implements shapeshifter.Backend on a tcell.Screen.
type Backend struct {
	screen tcell.Screen
	scaler *ss.Scaler
	bg     tcell.Style
}

// NewBackend returns a backend drawing onto screen, which must already be
// initialised.
func NewBackend(screen tcell.Screen, logical ss.Size) *Backend {
	w, h := screen.Size()
	return &Backend{
		screen: screen,
		scaler: ss.NewScaler(logical, ss.Size{Width: w, Height: h}, CellAspect),
		bg:     tcell.StyleDefault.Background(tcell.ColorBlack),
	}
}

// Resize refits the scaler to the screen's current size.
func (b *Backend) Resize() {
	w, h := b.screen.Size()
	b.scaler.Resize(ss.Size{Width: w, Height: h})
}

// Scaler returns the logical-to-cell mapping.
func (b *Backend) Scaler() *ss.Scaler {
	return b.scaler
}

// CreateResources is a no-op; terminal drawing needs no per-shape state.
func (b *Backend) CreateResources(*ss.Shape) error { return nil }

// DiscardResources is a no-op.
func (b *Backend) DiscardResources(*ss.Shape) {}

// Clear blanks the screen and paints the letterboxed play area.
func (b *Backend) Clear() {
	b.screen.Fill(' ', tcell.StyleDefault)
	vp := b.scaler.Viewport()
	x0, y0, x1, y1 := cellSpan(vp)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			b.screen.SetContent(x, y, ' ', nil, b.bg)
		}
	}
}

// DrawShape renders one shape with its position offset by origin.
func (b *Backend) DrawShape(shape *ss.Shape, origin ss.Vec2) {
	p := shape.Pos().Add(origin)
	style := b.style(shape)

	switch shape.Kind {
	case ss.ShapeRectangle:
		if shape.Width > 0 && shape.Height > 0 {
			b.fill(ss.Rect{X: p.X, Y: p.Y, Width: shape.Width, Height: shape.Height}, '█', style)
		}
	case ss.ShapeCircle:
		if shape.Radius > 0 {
			r := shape.Radius
			b.fill(ss.Rect{X: p.X - r, Y: p.Y - r, Width: 2 * r, Height: 2 * r}, '●', style)
		}
	case ss.ShapeBitmap:
		if shape.Bitmap != nil && shape.Width > 0 && shape.Height > 0 {
			b.fill(ss.Rect{X: p.X, Y: p.Y, Width: shape.Width, Height: shape.Height}, bitmapGlyph(shape.Bitmap.Name), style)
		}
	case ss.ShapeText:
		b.drawText(shape, p, style)
	}
}

func (b *Backend) style(shape *ss.Shape) tcell.Style {
	c := shape.Color
	r, g, bl, _ := c.RGBA8()
	st := b.bg.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(bl)))
	if c.A*shape.Alpha < 0.5 {
		st = st.Dim(true)
	}
	return st
}

func (b *Backend) fill(r ss.Rect, glyph rune, style tcell.Style) {
	x0, y0, x1, y1 := cellSpan(b.scaler.ScaleRect(r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			b.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

func (b *Backend) drawText(shape *ss.Shape, p ss.Vec2, style tcell.Style) {
	if shape.Text == "" {
		return
	}
	box := b.scaler.ScaleRect(ss.Rect{X: p.X, Y: p.Y, Width: shape.Width, Height: shape.Height})
	runes := []rune(shape.Text)
	x := int(math.Floor(box.X))
	switch shape.Align {
	case ss.TextAlignCenter:
		x = int(math.Round(box.X + (box.Width-float64(len(runes)))/2))
	case ss.TextAlignRight:
		x = int(math.Round(box.X + box.Width - float64(len(runes))))
	}
	y := int(math.Floor(box.Y + box.Height/2))
	for i, r := range runes {
		b.screen.SetContent(x+i, y, r, nil, style)
	}
}

// cellSpan returns the inclusive cell range covered by a physical rect. Any
// rect covers at least one cell.
func cellSpan(r ss.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X))
	y0 = int(math.Floor(r.Y))
	x1 = max(x0, int(math.Ceil(r.X+r.Width))-1)
	y1 = max(y0, int(math.Ceil(r.Y+r.Height))-1)
	return x0, y0, x1, y1
}

// bitmapGlyph picks a fill glyph for a sprite so animation frames and kinds
// stay distinguishable.
func bitmapGlyph(name string) rune {
	switch {
	case strings.HasPrefix(name, "ufo"):
		return '◆'
	case strings.HasSuffix(name, "Open"):
		return '▒'
	default:
		return '▓'
	}
}
