package shapeshifter

import "math"

// Scaler maps the scene's fixed logical resolution onto a physical target,
// preserving aspect ratio and centering the result (letterboxing).
//
// PixelAspect is the height/width ratio of one physical unit. It is 1 for
// square pixels and about 2 for terminal character cells.
type Scaler struct {
	Logical     Size
	Physical    Size
	PixelAspect float64

	scaleX, scaleY   float64
	offsetX, offsetY float64
}

// NewScaler returns a scaler for the given sizes. A non-positive pixelAspect
// is treated as 1.
func NewScaler(logical, physical Size, pixelAspect float64) *Scaler {
	if pixelAspect <= 0 {
		pixelAspect = 1
	}
	sc := &Scaler{Logical: logical, Physical: physical, PixelAspect: pixelAspect}
	sc.compute()
	return sc
}

// Resize updates the physical size and recomputes the mapping.
func (sc *Scaler) Resize(physical Size) {
	sc.Physical = physical
	sc.compute()
}

func (sc *Scaler) compute() {
	if sc.Logical.Width <= 0 || sc.Logical.Height <= 0 {
		sc.scaleX, sc.scaleY, sc.offsetX, sc.offsetY = 0, 0, 0, 0
		return
	}
	// Work in square "visual" units: a physical row is PixelAspect tall.
	visW := float64(sc.Physical.Width)
	visH := float64(sc.Physical.Height) * sc.PixelAspect
	s := math.Min(visW/float64(sc.Logical.Width), visH/float64(sc.Logical.Height))

	sc.scaleX = s
	sc.scaleY = s / sc.PixelAspect
	sc.offsetX = (float64(sc.Physical.Width) - float64(sc.Logical.Width)*sc.scaleX) / 2
	sc.offsetY = (float64(sc.Physical.Height) - float64(sc.Logical.Height)*sc.scaleY) / 2
}

// Scale converts a logical point to physical coordinates.
func (sc *Scaler) Scale(p Vec2) Vec2 {
	return Vec2{p.X*sc.scaleX + sc.offsetX, p.Y*sc.scaleY + sc.offsetY}
}

// ScaleSize converts a logical width/height to physical units without offset.
func (sc *Scaler) ScaleSize(w, h float64) (float64, float64) {
	return w * sc.scaleX, h * sc.scaleY
}

// ScaleRect converts a logical rectangle to physical coordinates.
func (sc *Scaler) ScaleRect(r Rect) Rect {
	p := sc.Scale(Vec2{r.X, r.Y})
	w, h := sc.ScaleSize(r.Width, r.Height)
	return Rect{X: p.X, Y: p.Y, Width: w, Height: h}
}

// Unscale converts a physical point back to logical coordinates.
func (sc *Scaler) Unscale(p Vec2) Vec2 {
	if sc.scaleX == 0 || sc.scaleY == 0 {
		return Vec2{}
	}
	return Vec2{(p.X - sc.offsetX) / sc.scaleX, (p.Y - sc.offsetY) / sc.scaleY}
}

// Viewport returns the physical rectangle the logical screen occupies.
func (sc *Scaler) Viewport() Rect {
	return sc.ScaleRect(Rect{Width: float64(sc.Logical.Width), Height: float64(sc.Logical.Height)})
}
