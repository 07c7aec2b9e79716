package shapeshifter

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default shape color.
var ColorWhite = Color{1, 1, 1, 1}

// RGB builds an opaque Color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// RGBA8 returns the color as 8-bit straight-alpha channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return unit8(c.R), unit8(c.G), unit8(c.B), unit8(c.A)
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and steps
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

// LengthSq returns the squared length of v.
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// DistanceSq returns the squared distance between v and o.
func (v Vec2) DistanceSq(o Vec2) float64 {
	return v.Sub(o).LengthSq()
}

// Size is an integer width/height pair, used for the logical screen
// resolution and for backend target sizes.
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Edges are inclusive.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the minimum X.
func (r Rect) Left() float64 { return r.X }

// Top returns the minimum Y.
func (r Rect) Top() float64 { return r.Y }

// Right returns the maximum X.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the maximum Y.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Empty reports whether the rectangle covers no area at all.
func (r Rect) Empty() bool {
	return r.Width < 0 || r.Height < 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Offset returns r translated by d.
func (r Rect) Offset(d Vec2) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// ShapeKind distinguishes rendering and hit-test behavior for a Shape.
type ShapeKind uint8

const (
	ShapeGroup     ShapeKind = iota // zero-size container for child shapes
	ShapeRectangle                  // solid filled rectangle
	ShapeCircle                     // solid filled circle centered on Pos
	ShapeBitmap                     // externally owned image stretched to Width x Height
	ShapeText                       // single line of text inside a Width x Height box
)

// String returns the lower-case kind name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeGroup:
		return "group"
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapeBitmap:
		return "bitmap"
	case ShapeText:
		return "text"
	default:
		return "unknown"
	}
}

// TextAlign controls horizontal text alignment within a text shape's box.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)
