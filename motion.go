package shapeshifter

import "math"

// stepEpsilon snaps trigonometric noise (cos 90° is 6e-17, not 0) so that a
// shape moving along an axis stays exactly on it.
const stepEpsilon = 1e-9

// stepVector returns speed * (sin θ, -cos θ) for a compass direction in degrees.
func stepVector(speed, degrees float64) Vec2 {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	v := Vec2{speed * sin, -speed * cos}
	if math.Abs(v.X) < stepEpsilon {
		v.X = 0
	}
	if math.Abs(v.Y) < stepEpsilon {
		v.Y = 0
	}
	return v
}

// updateCache recomputes the cached per-frame step.
func (s *Shape) updateCache() {
	s.step = stepVector(s.speed, s.direction)
}

// --- Kinematic setters ---

// Pos returns the shape's position relative to its parent (or the screen for
// top-level shapes).
func (s *Shape) Pos() Vec2 {
	return s.pos
}

// SetPos sets the shape's position.
func (s *Shape) SetPos(p Vec2) {
	s.pos = p
}

// OffsetPos moves the shape by d without touching its velocity.
func (s *Shape) OffsetPos(d Vec2) {
	s.pos = s.pos.Add(d)
}

// WorldPos returns the absolute position, accumulating parent offsets.
func (s *Shape) WorldPos() Vec2 {
	p := s.pos
	for parent := s.Parent; parent != nil; parent = parent.Parent {
		p = p.Add(parent.pos)
	}
	return p
}

// Speed returns the distance covered per Move.
func (s *Shape) Speed() float64 {
	return s.speed
}

// SetSpeed sets the distance covered per Move and refreshes the step cache.
func (s *Shape) SetSpeed(speed float64) {
	s.speed = speed
	s.updateCache()
}

// Direction returns the heading in compass degrees (0 up, 90 right).
func (s *Shape) Direction() float64 {
	return s.direction
}

// SetDirection sets the heading in compass degrees and refreshes the step cache.
func (s *Shape) SetDirection(degrees float64) {
	s.direction = degrees
	s.updateCache()
}

// SetMotion sets speed and heading together.
func (s *Shape) SetMotion(speed, degrees float64) {
	s.speed = speed
	s.direction = degrees
	s.updateCache()
}

// Step returns the cached per-frame displacement.
func (s *Shape) Step() Vec2 {
	return s.step
}

// Move applies the cached step to the position unconditionally.
func (s *Shape) Move() {
	s.pos = s.pos.Add(s.step)
}

// BounceX negates the horizontal component of the heading.
func (s *Shape) BounceX() {
	s.direction = normalizeDegrees(-s.direction)
	s.updateCache()
}

// BounceY negates the vertical component of the heading.
func (s *Shape) BounceY() {
	s.direction = normalizeDegrees(180 - s.direction)
	s.updateCache()
}

// normalizeDegrees maps d into (-180, 180].
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// --- Bounds ---

// MoveResult reports which screen edges a predicted move would cross.
type MoveResult struct {
	HitLeft, HitRight, HitTop, HitBottom bool
}

// OK reports whether the move stays inside the screen.
func (r MoveResult) OK() bool {
	return !r.HitLeft && !r.HitRight && !r.HitTop && !r.HitBottom
}

// WillHitBounds predicts the bounding box after the next Move and reports the
// screen edges it would cross. The position is not changed.
func (s *Shape) WillHitBounds(screen Size) MoveResult {
	bb := s.boundingBoxAt(s.WorldPos().Add(s.step))
	return MoveResult{
		HitLeft:   bb.Left() < 0,
		HitRight:  bb.Right() > float64(screen.Width),
		HitTop:    bb.Top() < 0,
		HitBottom: bb.Bottom() > float64(screen.Height),
	}
}

// --- Collision ---

// hasArea reports whether the shape's payload has a positive size. Shapes
// without area never collide.
func (s *Shape) hasArea() bool {
	switch s.Kind {
	case ShapeCircle:
		return s.Radius > 0
	case ShapeGroup:
		return false
	default:
		return s.Width > 0 && s.Height > 0
	}
}

// BoundingBox returns the world-space axis-aligned bounds at the current position.
func (s *Shape) BoundingBox() Rect {
	return s.boundingBoxAt(s.WorldPos())
}

// boundingBoxAt returns the bounds the shape would have at world position p.
// Rectangles cover [x, x+w-1] (pixel-inclusive); bitmaps and text cover
// [x, x+w]; circles are centered on p.
func (s *Shape) boundingBoxAt(p Vec2) Rect {
	switch s.Kind {
	case ShapeRectangle:
		return Rect{X: p.X, Y: p.Y, Width: s.Width - 1, Height: s.Height - 1}
	case ShapeCircle:
		return Rect{X: p.X - s.Radius, Y: p.Y - s.Radius, Width: 2 * s.Radius, Height: 2 * s.Radius}
	case ShapeGroup:
		return Rect{X: p.X, Y: p.Y, Width: -1, Height: -1}
	default:
		return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
	}
}

// HitTestShape reports whether the bounding boxes of s and other overlap.
// This is the only collision primitive: no pixel masks, no rotation.
func (s *Shape) HitTestShape(other *Shape) bool {
	if !s.hasArea() || !other.hasArea() {
		return false
	}
	return s.BoundingBox().Intersects(other.BoundingBox())
}

// HitTest reports whether the world-space point p lies inside the shape.
func (s *Shape) HitTest(p Vec2) bool {
	if !s.hasArea() {
		return false
	}
	if s.Kind == ShapeCircle {
		return s.WorldPos().DistanceSq(p) <= s.Radius*s.Radius
	}
	return s.BoundingBox().Contains(p.X, p.Y)
}
