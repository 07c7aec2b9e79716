package shapeshifter

import "time"

// Backend is the rendering capability a shell provides. The engine never
// issues device-specific draw calls; it only asks for resources to be
// created or discarded and for a shape to be drawn now.
type Backend interface {
	// CreateResources is called once when a shape (or a child of one) joins
	// the live list. Implementations may store state in Shape.Resource.
	CreateResources(s *Shape) error
	// DiscardResources is called synchronously when a shape leaves the live list.
	DiscardResources(s *Shape)
	// DrawShape draws s with its position offset by origin (the accumulated
	// world position of its parent; zero for top-level shapes).
	DrawShape(s *Shape, origin Vec2)
}

// ActiveShapes appends the active live shapes to buf in insertion order and
// returns it. This is the render queue: z-order equals insertion order.
func (s *Scene) ActiveShapes(buf []*Shape) []*Shape {
	for _, c := range s.shapes {
		if c.active {
			buf = append(buf, c)
		}
	}
	return buf
}

// Render draws every active shape in insertion order. Children are drawn
// after their parent, and only while both are active.
func (s *Scene) Render(b Backend) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.drawBuf = s.ActiveShapes(s.drawBuf[:0])
	for _, c := range s.drawBuf {
		drawShape(b, c, Vec2{})
	}
	for i := range s.drawBuf {
		s.drawBuf[i] = nil
	}

	if s.debug {
		s.debugLog(debugStats{
			renderTime:  time.Since(t0),
			shapeCount:  len(s.shapes),
			activeCount: countActive(s.shapes),
		})
	}
}

// drawShape draws shape at origin and recurses into its active children.
func drawShape(b Backend, shape *Shape, origin Vec2) {
	b.DrawShape(shape, origin)
	if len(shape.children) == 0 {
		return
	}
	childOrigin := origin.Add(shape.pos)
	for _, c := range shape.children {
		if c.active {
			drawShape(b, c, childOrigin)
		}
	}
}

// countActive returns the number of active shapes in list.
func countActive(list []*Shape) int {
	n := 0
	for _, c := range list {
		if c.active {
			n++
		}
	}
	return n
}
