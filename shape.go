package shapeshifter

// --- Resources ---

// Bitmap is a reference to an externally owned image. The engine never
// decodes it; a Backend resolves Name/Path to whatever texture it draws with.
type Bitmap struct {
	Name string
	Path string

	// Width and Height are the decode size requested from the backend.
	// Zero means "use the image's natural size".
	Width, Height int
}

// NewBitmapResource returns a bitmap reference for the asset at path.
func NewBitmapResource(name, path string, width, height int) *Bitmap {
	return &Bitmap{Name: name, Path: path, Width: width, Height: height}
}

// --- ID counter ---

// shapeIDCounter is a plain counter (no atomic; the engine is single-threaded).
var shapeIDCounter uint32

func nextShapeID() uint32 {
	shapeIDCounter++
	return shapeIDCounter
}

// --- Shape ---

// Shape is the fundamental engine element. A single flat struct is used for
// every variant; Kind selects which payload fields are meaningful:
//
//	ShapeRectangle  Width, Height
//	ShapeCircle     Radius
//	ShapeBitmap     Bitmap, Width, Height
//	ShapeText       Text, Align, FontSize, Width, Height
//	ShapeGroup      none (children only)
type Shape struct {
	// Identity
	ID   uint32
	Name string
	Kind ShapeKind

	// Hierarchy. Children are positioned relative to their parent and are
	// owned by it.
	Parent   *Shape
	children []*Shape

	// Kinematics
	pos       Vec2
	speed     float64
	direction float64 // compass degrees: 0 up, 90 right
	step      Vec2    // cached speed * (sin, -cos) of direction
	active    bool

	// Render payload
	Width, Height float64
	Radius        float64
	Bitmap        *Bitmap
	Text          string
	Align         TextAlign
	FontSize      float64
	Color         Color
	Alpha         float64

	// Resource holds per-shape drawing resources created by a Backend in
	// CreateResources. The engine only clears it.
	Resource any

	disposed bool
}

// shapeDefaults sets the common default field values shared by all constructors.
func shapeDefaults(s *Shape) {
	s.ID = nextShapeID()
	s.Color = ColorWhite
	s.Alpha = 1
	s.active = true
}

// NewGroup creates a zero-size shape whose only purpose is to carry children.
func NewGroup(name string) *Shape {
	s := &Shape{Name: name, Kind: ShapeGroup}
	shapeDefaults(s)
	return s
}

// NewRectangle creates a filled rectangle of the given size.
func NewRectangle(name string, width, height float64) *Shape {
	s := &Shape{Name: name, Kind: ShapeRectangle, Width: width, Height: height}
	shapeDefaults(s)
	return s
}

// NewCircle creates a filled circle centered on its position.
func NewCircle(name string, radius float64) *Shape {
	s := &Shape{Name: name, Kind: ShapeCircle, Radius: radius}
	shapeDefaults(s)
	return s
}

// NewBitmap creates a sprite that stretches bm over width x height.
func NewBitmap(name string, bm *Bitmap, width, height float64) *Shape {
	s := &Shape{Name: name, Kind: ShapeBitmap, Bitmap: bm, Width: width, Height: height}
	shapeDefaults(s)
	return s
}

// NewText creates a text label laid out inside a width x height box. The
// font size defaults to the box height.
func NewText(name, content string, width, height float64, align TextAlign) *Shape {
	s := &Shape{
		Name:     name,
		Kind:     ShapeText,
		Text:     content,
		Width:    width,
		Height:   height,
		Align:    align,
		FontSize: height,
	}
	shapeDefaults(s)
	return s
}

// --- State accessors ---

// IsActive reports whether the shape takes part in movement, collision and drawing.
func (s *Shape) IsActive() bool {
	return s.active
}

// SetActive includes or excludes the shape from movement, collision and drawing.
// The shape stays allocated either way.
func (s *Shape) SetActive(active bool) {
	s.active = active
}

// SetText replaces a text shape's content.
func (s *Shape) SetText(text string) {
	s.Text = text
}

// SetBitmap swaps the image a bitmap shape draws.
func (s *Shape) SetBitmap(bm *Bitmap) {
	s.Bitmap = bm
}

// SetSize sets Width and Height.
func (s *Shape) SetSize(width, height float64) {
	s.Width = width
	s.Height = height
}

// --- Tree manipulation ---

// AddChild appends child to this shape's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this shape (cycle).
func (s *Shape) AddChild(child *Shape) {
	if child == nil {
		panic("shapeshifter: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(s, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, s) {
		panic("shapeshifter: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = s
	s.children = append(s.children, child)
}

// RemoveChild detaches child from this shape.
// Panics if child.Parent != s.
func (s *Shape) RemoveChild(child *Shape) {
	if child.Parent != s {
		panic("shapeshifter: child's parent is not this shape")
	}
	s.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildren detaches all children from this shape.
// Children are NOT disposed.
func (s *Shape) RemoveChildren() {
	for _, child := range s.children {
		child.Parent = nil
	}
	s.children = s.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (s *Shape) Children() []*Shape {
	return s.children
}

// NumChildren returns the number of children.
func (s *Shape) NumChildren() int {
	return len(s.children)
}

// ChildAt returns the child at the given index.
func (s *Shape) ChildAt(index int) *Shape {
	return s.children[index]
}

// --- Disposal ---

// Dispose detaches this shape from its parent, marks it and every descendant
// as disposed, and drops resource references. Backend resources must already
// have been discarded (Scene.RemoveShape does that).
func (s *Shape) Dispose() {
	if s.disposed {
		return
	}
	if s.Parent != nil {
		s.Parent.removeChildByPtr(s)
	}
	s.dispose()
}

func (s *Shape) dispose() {
	s.disposed = true
	s.ID = 0
	s.active = false
	for _, child := range s.children {
		child.Parent = nil
		child.dispose()
	}
	s.children = nil
	s.Parent = nil
	s.Bitmap = nil
	s.Resource = nil
}

// IsDisposed returns true if this shape has been disposed.
func (s *Shape) IsDisposed() bool {
	return s.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of shape (or shape itself).
func isAncestor(candidate, shape *Shape) bool {
	for p := shape; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from s.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (s *Shape) removeChildByPtr(child *Shape) {
	for i, c := range s.children {
		if c == child {
			copy(s.children[i:], s.children[i+1:])
			s.children[len(s.children)-1] = nil
			s.children = s.children[:len(s.children)-1]
			return
		}
	}
}
