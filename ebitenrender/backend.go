// Package ebitenrender draws a shapeshifter scene with Ebitengine and runs it
// as an ebiten.Game.
package ebitenrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	ss "github.com/bjorn2code64/shapeshifter"
)

// basicFontHeight is the pixel height of basicfont.Face7x13.
const basicFontHeight = 13

// Backend implements shapeshifter.Backend on an ebiten.Image target.
//
// Bitmap images are decoded once per *shapeshifter.Bitmap and shared by every
// shape that references it, so swapping animation frames with SetBitmap costs
// nothing at draw time. Missing image files are replaced by a generated
// placeholder unless Strict is set.
type Backend struct {
	// Strict makes CreateResources fail on missing image files instead of
	// generating a placeholder.
	Strict bool

	target *ebiten.Image
	face   text.Face
	images map[*ss.Bitmap]*ebiten.Image
}

// NewBackend returns a backend that draws text with the basic 7x13 font.
func NewBackend() *Backend {
	return &Backend{
		face:   text.NewGoXFace(basicfont.Face7x13),
		images: make(map[*ss.Bitmap]*ebiten.Image),
	}
}

// SetTarget sets the image the next DrawShape calls render into.
func (b *Backend) SetTarget(img *ebiten.Image) {
	b.target = img
}

// Preload decodes bitmaps ahead of the first frame.
func (b *Backend) Preload(bitmaps ...*ss.Bitmap) error {
	for _, bm := range bitmaps {
		if _, err := b.image(bm); err != nil {
			return err
		}
	}
	return nil
}

// CreateResources decodes the shape's bitmap if it has one. The image is
// kept in the shared cache and recorded on shape.Resource.
func (b *Backend) CreateResources(shape *ss.Shape) error {
	if shape.Kind != ss.ShapeBitmap || shape.Bitmap == nil {
		return nil
	}
	img, err := b.image(shape.Bitmap)
	if err != nil {
		return err
	}
	shape.Resource = img
	return nil
}

// DiscardResources drops the shape's reference. Shared images stay cached
// until Close.
func (b *Backend) DiscardResources(shape *ss.Shape) {
	shape.Resource = nil
}

// Close deallocates every cached image.
func (b *Backend) Close() {
	for bm, img := range b.images {
		img.Deallocate()
		delete(b.images, bm)
	}
}

func (b *Backend) image(bm *ss.Bitmap) (*ebiten.Image, error) {
	if img, ok := b.images[bm]; ok {
		return img, nil
	}
	img, _, err := ebitenutil.NewImageFromFile(bm.Path)
	if err != nil {
		if b.Strict || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load bitmap %s: %w", bm.Path, err)
		}
		img = ebiten.NewImageFromImage(Placeholder(bm))
	}
	b.images[bm] = img
	return img, nil
}

// DrawShape renders one shape with its position offset by origin. Bitmaps
// are tinted by the shape's Color; white leaves them unchanged.
func (b *Backend) DrawShape(shape *ss.Shape, origin ss.Vec2) {
	if b.target == nil {
		return
	}
	p := shape.Pos().Add(origin)
	x, y := float32(p.X), float32(p.Y)
	clr := toColor(shape.Color, shape.Alpha)

	switch shape.Kind {
	case ss.ShapeRectangle:
		if shape.Width > 0 && shape.Height > 0 {
			vector.DrawFilledRect(b.target, x, y, float32(shape.Width), float32(shape.Height), clr, false)
		}
	case ss.ShapeCircle:
		if shape.Radius > 0 {
			vector.DrawFilledCircle(b.target, x, y, float32(shape.Radius), clr, true)
		}
	case ss.ShapeBitmap:
		b.drawBitmap(shape, p)
	case ss.ShapeText:
		b.drawText(shape, p)
	}
}

func (b *Backend) drawBitmap(shape *ss.Shape, p ss.Vec2) {
	if shape.Bitmap == nil || shape.Width <= 0 || shape.Height <= 0 {
		return
	}
	img, err := b.image(shape.Bitmap)
	if err != nil {
		return
	}
	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(shape.Width/float64(bounds.Dx()), shape.Height/float64(bounds.Dy()))
	op.GeoM.Translate(p.X, p.Y)
	c := shape.Color
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
	op.ColorScale.ScaleAlpha(float32(c.A * shape.Alpha))
	b.target.DrawImage(img, op)
}

func (b *Backend) drawText(shape *ss.Shape, p ss.Vec2) {
	if shape.Text == "" {
		return
	}
	size := shape.FontSize
	if size <= 0 {
		size = shape.Height
	}
	scale := size / basicFontHeight
	w := text.Advance(shape.Text, b.face) * scale

	x := p.X
	switch shape.Align {
	case ss.TextAlignCenter:
		x += (shape.Width - w) / 2
	case ss.TextAlignRight:
		x += shape.Width - w
	}
	y := p.Y + (shape.Height-size)/2

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(math.Round(x), math.Round(y))
	c := shape.Color
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
	op.ColorScale.ScaleAlpha(float32(c.A * shape.Alpha))
	text.Draw(b.target, shape.Text, b.face, op)
}

// toColor converts a straight-alpha engine color, scaled by alpha.
func toColor(c ss.Color, alpha float64) color.Color {
	c.A *= alpha
	r, g, bl, a := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: bl, A: a}
}

// Capture copies a rendered frame into a straight-alpha image.
func Capture(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, bl, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			bl = uint8(min(int(bl)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = bl
		img.Pix[i+3] = a
	}
	return img
}
