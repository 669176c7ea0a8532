// Package surface provides stride-aware views into an indexed pixel buffer.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var ErrInvalidSize = errors.New("invalid surface size")

type Surface struct {
	// Pix holds palette indices and is shared by every view derived from the
	// same buffer. The pixel at local (col, row) is Pix[Offset+row*Stride()+col].
	Pix []uint8
	// Offset is the index of the view's top-left pixel in Pix.
	Offset int
	// X and Y place the top-left pixel in the coordinate space the view was
	// derived from. Each pixel covers 1<<Zoom units of that space.
	X, Y int
	// Width and Height are the view's dimensions in pixels.
	Width, Height int
	// Pitch is the number of pixels per row beyond Width.
	Pitch int
	// Zoom is the zoom shift applied to coordinates.
	Zoom int
}

// New allocates a packed surface of the given size with its origin at (0, 0).
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	return &Surface{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
	}, nil
}

// Resize reallocates the backing buffer. Views derived before the resize
// keep pointing at the old buffer.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	s.Pix = make([]uint8, width*height)
	s.Offset = 0
	s.Width, s.Height = width, height
	s.Pitch = 0
	return nil
}

func (s *Surface) Stride() int {
	return s.Width + s.Pitch
}

// Empty reports whether nothing can be drawn into s.
func (s *Surface) Empty() bool {
	return s == nil || s.Width <= 0 || s.Height <= 0
}

// Bounds returns the area covered by s in its own coordinate space.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.Width<<s.Zoom, s.Y+s.Height<<s.Zoom)
}

// Index returns the Pix index of the local pixel (col, row).
func (s *Surface) Index(col, row int) (int, bool) {
	if col < 0 || row < 0 || col >= s.Width || row >= s.Height {
		return 0, false
	}
	return s.Offset + row*s.Stride() + col, true
}

func (s *Surface) At(col, row int) uint8 {
	i, ok := s.Index(col, row)
	if !ok {
		return 0
	}
	return s.Pix[i]
}

func (s *Surface) Set(col, row int, v uint8) {
	if i, ok := s.Index(col, row); ok {
		s.Pix[i] = v
	}
}

// Row returns the pixels of local row y. The slice is capped at Width so it
// cannot be extended into the pitch or the next row.
func (s *Surface) Row(y int) []uint8 {
	if s.Empty() || y < 0 || y >= s.Height {
		return nil
	}
	start := s.Offset + y*s.Stride()
	return s.Pix[start : start+s.Width : start+s.Width]
}

func (s *Surface) Fill(v uint8) {
	for y := range s.Height {
		row := s.Row(y)
		for i := range row {
			row[i] = v
		}
	}
}

// Clip returns a view of the intersection of s with the rectangle
// [left, left+width) x [top, top+height), expressed in the coordinate space of
// s. The pitch of the view grows by the pixels skipped on the left and right
// edges, so rows stay addressable without copying. Clip returns nil when the
// intersection is empty.
func (s *Surface) Clip(left, width, top, height int) *Surface {
	if s.Empty() || width <= 0 || height <= 0 {
		return nil
	}

	x0 := max(ceilShift(left-s.X, s.Zoom), 0)
	x1 := min(ceilShift(left+width-s.X, s.Zoom), s.Width)
	y0 := max(ceilShift(top-s.Y, s.Zoom), 0)
	y1 := min(ceilShift(top+height-s.Y, s.Zoom), s.Height)
	if x1 <= x0 || y1 <= y0 {
		return nil
	}

	d := *s
	d.Offset = s.Offset + y0*s.Stride() + x0
	d.X = s.X + x0<<s.Zoom
	d.Y = s.Y + y0<<s.Zoom
	d.Width = x1 - x0
	d.Height = y1 - y0
	d.Pitch = s.Pitch + (s.Width - d.Width)
	return &d
}

// ClipRect is Clip for an image.Rectangle.
func (s *Surface) ClipRect(r image.Rectangle) *Surface {
	return s.Clip(r.Min.X, r.Dx(), r.Min.Y, r.Dy())
}

// Zoomed returns a view of the same pixels where each pixel covers
// 1<<zoom units and the top-left pixel sits at (x, y).
func (s *Surface) Zoomed(zoom, x, y int) *Surface {
	if s.Empty() || zoom < 0 {
		return nil
	}

	d := *s
	d.Zoom = zoom
	d.X, d.Y = x, y
	return &d
}

// ToLocal converts a point in the coordinate space of s to local pixel
// coordinates, rounding towards negative infinity.
func (s *Surface) ToLocal(x, y int) (int, int) {
	return (x - s.X) >> s.Zoom, (y - s.Y) >> s.Zoom
}

// Clone copies the visible pixels of s into a new packed surface.
func (s *Surface) Clone() *Surface {
	if s.Empty() {
		return nil
	}

	d := &Surface{
		Pix:    make([]uint8, s.Width*s.Height),
		X:      s.X,
		Y:      s.Y,
		Width:  s.Width,
		Height: s.Height,
		Zoom:   s.Zoom,
	}
	for y := range s.Height {
		copy(d.Row(y), s.Row(y))
	}
	return d
}

// Image returns an image.Paletted sharing the pixels of s.
func (s *Surface) Image(pal color.Palette) *image.Paletted {
	if s.Empty() {
		return image.NewPaletted(image.Rectangle{}, pal)
	}

	end := s.Offset + (s.Height-1)*s.Stride() + s.Width
	return &image.Paletted{
		Pix:     s.Pix[s.Offset:end:end],
		Stride:  s.Stride(),
		Rect:    image.Rect(0, 0, s.Width, s.Height),
		Palette: pal,
	}
}

func ceilShift(v, shift int) int {
	return -((-v) >> shift)
}
