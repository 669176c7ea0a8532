// Package compositor owns the screen and redraws the parts of it that have
// been invalidated, painting each window only where it is visible.
package compositor

import (
	"image"
	"log/slog"

	"rctdraw/dirty"
	"rctdraw/internal/logging"
	"rctdraw/surface"
)

// SetLogger installs the logger used by the library packages. Pass nil to
// silence them again.
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

func Logger() *slog.Logger {
	return logging.Logger()
}

type Option func(*options)

type options struct {
	shiftX, shiftY int
	logger         *slog.Logger
}

// WithBlockShift sets the size of the dirty blocks to 1<<x by 1<<y pixels.
func WithBlockShift(x, y int) Option {
	return func(o *options) {
		o.shiftX, o.shiftY = x, y
	}
}

// WithLogger overrides the package logger for one compositor.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Stats describes one redraw.
type Stats struct {
	// Rects holds the swept rectangles in screen pixels.
	Rects []image.Rectangle
	// Pieces counts the visible window regions found by splitting.
	Pieces int
	// Paints counts Paint calls, overlays included.
	Paints int
}

type Compositor struct {
	screen  *surface.Surface
	grid    *dirty.Grid
	windows Stack
	logger  *slog.Logger
}

func New(width, height int, opts ...Option) (*Compositor, error) {
	o := options{
		shiftX: dirty.DefaultShiftX,
		shiftY: dirty.DefaultShiftY,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Logger()
	}

	screen, err := surface.New(width, height)
	if err != nil {
		return nil, err
	}
	grid, err := dirty.New(width, height, o.shiftX, o.shiftY)
	if err != nil {
		return nil, err
	}

	return &Compositor{
		screen: screen,
		grid:   grid,
		logger: o.logger.With("component", "compositor"),
	}, nil
}

// Screen returns the surface windows are composited into.
func (c *Compositor) Screen() *surface.Surface {
	return c.screen
}

func (c *Compositor) Windows() *Stack {
	return &c.windows
}

// Invalidate marks [left, right) x [top, bottom) for the next Redraw.
func (c *Compositor) Invalidate(left, top, right, bottom int) {
	c.grid.Mark(image.Rect(left, top, right, bottom))
}

func (c *Compositor) InvalidateRect(r image.Rectangle) {
	c.grid.Mark(r)
}

// InvalidateWindow marks the area currently covered by w.
func (c *Compositor) InvalidateWindow(w Window) {
	c.grid.Mark(w.Bounds())
}

func (c *Compositor) InvalidateAll() {
	c.grid.MarkAll()
}

// Pending reports whether some part of the screen awaits a redraw.
func (c *Compositor) Pending() bool {
	return c.grid.Any()
}

// Resize reallocates the screen and the dirty grid and marks everything for
// redraw. Views returned by earlier calls to Screen keep the old pixels.
func (c *Compositor) Resize(width, height int) error {
	if err := c.screen.Resize(width, height); err != nil {
		return err
	}
	if err := c.grid.Resize(width, height); err != nil {
		return err
	}
	c.grid.MarkAll()
	c.logger.Debug("resized", "width", width, "height", height)
	return nil
}

// Redraw repaints every invalidated block and clears the marks.
func (c *Compositor) Redraw() Stats {
	var st Stats
	c.grid.Sweep(func(r image.Rectangle) {
		st.Rects = append(st.Rects, r)
		c.drawRect(r, &st)
	})

	if len(st.Rects) > 0 {
		c.logger.Debug("redraw", "rects", len(st.Rects), "pieces", st.Pieces, "paints", st.Paints)
	}
	return st
}

// RedrawRect repaints r immediately, leaving the dirty marks untouched.
func (c *Compositor) RedrawRect(r image.Rectangle) Stats {
	var st Stats
	r = r.Intersect(c.screen.Bounds())
	if r.Empty() {
		return st
	}

	st.Rects = append(st.Rects, r)
	c.drawRect(r, &st)
	return st
}

func (c *Compositor) drawRect(r image.Rectangle, st *Stats) {
	for i := range c.windows.Len() {
		w := c.windows.At(i)
		if w.Transparent() || !w.Bounds().Overlaps(r) {
			continue
		}
		c.drawWindow(i, r, st)
	}
}

// drawWindow paints the parts of r where window i is not hidden by an opaque
// window in front of it. The first such occluder splits r in two, at its
// left edge, else its right edge, else its top, else its bottom, and both
// halves are handled recursively. An occluder covering r entirely ends the
// recursion without painting.
func (c *Compositor) drawWindow(i int, r image.Rectangle, st *Stats) {
	for j := i + 1; j < c.windows.Len(); j++ {
		top := c.windows.At(j)
		if top.Transparent() {
			continue
		}
		b := top.Bounds()
		if !b.Overlaps(r) {
			continue
		}

		switch {
		case b.Min.X > r.Min.X:
			c.drawWindow(i, image.Rect(r.Min.X, r.Min.Y, b.Min.X, r.Max.Y), st)
			c.drawWindow(i, image.Rect(b.Min.X, r.Min.Y, r.Max.X, r.Max.Y), st)
		case b.Max.X < r.Max.X:
			c.drawWindow(i, image.Rect(r.Min.X, r.Min.Y, b.Max.X, r.Max.Y), st)
			c.drawWindow(i, image.Rect(b.Max.X, r.Min.Y, r.Max.X, r.Max.Y), st)
		case b.Min.Y > r.Min.Y:
			c.drawWindow(i, image.Rect(r.Min.X, r.Min.Y, r.Max.X, b.Min.Y), st)
			c.drawWindow(i, image.Rect(r.Min.X, b.Min.Y, r.Max.X, r.Max.Y), st)
		case b.Max.Y < r.Max.Y:
			c.drawWindow(i, image.Rect(r.Min.X, r.Min.Y, r.Max.X, b.Max.Y), st)
			c.drawWindow(i, image.Rect(r.Min.X, b.Max.Y, r.Max.X, r.Max.Y), st)
		}
		return
	}

	c.drawVisible(i, r, st)
}

// drawVisible paints window i and every window in front of it over r. None
// of those can be opaque once drawWindow got here.
func (c *Compositor) drawVisible(i int, r image.Rectangle, st *Stats) {
	r = r.Intersect(c.windows.At(i).Bounds())
	if r.Empty() {
		return
	}
	st.Pieces++

	for j := i; j < c.windows.Len(); j++ {
		w := c.windows.At(j)
		clip := r.Intersect(w.Bounds())
		view := c.screen.ClipRect(clip)
		if view == nil {
			continue
		}
		st.Paints++
		w.Paint(view, clip)
	}
}
