package compositor

import (
	"image"

	"rctdraw/surface"
)

// Window is anything the compositor can draw. Paint receives a view of the
// screen clipped to r, in screen coordinates, and must not keep it after
// returning.
type Window interface {
	Bounds() image.Rectangle
	// Transparent windows let the windows below them show through; they are
	// painted on top of whatever is beneath instead of occluding it.
	Transparent() bool
	Paint(view *surface.Surface, r image.Rectangle)
}

// Stack orders windows from back (index 0) to front.
type Stack struct {
	windows []Window
}

// Push adds w in front of every other window.
func (s *Stack) Push(w Window) {
	s.windows = append(s.windows, w)
}

func (s *Stack) Remove(w Window) bool {
	i := s.Index(w)
	if i < 0 {
		return false
	}
	s.windows = append(s.windows[:i], s.windows[i+1:]...)
	return true
}

// Raise moves w to the front.
func (s *Stack) Raise(w Window) bool {
	i := s.Index(w)
	if i < 0 {
		return false
	}
	copy(s.windows[i:], s.windows[i+1:])
	s.windows[len(s.windows)-1] = w
	return true
}

func (s *Stack) At(i int) Window {
	if i < 0 || i >= len(s.windows) {
		return nil
	}
	return s.windows[i]
}

func (s *Stack) Len() int {
	return len(s.windows)
}

// Index returns the position of w, or -1.
func (s *Stack) Index(w Window) int {
	for i, v := range s.windows {
		if v == w {
			return i
		}
	}
	return -1
}

// TopAt returns the frontmost window containing p, or nil.
func (s *Stack) TopAt(p image.Point) Window {
	for i := len(s.windows) - 1; i >= 0; i-- {
		if p.In(s.windows[i].Bounds()) {
			return s.windows[i]
		}
	}
	return nil
}
