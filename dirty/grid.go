// Package dirty tracks which blocks of the screen need to be redrawn.
package dirty

import (
	"fmt"
	"image"
)

const (
	DefaultShiftX = 6
	DefaultShiftY = 3
)

// Grid is a coarse map of the screen where each cell covers a block of
// 1<<ShiftX by 1<<ShiftY pixels. The grid carries one extra column and row
// beyond the blocks needed to cover the screen.
type Grid struct {
	shiftX, shiftY int
	width, height  int
	cols, rows     int
	blocks         []bool
}

func New(width, height, shiftX, shiftY int) (*Grid, error) {
	if shiftX < 0 || shiftY < 0 || shiftX > 16 || shiftY > 16 {
		return nil, fmt.Errorf("invalid block shift %d,%d", shiftX, shiftY)
	}

	g := &Grid{shiftX: shiftX, shiftY: shiftY}
	if err := g.Resize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// Resize rebuilds the grid for a new screen size. All blocks start clean.
func (g *Grid) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid grid size %dx%d", width, height)
	}

	g.width, g.height = width, height
	g.cols = ceilDiv(width, g.shiftX) + 1
	g.rows = ceilDiv(height, g.shiftY) + 1
	g.blocks = make([]bool, g.cols*g.rows)
	return nil
}

func ceilDiv(v, shift int) int {
	return (v + 1<<shift - 1) >> shift
}

func (g *Grid) Columns() int { return g.cols }
func (g *Grid) Rows() int    { return g.rows }

// BlockSize returns the size of one block in pixels.
func (g *Grid) BlockSize() image.Point {
	return image.Pt(1<<g.shiftX, 1<<g.shiftY)
}

// Mark flags every block touched by r, given in screen pixels with
// exclusive max. r is clamped to the screen first; empty rectangles are
// ignored.
func (g *Grid) Mark(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, g.width, g.height))
	if r.Empty() {
		return
	}

	c0, c1 := r.Min.X>>g.shiftX, (r.Max.X-1)>>g.shiftX
	r0, r1 := r.Min.Y>>g.shiftY, (r.Max.Y-1)>>g.shiftY
	for y := r0; y <= r1; y++ {
		row := g.blocks[y*g.cols:]
		for x := c0; x <= c1; x++ {
			row[x] = true
		}
	}
}

func (g *Grid) MarkAll() {
	g.Mark(image.Rect(0, 0, g.width, g.height))
}

func (g *Grid) Dirty(col, row int) bool {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return false
	}
	return g.blocks[row*g.cols+col]
}

// Any reports whether some block is marked.
func (g *Grid) Any() bool {
	for _, b := range g.blocks {
		if b {
			return true
		}
	}
	return false
}

// Sweep clears every marked block, coalescing neighbouring blocks into
// rectangles handed to fn in screen pixels. Columns are scanned outermost.
// From a marked block the rectangle first grows right along its row, then
// down while every block of the widened span is marked.
func (g *Grid) Sweep(fn func(image.Rectangle)) int {
	screen := image.Rect(0, 0, g.width, g.height)
	n := 0
	for x := range g.cols {
		for y := range g.rows {
			if !g.blocks[y*g.cols+x] {
				continue
			}

			right := x + 1
			for right < g.cols && g.blocks[y*g.cols+right] {
				right++
			}
			bottom := y + 1
			for bottom < g.rows && g.spanDirty(bottom, x, right) {
				bottom++
			}

			for yy := y; yy < bottom; yy++ {
				clear(g.blocks[yy*g.cols+x : yy*g.cols+right])
			}

			r := image.Rect(x<<g.shiftX, y<<g.shiftY, right<<g.shiftX, bottom<<g.shiftY).Intersect(screen)
			if !r.Empty() {
				n++
				fn(r)
			}
		}
	}
	return n
}

func (g *Grid) spanDirty(row, left, right int) bool {
	for _, b := range g.blocks[row*g.cols+left : row*g.cols+right] {
		if !b {
			return false
		}
	}
	return true
}
