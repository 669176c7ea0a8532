package gfx

import "rctdraw/surface"

// DrawLine draws a one pixel wide line from (x0, y0) to (x1, y1), both
// endpoints included. Shallow lines are written as horizontal runs, one span
// per row; steep lines one pixel at a time.
func (rd *Renderer) DrawLine(dst *surface.Surface, x0, y0, x1, y1 int, v uint8) {
	if dst.Empty() {
		return
	}
	x0, y0 = dst.ToLocal(x0, y0)
	x1, y1 = dst.ToLocal(x1, y1)

	w, h := dst.Width, dst.Height
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= w && x1 >= w) || (y0 >= h && y1 >= h) {
		return
	}

	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx, dy := x1-x0, abs(y1-y0)
	step := 1
	if y0 > y1 {
		step = -1
	}

	err := dx / 2
	y, start := y0, x0
	for x := x0; x <= x1; x++ {
		if steep {
			hspan(dst, y, x, 1, v)
		}
		err -= dy
		if err >= 0 && x != x1 {
			continue
		}
		if !steep {
			hspan(dst, start, y, x-start+1, v)
		}
		if err < 0 {
			y += step
			err += dx
		}
		start = x + 1
	}
}

// hspan writes n pixels of row starting at col, clipped to dst.
func hspan(dst *surface.Surface, col, row, n int, v uint8) {
	if row < 0 || row >= dst.Height {
		return
	}
	if col < 0 {
		n += col
		col = 0
	}
	n = min(n, dst.Width-col)
	if n <= 0 {
		return
	}

	span := dst.Row(row)[col : col+n]
	for i := range span {
		span[i] = v
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
