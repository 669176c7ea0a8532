package dirty

import (
	"image"
	"testing"
)

func TestGridSize(t *testing.T) {
	tests := []struct {
		w, h, sx, sy int
		cols, rows   int
	}{
		{640, 480, DefaultShiftX, DefaultShiftY, 11, 61},
		{64, 8, DefaultShiftX, DefaultShiftY, 2, 2},
		{65, 9, DefaultShiftX, DefaultShiftY, 3, 3},
		{100, 100, 0, 0, 101, 101},
	}

	for _, tc := range tests {
		g, err := New(tc.w, tc.h, tc.sx, tc.sy)
		if err != nil {
			t.Fatal(err)
		}
		if g.Columns() != tc.cols || g.Rows() != tc.rows {
			t.Errorf("%dx%d: got %dx%d blocks, want %dx%d", tc.w, tc.h, g.Columns(), g.Rows(), tc.cols, tc.rows)
		}
	}

	if _, err := New(0, 10, 6, 3); err == nil {
		t.Error("expected an error for an empty screen")
	}
}

func TestMarkClamps(t *testing.T) {
	g, _ := New(640, 480, DefaultShiftX, DefaultShiftY)
	g.Mark(image.Rect(-100, -100, 0, 480))
	g.Mark(image.Rect(700, 0, 800, 10))
	g.Mark(image.Rect(10, 10, 10, 20))
	if g.Any() {
		t.Fatal("empty or offscreen rectangles marked blocks")
	}

	g.Mark(image.Rect(63, 7, 65, 9))
	for _, b := range []image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if !g.Dirty(b.X, b.Y) {
			t.Errorf("block %v not marked", b)
		}
	}
	if g.Dirty(2, 0) || g.Dirty(0, 2) {
		t.Error("marked beyond the touched blocks")
	}
}

func TestSweepExactCover(t *testing.T) {
	const w, h = 300, 200
	g, _ := New(w, h, 5, 3)

	marks := []image.Rectangle{
		image.Rect(10, 10, 90, 30),
		image.Rect(50, 20, 140, 95),
		image.Rect(250, 150, 400, 300),
		image.Rect(0, 199, 1, 200),
	}
	for _, r := range marks {
		g.Mark(r)
	}

	covered := make([]int, w*h)
	n := g.Sweep(func(r image.Rectangle) {
		if !r.In(image.Rect(0, 0, w, h)) {
			t.Fatalf("swept rect %v beyond the screen", r)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				covered[y*w+x]++
			}
		}
	})
	if n == 0 {
		t.Fatal("nothing swept")
	}

	for _, r := range marks {
		r = r.Intersect(image.Rect(0, 0, w, h))
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if covered[y*w+x] != 1 {
					t.Fatalf("pixel (%d,%d) covered %d times", x, y, covered[y*w+x])
				}
			}
		}
	}
	for i, c := range covered {
		if c > 1 {
			t.Fatalf("pixel %d covered %d times", i, c)
		}
	}

	if g.Any() {
		t.Error("blocks still marked after sweep")
	}
	if g.Sweep(func(image.Rectangle) { t.Error("second sweep found work") }) != 0 {
		t.Error("second sweep returned rectangles")
	}
}

func TestSweepCoalesces(t *testing.T) {
	g, _ := New(640, 480, DefaultShiftX, DefaultShiftY)
	g.MarkAll()

	var got []image.Rectangle
	g.Sweep(func(r image.Rectangle) { got = append(got, r) })
	if len(got) != 1 || got[0] != image.Rect(0, 0, 640, 480) {
		t.Errorf("full invalidation swept as %v", got)
	}

	// an L shape: the first column's span cannot grow down past the corner
	g.Mark(image.Rect(0, 0, 128, 8))
	g.Mark(image.Rect(0, 8, 64, 16))
	got = got[:0]
	g.Sweep(func(r image.Rectangle) { got = append(got, r) })
	want := []image.Rectangle{image.Rect(0, 0, 128, 8), image.Rect(0, 8, 64, 16)}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}
