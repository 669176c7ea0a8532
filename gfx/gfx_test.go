package gfx

import (
	"bytes"
	"image"
	"testing"

	"rctdraw/asset"
	"rctdraw/palette"
	"rctdraw/surface"
)

func newSurface(t *testing.T, w, h int) *surface.Surface {
	t.Helper()
	s, err := surface.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func count(s *surface.Surface, v uint8) int {
	n := 0
	for y := range s.Height {
		for _, p := range s.Row(y) {
			if p == v {
				n++
			}
		}
	}
	return n
}

func TestFillRectSolidClipped(t *testing.T) {
	s := newSurface(t, 16, 8)
	var rd Renderer
	rd.FillRect(s, image.Rect(-4, 6, 3, 20), Solid(5))

	if got := count(s, 5); got != 3*2 {
		t.Fatalf("filled %d pixels, want 6", got)
	}
	if s.At(2, 7) != 5 || s.At(3, 7) != 0 || s.At(0, 5) != 0 {
		t.Error("fill outside the clamped rectangle")
	}

	rd.FillRect(s, image.Rect(20, 0, 30, 8), Solid(9))
	if count(s, 9) != 0 {
		t.Error("offscreen fill wrote pixels")
	}
}

func TestFillRectCrosshatchParity(t *testing.T) {
	tests := []image.Rectangle{
		image.Rect(0, 0, 7, 5),
		image.Rect(-3, -2, 7, 8),
		image.Rect(-1, 0, 4, 4),
		image.Rect(2, -5, 9, 3),
	}

	for _, r := range tests {
		s := newSurface(t, 10, 10)
		var rd Renderer
		rd.FillRect(s, r, Crosshatch(1))

		vis := r.Intersect(image.Rect(0, 0, 10, 10))
		for y := range 10 {
			for x := range 10 {
				in := image.Pt(x, y).In(vis)
				want := in && (x-r.Min.X+y-r.Min.Y)%2 == 0
				if got := s.At(x, y) == 1; got != want {
					t.Fatalf("rect %v: pixel (%d,%d) filled=%v, want %v", r, x, y, got, want)
				}
			}
		}
	}
}

func TestFillRectRemap(t *testing.T) {
	s := newSurface(t, 4, 4)
	s.Fill(3)

	var maps palette.Maps
	shift := palette.IdentityRemap()
	shift[3] = 7
	sel := maps.AddRemap(shift)
	rd := NewRenderer(nil, &maps)

	rd.FillRect(s, image.Rect(1, 1, 3, 3), Remapped(uint8(sel)))
	if count(s, 7) != 4 || count(s, 3) != 12 {
		t.Errorf("remap fill touched the wrong pixels")
	}

	// a missing table draws nothing
	rd.FillRect(s, image.Rect(0, 0, 4, 4), Remapped(9))
	if count(s, 7) != 4 {
		t.Error("fill with an unknown remap changed pixels")
	}
}

func TestFillRectStippleAnchored(t *testing.T) {
	s := newSurface(t, 20, 20)
	var rd Renderer
	rd.FillRect(s, image.Rect(3, 5, 17, 16), Stippled(4, 0))

	for y := 5; y < 16; y++ {
		for x := 3; x < 17; x++ {
			if got, want := s.At(x, y) == 4, (x+y)%2 == 0; got != want {
				t.Fatalf("pixel (%d,%d) filled=%v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawRectOutlineAndInset(t *testing.T) {
	s := newSurface(t, 8, 8)
	var rd Renderer
	rd.DrawRectOutline(s, image.Rect(1, 1, 6, 5), 2)
	if got := count(s, 2); got != 2*5+2*2 {
		t.Errorf("outline has %d pixels, want 14", got)
	}

	s.Fill(0)
	rd.FillRectInset(s, image.Rect(0, 0, 4, 4), 1, 2, 3, false)
	if s.At(0, 0) != 1 || s.At(3, 3) != 3 || s.At(1, 1) != 2 || s.At(2, 2) != 2 {
		t.Errorf("unexpected bevel: % x", s.Pix)
	}
	rd.FillRectInset(s, image.Rect(0, 0, 4, 4), 1, 2, 3, true)
	if s.At(0, 0) != 3 || s.At(3, 3) != 1 {
		t.Error("pressed bevel did not swap edges")
	}
}

func TestSetPixel(t *testing.T) {
	s := newSurface(t, 4, 4)
	var rd Renderer
	rd.SetPixel(s, 2, 3, 8)
	rd.SetPixel(s, -1, 3, 8)
	rd.SetPixel(s, 4, 0, 8)
	if count(s, 8) != 1 || s.At(2, 3) != 8 {
		t.Error("SetPixel wrote outside its target")
	}
}

func TestDrawLine(t *testing.T) {
	var rd Renderer

	t.Run("horizontal", func(t *testing.T) {
		s := newSurface(t, 16, 8)
		rd.DrawLine(s, 0, 2, 9, 2, 1)
		if got := count(s, 1); got != 10 {
			t.Errorf("got %d pixels, want 10", got)
		}
	})

	t.Run("shallow one per column", func(t *testing.T) {
		s := newSurface(t, 16, 8)
		rd.DrawLine(s, 9, 3, 0, 0, 1)
		for x := range 10 {
			n := 0
			for y := range 8 {
				if s.At(x, y) == 1 {
					n++
				}
			}
			if n != 1 {
				t.Fatalf("column %d has %d pixels", x, n)
			}
		}
		if s.At(0, 0) != 1 || s.At(9, 3) != 1 {
			t.Error("endpoints missing")
		}
	})

	t.Run("steep one per row", func(t *testing.T) {
		s := newSurface(t, 8, 16)
		rd.DrawLine(s, 1, 0, 4, 12, 1)
		for y := range 13 {
			n := 0
			for x := range 8 {
				if s.At(x, y) == 1 {
					n++
				}
			}
			if n != 1 {
				t.Fatalf("row %d has %d pixels", y, n)
			}
		}
	})

	t.Run("clipped", func(t *testing.T) {
		s := newSurface(t, 8, 8)
		rd.DrawLine(s, -10, 4, 20, 4, 1)
		if got := count(s, 1); got != 8 {
			t.Errorf("got %d pixels, want 8", got)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		s := newSurface(t, 8, 8)
		rd.DrawLine(s, -5, 0, -1, 7, 1)
		rd.DrawLine(s, 0, 8, 7, 12, 1)
		if count(s, 1) != 0 {
			t.Error("line beyond one side wrote pixels")
		}
	})
}

func spritePixels(w, h int) []uint8 {
	pix := make([]uint8, w*h)
	for y := range h {
		for x := range w {
			if (x/3+y)%2 == 0 {
				pix[y*w+x] = uint8(1 + (x+y)%200)
			}
		}
	}
	return pix
}

// testTable holds a raw and an RLE copy of the same 20x12 sprite, and a
// full/half pair linked as zoomed variants.
func testTable(t *testing.T) *asset.Table {
	t.Helper()
	var b asset.Builder
	pix := spritePixels(20, 12)
	if _, err := b.AddRaw(pix, 20, 12, -10, -6); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddRLE(pix, 20, 12, -10, -6); err != nil {
		t.Fatal(err)
	}
	half, err := b.AddRaw(bytes.Repeat([]uint8{42}, 4*3), 4, 3, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	full, err := b.AddRaw(bytes.Repeat([]uint8{17}, 8*6), 8, 6, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.LinkZoomed(full, half); err != nil {
		t.Fatal(err)
	}
	return b.Table()
}

func TestDrawSpriteRLEMatchesRaw(t *testing.T) {
	var maps palette.Maps
	sel := maps.AddRemap(palette.IdentityRemap())
	rd := NewRenderer(testTable(t), &maps)

	positions := []image.Point{{10, 6}, {0, 0}, {3, -2}, {25, 15}, {-5, 9}, {12, 12}}
	for _, mode := range []asset.Mode{asset.Plain, asset.UsePalette} {
		for _, p := range positions {
			a, b := newSurface(t, 24, 16), newSurface(t, 24, 16)
			if mode != asset.Plain {
				a.Fill(0x33)
				b.Fill(0x33)
			}
			rd.DrawSprite(a, asset.NewImageID(0, mode, uint8(sel)), p.X, p.Y)
			rd.DrawSprite(b, asset.NewImageID(1, mode, uint8(sel)), p.X, p.Y)
			if !bytes.Equal(a.Pix, b.Pix) {
				t.Fatalf("mode %v at %v: RLE and raw blits differ", mode, p)
			}
		}
	}
}

func TestDrawSpriteClippedView(t *testing.T) {
	rd := NewRenderer(testTable(t), nil)
	full := newSurface(t, 24, 16)
	rd.DrawSprite(full, asset.NewImageID(1, asset.Plain, 0), 10, 6)

	screen := newSurface(t, 24, 16)
	view := screen.Clip(5, 9, 3, 6)
	rd.DrawSprite(view, asset.NewImageID(1, asset.Plain, 0), 10, 6)

	for y := range 16 {
		for x := range 24 {
			want := uint8(0)
			if x >= 5 && x < 14 && y >= 3 && y < 9 {
				want = full.At(x, y)
			}
			if got := screen.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestDrawSpriteOffscreen(t *testing.T) {
	rd := NewRenderer(testTable(t), nil)
	s := newSurface(t, 24, 16)
	for _, p := range []image.Point{{-11, 0}, {34, 0}, {0, -7}, {0, 22}} {
		rd.DrawSprite(s, asset.NewImageID(1, asset.Plain, 0), p.X, p.Y)
		rd.DrawSprite(s, asset.NewImageID(0, asset.Plain, 0), p.X, p.Y)
	}
	rd.DrawSprite(s, asset.NewImageID(99, asset.Plain, 0), 10, 6)
	if count(s, 0) != len(s.Pix) {
		t.Error("offscreen or unknown sprite wrote pixels")
	}
}

func TestDrawSpriteModes(t *testing.T) {
	var b asset.Builder
	if _, err := b.AddRaw([]uint8{0, 1, 2, 0}, 4, 1, 0, 0); err != nil {
		t.Fatal(err)
	}

	var maps palette.Maps
	remap := palette.IdentityRemap()
	remap[1], remap[2], remap[9] = 11, 0, 19
	rsel := maps.AddRemap(remap)
	blend := new(palette.Blend)
	blend[1<<8|9] = 0
	blend[2<<8|9] = 29
	bsel := maps.AddBlend(blend)
	rd := NewRenderer(b.Table(), &maps)

	tests := []struct {
		mode asset.Mode
		sel  int
		want []uint8
	}{
		{asset.Plain, 0, []uint8{0, 1, 2, 0}},
		{asset.UsePalette, rsel, []uint8{9, 11, 9, 9}},
		{asset.MixBackground, bsel, []uint8{9, 0, 29, 9}},
		{asset.UseAndMix, rsel, []uint8{9, 19, 19, 9}},
	}

	for _, tc := range tests {
		s := newSurface(t, 4, 1)
		s.Fill(9)
		rd.DrawSprite(s, asset.NewImageID(0, tc.mode, uint8(tc.sel)), 0, 0)
		if !bytes.Equal(s.Pix, tc.want) {
			t.Errorf("mode %v: got %v, want %v", tc.mode, s.Pix, tc.want)
		}

		// selectors past the loaded tables draw nothing
		if tc.mode != asset.Plain {
			s.Fill(9)
			rd.DrawSprite(s, asset.NewImageID(0, tc.mode, 200), 0, 0)
			if count(s, 9) != 4 {
				t.Errorf("mode %v with a missing table changed pixels", tc.mode)
			}
		}
	}
}

func TestDrawSpriteSolid(t *testing.T) {
	rd := NewRenderer(testTable(t), nil)
	a, b := newSurface(t, 24, 16), newSurface(t, 24, 16)
	rd.DrawSprite(a, asset.NewImageID(1, asset.Plain, 0), 10, 6)
	rd.DrawSpriteSolid(b, asset.NewImageID(0, asset.Plain, 0), 10, 6, 250)

	for i := range a.Pix {
		if (a.Pix[i] != 0) != (b.Pix[i] == 250) {
			t.Fatalf("silhouette differs at %d", i)
		}
	}
}

func TestDrawSpriteZoomed(t *testing.T) {
	tbl := testTable(t)
	rd := NewRenderer(tbl, nil)

	t.Run("variant", func(t *testing.T) {
		s := newSurface(t, 8, 8)
		rd.DrawSprite(s.Zoomed(1, 0, 0), asset.NewImageID(3, asset.Plain, 0), 4, 2)
		if count(s, 42) != 4*3 || count(s, 17) != 0 {
			t.Fatalf("zoomed variant not used: %v", s.Pix)
		}
		if s.At(2, 1) != 42 || s.At(1, 1) != 0 {
			t.Error("variant placed at the wrong position")
		}
	})

	t.Run("sampled", func(t *testing.T) {
		s := newSurface(t, 24, 16)
		z := s.Zoomed(1, 0, 0)
		rd.DrawSprite(z, asset.NewImageID(1, asset.Plain, 0), 10, 6)

		full := newSurface(t, 48, 32)
		rd.DrawSprite(full, asset.NewImageID(0, asset.Plain, 0), 10, 6)
		for y := range 16 {
			for x := range 24 {
				if s.At(x, y) != full.At(2*x, 2*y) {
					t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, s.At(x, y), full.At(2*x, 2*y))
				}
			}
		}
	})

	t.Run("no zoom draw", func(t *testing.T) {
		var b asset.Builder
		b.Add(asset.Sprite{Width: 2, Height: 2, Flags: asset.FlagBitmap | asset.FlagNoZoomDraw, Pixels: []uint8{1, 1, 1, 1}})
		rd := NewRenderer(b.Table(), nil)

		s := newSurface(t, 4, 4)
		rd.DrawSprite(s.Zoomed(1, 0, 0), asset.NewImageID(0, asset.Plain, 0), 0, 0)
		if count(s, 1) != 0 {
			t.Error("sprite drawn on a zoomed surface")
		}
		rd.DrawSprite(s, asset.NewImageID(0, asset.Plain, 0), 0, 0)
		if count(s, 1) != 4 {
			t.Error("sprite not drawn unzoomed")
		}
	})
}
