package view

import (
	"image"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"rctdraw/asset"
	"rctdraw/compositor"
	"rctdraw/gfx"
	"rctdraw/internal/scene"
	"rctdraw/term"
)

func testAssets(t *testing.T) *asset.Table {
	t.Helper()
	var b asset.Builder
	if _, err := b.AddRLE([]uint8{0, 30, 30, 0, 30, 30, 30, 30}, 4, 2, 0, 0); err != nil {
		t.Fatal(err)
	}
	return b.Table()
}

func newCmd(t *testing.T) *CLICmd {
	t.Helper()
	c := &CLICmd{Palette: "vga16", Step: 3}
	if err := c.Validate(nil); err != nil {
		t.Fatal(err)
	}
	return c
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func TestHandleKeys(t *testing.T) {
	c := newCmd(t)
	screen := newScreen(t, 60, 20)
	p := term.NewPresenter(screen, c.Pal)
	w, h := p.Size()
	comp, err := compositor.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	sc := scene.New(comp, gfx.NewRenderer(testAssets(t), scene.NewMaps(c.Pal)))
	comp.Redraw()

	r := sc.Focused().Rect
	if !c.handle(sc, p, tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)) {
		t.Fatal("arrow key stopped the view")
	}
	if sc.Focused().Rect != r.Add(image.Pt(3, 0)) {
		t.Errorf("focused window at %v, want %v", sc.Focused().Rect, r.Add(image.Pt(3, 0)))
	}
	if !comp.Pending() {
		t.Error("move did not invalidate")
	}

	first := sc.Focused()
	c.handle(sc, p, tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if sc.Focused() == first {
		t.Error("tab did not cycle focus")
	}

	screen.SetSize(80, 30)
	c.handle(sc, p, tcell.NewEventResize(80, 30))
	if b := comp.Screen().Bounds(); b != image.Rect(0, 0, 80, 60) {
		t.Errorf("compositor not resized: %v", b)
	}

	if c.handle(sc, p, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q did not stop the view")
	}
	if c.handle(sc, p, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape did not stop the view")
	}
}

func TestRunPresentsAndQuits(t *testing.T) {
	c := newCmd(t)
	screen := newScreen(t, 40, 12)

	assets := testAssets(t)

	done := make(chan error, 1)
	go func() {
		done <- c.run(screen, assets)
	}()

	// leave time for a few frames before quitting
	time.Sleep(10 * frameTime)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("view did not quit")
	}

	if r, _, _, _ := screen.GetContent(0, 0); r != '▀' {
		t.Errorf("screen not presented, cell (0,0) = %q", r)
	}
}

func TestValidate(t *testing.T) {
	c := &CLICmd{Palette: "ramps", Step: 0}
	if err := c.Validate(nil); err == nil {
		t.Error("expected an error for a zero step")
	}
	c = &CLICmd{Palette: "missing.pal", Step: 1}
	if err := c.Validate(nil); err == nil {
		t.Error("expected an error for a missing palette")
	}
}
