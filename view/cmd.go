// Package view runs the compositor live in a terminal.
package view

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gdamore/tcell/v2"

	"rctdraw/asset"
	"rctdraw/compositor"
	"rctdraw/gfx"
	"rctdraw/internal/scene"
	"rctdraw/palette"
	"rctdraw/term"
)

const frameTime = 16 * time.Millisecond

type CLICmd struct {
	Assets  string        `help:"Sprite asset file written by pack" required:"" type:"path"`
	Palette string        `help:"Palette name (ramps, gray256, vga16, websafe, plan9) or PAL file in RIFF format" default:"ramps"`
	Animate bool          `help:"Keep the focused window bouncing" default:"false"`
	Step    int           `help:"Pixels moved per arrow key press" default:"2"`
	Pal     color.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Step < 1 {
		return fmt.Errorf("invalid step: %d", c.Step)
	}
	var err error
	c.Pal, err = palette.LoadPalette(c.Palette)
	return err
}

func (c *CLICmd) Run() error {
	assets, err := asset.Open(c.Assets)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("could not initialise terminal: %w", err)
	}
	defer screen.Fini()

	return c.run(screen, assets)
}

// run drives the compositor from screen events until the user quits. Events
// are read on their own goroutine and handled between frames.
func (c *CLICmd) run(screen tcell.Screen, assets *asset.Table) error {
	p := term.NewPresenter(screen, c.Pal)
	w, h := p.Size()
	comp, err := compositor.New(w, h)
	if err != nil {
		return err
	}
	sc := scene.New(comp, gfx.NewRenderer(assets, scene.NewMaps(c.Pal)))

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	var frames int
	for {
		select {
		case ev := <-events:
			if !c.handle(sc, p, ev) {
				slog.Debug("view closed", "frames", frames)
				return nil
			}
		case <-ticker.C:
			if c.Animate {
				sc.Step()
			}
			if !comp.Pending() {
				continue
			}
			st := comp.Redraw()
			p.Present(comp.Screen(), st.Rects)
			frames++
		}
	}
}

// handle applies one event to the scene and reports whether to keep going.
func (c *CLICmd) handle(sc *scene.Scene, p *term.Presenter, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			sc.CycleFocus()
		case tcell.KeyLeft:
			sc.Move(image.Pt(-c.Step, 0))
		case tcell.KeyRight:
			sc.Move(image.Pt(c.Step, 0))
		case tcell.KeyUp:
			sc.Move(image.Pt(0, -c.Step))
		case tcell.KeyDown:
			sc.Move(image.Pt(0, c.Step))
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	case *tcell.EventResize:
		w, h := p.Size()
		if err := sc.Resize(w, h); err != nil {
			slog.Error("could not resize", "width", w, "height", h, "error", err)
		}
	}
	return true
}
