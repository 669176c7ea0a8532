// Package render composites the demo scene offscreen and writes every frame
// to an image file.
package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"

	"rctdraw/asset"
	"rctdraw/compositor"
	"rctdraw/export"
	"rctdraw/gfx"
	"rctdraw/internal/scene"
	"rctdraw/palette"
	"rctdraw/parallel"
)

type CLICmd struct {
	Assets  string        `help:"Sprite asset file written by pack" required:"" type:"path"`
	Out     string        `help:"Destination folder for the frames" default:"frames"`
	Width   int           `help:"Screen width in pixels" default:"320" group:"screen"`
	Height  int           `help:"Screen height in pixels" default:"200" group:"screen"`
	Frames  int           `help:"Number of frames to render" default:"16" group:"screen"`
	Format  string        `help:"Output format of the frames" enum:"png,gif,bmp,tiff" default:"png" group:"output"`
	Scale   int           `help:"Integer scale factor applied to every frame" default:"1" group:"output"`
	Palette string        `help:"Palette name (ramps, gray256, vga16, websafe, plan9) or PAL file in RIFF format" default:"ramps" group:"output"`
	Pal     color.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid screen size: %dx%d", c.Width, c.Height)
	case c.Frames < 1:
		return fmt.Errorf("invalid frame count: %d", c.Frames)
	case c.Scale < 1:
		return fmt.Errorf("invalid scale: %d", c.Scale)
	case !slices.Contains(export.Formats, c.Format):
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}

	out, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Out, err)
	}
	c.Out = out

	c.Pal, err = palette.LoadPalette(c.Palette)
	return err
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Out, err)
	}

	assets, err := asset.Open(c.Assets)
	if err != nil {
		return err
	}

	comp, err := compositor.New(c.Width, c.Height)
	if err != nil {
		return err
	}
	rd := gfx.NewRenderer(assets, scene.NewMaps(c.Pal))
	sc := scene.New(comp, rd)

	logger := slog.Default().With("dir", c.Out, "format", c.Format)
	var rects, paints int
	for i := range c.Frames {
		if i > 0 {
			sc.Step()
		}
		st := comp.Redraw()
		rects += len(st.Rects)
		paints += st.Paints
		logger.Debug("frame", "n", i, "rects", len(st.Rects), "pieces", st.Pieces, "paints", st.Paints)

		// the snapshot is taken on this goroutine; only encoding runs on the pool
		img := export.Scale(export.Snapshot(comp.Screen(), c.Pal), c.Scale)
		name := fmt.Sprintf("frame%04d", i)
		pool.Do(func() error {
			if err := export.Save(img, c.Format, c.Out, name); err != nil {
				logger.Error("could not save frame", "frame", name, "error", err)
				return err
			}
			return nil
		})
	}

	err = pool.Wait()
	written, failed := pool.Done(), pool.Failed()
	slog.Info("stats", "frames", written, "errors", failed, "total", c.Frames,
		"rects", rects, "paints", paints, "sprites", assets.Len())

	if err != nil {
		return fmt.Errorf("error writing %d frames: %w", failed, err)
	}
	return nil
}
