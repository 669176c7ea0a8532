// Package pack builds sprite asset files from a folder of images.
package pack

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"rctdraw/asset"
	"rctdraw/palette"
	"rctdraw/parallel"
)

type CLICmd struct {
	Scan     string        `help:"Source folder to scan for sprite images" default:"."`
	Out      string        `help:"Asset file to write. Relative to scan dir if not absolute." default:"sprites.dat"`
	Palette  string        `help:"Palette name (ramps, gray256, vga16, websafe, plan9) or PAL file in RIFF format" default:"ramps" group:"palette"`
	Dither   bool          `help:"Apply dithering" default:"false" group:"palette"`
	RLE      string        `help:"Run-length encode sprites: auto encodes those with transparent pixels" enum:"auto,always,never" default:"auto" group:"encoding"`
	Anchor   string        `help:"Sprite point placed at the drawing position" enum:"topleft,center,bottom" default:"topleft" group:"encoding"`
	Compress bool          `help:"Compress the asset file with zstd" default:"false" group:"encoding"`
	Zoomed   bool          `help:"Also store a half size variant of every sprite for zoomed out surfaces" default:"false" group:"encoding"`
	Pal      color.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Out) {
		c.Out = filepath.Join(scanDir, c.Out)
	}

	if c.Pal, err = palette.LoadPalette(c.Palette); err != nil {
		return err
	}
	if len(c.Pal) < 2 {
		return fmt.Errorf("palette %q needs at least one color besides the transparent one", c.Palette)
	}
	return nil
}

// sprite is one decoded and quantised source image.
type sprite struct {
	name        string
	img         *image.Paletted
	half        *image.Paletted
	transparent bool
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var names []string
	for _, file := range files {
		if file.IsDir() || filepath.Join(c.Scan, file.Name()) == c.Out {
			continue
		}
		names = append(names, file.Name())
	}
	slices.Sort(names)

	sprites := make([]*sprite, len(names))
	for i, name := range names {
		pool.Do(func() error {
			s, err := c.load(name)
			if err != nil {
				return fmt.Errorf("%q: %w", name, err)
			}
			sprites[i] = s
			return nil
		})
	}
	loadErr := pool.Wait()

	var b asset.Builder
	var encodeErrs int
	for _, s := range sprites {
		if s == nil {
			continue
		}
		if err := c.add(&b, s); err != nil {
			encodeErrs++
			slog.Error("could not encode sprite", "file", s.name, "error", err)
		}
	}

	if err := c.write(b.Table()); err != nil {
		return err
	}

	failed := int(pool.Failed()) + encodeErrs
	slog.Info("stats", "sprites", b.Len(), "errors", failed, "total", len(names), "out", c.Out)
	if loadErr != nil || encodeErrs > 0 {
		return fmt.Errorf("error processing %d files", failed)
	}
	return nil
}

func (c *CLICmd) load(name string) (*sprite, error) {
	filePath := filepath.Join(c.Scan, name)
	logger := slog.Default().With("file", filePath)

	imgFile, err := os.Open(filePath)
	if err != nil {
		logger.Error("could not open image", "error", err)
		return nil, err
	}
	defer imgFile.Close()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		logger.Error("could not decode image", "error", err)
		return nil, err
	}
	logger.Debug("decoded", "type", imgType, "bounds", img.Bounds())

	b := img.Bounds()
	s := &sprite{name: name}
	s.img, s.transparent = quantize(logger, img, c.Pal, c.Dither, anchorAt(c.Anchor, b.Dx(), b.Dy()))
	if c.Zoomed {
		half := halve(img)
		hb := half.Bounds()
		s.half, _ = quantize(logger, half, c.Pal, c.Dither, anchorAt(c.Anchor, hb.Dx(), hb.Dy()))
	}
	return s, nil
}

func (c *CLICmd) encoding(s *sprite) asset.Encoding {
	switch c.RLE {
	case "always":
		return asset.RLE
	case "never":
		return asset.Raw
	}
	if s.transparent {
		return asset.RLE
	}
	return asset.Raw
}

// add stores s in b. The half size variant goes first so the full sprite can
// reference it.
func (c *CLICmd) add(b *asset.Builder, s *sprite) error {
	enc := c.encoding(s)
	if s.half == nil {
		_, err := b.AddPaletted(s.img, enc)
		return err
	}

	half, err := b.AddPaletted(s.half, enc)
	if err != nil {
		return err
	}
	full, err := b.AddPaletted(s.img, enc)
	if err != nil {
		return err
	}
	return b.LinkZoomed(full, half)
}

func (c *CLICmd) write(t *asset.Table) (err error) {
	outFile, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("could not create asset file %q: %w", c.Out, err)
	}
	defer func() {
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close asset file %q: %w", c.Out, defErr)
		}
	}()

	write := t.WriteTo
	if c.Compress {
		write = t.WriteCompressed
	}
	var n int64
	if n, err = write(outFile); err != nil {
		return fmt.Errorf("could not write asset file %q: %w", c.Out, err)
	}
	slog.Info("wrote assets", "file", c.Out, "bytes", n, "compressed", c.Compress)
	return nil
}
