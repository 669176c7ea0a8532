package asset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"rctdraw/internal/logging"
)

const (
	headerSize     = 8
	descriptorSize = 16
)

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// descriptor is the on-disk form of a sprite entry.
type descriptor struct {
	Offset       uint32
	Width        int16
	Height       int16
	XOffset      int16
	YOffset      int16
	Flags        uint16
	ZoomedOffset uint16
}

// Open loads a sprite blob from a file.
func Open(name string) (*Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open sprite blob %q: %w", name, err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("could not load sprite blob %q: %w", name, err)
	}
	return t, nil
}

// Load reads a whole sprite blob, zstd compressed or not.
func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read sprite blob: %w", err)
	}

	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("could not create zstd decoder: %w", err)
		}
		defer dec.Close()

		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, fmt.Errorf("could not decompress sprite blob: %w", err)
		}
	}

	return Parse(data)
}

// Parse decodes an uncompressed sprite blob. Descriptor offsets are rebased
// into the pixel data, which the returned table keeps referencing.
func Parse(data []byte) (*Table, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncated, headerSize, len(data))
	}

	count := binary.LittleEndian.Uint32(data)
	dataSize := binary.LittleEndian.Uint32(data[4:])
	if count > MaxSprites {
		return nil, fmt.Errorf("%w: %d sprites, at most %d are addressable", ErrBadDescriptor, count, MaxSprites)
	}

	blobStart := headerSize + int(count)*descriptorSize
	if len(data) < blobStart+int(dataSize) {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrTruncated, blobStart+int(dataSize), len(data))
	}

	descs := make([]descriptor, count)
	if err := binary.Read(bytes.NewReader(data[headerSize:blobStart]), binary.LittleEndian, descs); err != nil {
		return nil, fmt.Errorf("could not read descriptors: %w", err)
	}

	blob := data[blobStart : blobStart+int(dataSize)]
	sprites := make([]Sprite, count)
	for i, d := range descs {
		s, err := rebase(d, blob)
		if err != nil {
			return nil, fmt.Errorf("sprite %d: %w", i, err)
		}
		sprites[i] = s
	}

	logging.Logger().Debug("loaded sprite table", "sprites", count, "bytes", dataSize)
	return NewTable(sprites), nil
}

func rebase(d descriptor, blob []byte) (Sprite, error) {
	s := Sprite{
		Width:        int(d.Width),
		Height:       int(d.Height),
		XOffset:      int(d.XOffset),
		YOffset:      int(d.YOffset),
		Flags:        d.Flags,
		ZoomedOffset: d.ZoomedOffset,
	}
	if s.Width < 0 || s.Height < 0 {
		return s, fmt.Errorf("%w: size %dx%d", ErrBadDescriptor, s.Width, s.Height)
	}
	if int64(d.Offset) > int64(len(blob)) {
		return s, fmt.Errorf("%w: offset %d beyond %d bytes of data", ErrTruncated, d.Offset, len(blob))
	}

	data := blob[d.Offset:]
	var size int
	if s.Encoding() == RLE {
		var err error
		if size, err = rleExtent(data, s.Width, s.Height); err != nil {
			return s, err
		}
	} else {
		size = s.Width * s.Height
		if size > len(data) {
			return s, fmt.Errorf("%w: raw sprite needs %d bytes, got %d", ErrTruncated, size, len(data))
		}
	}

	s.Pixels = data[:size:size]
	return s, nil
}

// rleExtent validates the row table and every segment of an RLE sprite and
// returns the number of bytes it spans.
func rleExtent(data []byte, width, height int) (int, error) {
	extent := height * 2
	if extent > len(data) {
		return 0, fmt.Errorf("%w: row table needs %d bytes, got %d", ErrTruncated, extent, len(data))
	}

	for y := range height {
		off := int(binary.LittleEndian.Uint16(data[y*2:]))
		for last := false; !last; {
			if off+2 > len(data) {
				return 0, fmt.Errorf("%w: row %d segment header at %d", ErrTruncated, y, off)
			}
			n := int(data[off] & 0x7F)
			gap := int(data[off+1])
			last = data[off]&0x80 != 0
			off += 2
			if gap+n > width {
				return 0, fmt.Errorf("%w: row %d segment %d+%d exceeds width %d", ErrBadDescriptor, y, gap, n, width)
			}
			if off+n > len(data) {
				return 0, fmt.Errorf("%w: row %d run of %d at %d", ErrTruncated, y, n, off)
			}
			off += n
		}
		extent = max(extent, off)
	}
	return extent, nil
}

// WriteTo stores t as an uncompressed sprite blob.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var blob []byte
	descs := make([]descriptor, t.Len())
	for i := range t.sprites {
		s := &t.sprites[i]
		descs[i] = descriptor{
			Offset:       uint32(len(blob)),
			Width:        int16(s.Width),
			Height:       int16(s.Height),
			XOffset:      int16(s.XOffset),
			YOffset:      int16(s.YOffset),
			Flags:        s.Flags,
			ZoomedOffset: s.ZoomedOffset,
		}
		blob = append(blob, s.Pixels...)
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(descs)*descriptorSize + len(blob))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(descs)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(blob)))
	_ = binary.Write(&buf, binary.LittleEndian, descs)
	buf.Write(blob)

	return buf.WriteTo(w)
}

// WriteCompressed stores t as a zstd compressed sprite blob.
func (t *Table) WriteCompressed(w io.Writer) (int64, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return 0, fmt.Errorf("could not create zstd encoder: %w", err)
	}
	defer enc.Close()

	var raw bytes.Buffer
	if _, err := t.WriteTo(&raw); err != nil {
		return 0, err
	}

	n, err := w.Write(enc.EncodeAll(raw.Bytes(), nil))
	return int64(n), err
}
