package asset

import (
	"encoding/binary"
	"fmt"
)

const (
	maxRun    = 0x7F
	lastFlag  = 0x80
	maxGap    = 0xFF
	maxRowOff = 0xFFFF
)

// EncodeRLE run-length encodes width x height indexed pixels, treating 0 as
// transparent. The result starts with one little-endian uint16 offset per
// row, followed by each row's segments: a length byte (bit 7 set on the last
// segment of the row), the column the run starts at, and the run's pixels.
func EncodeRLE(pix []uint8, width, height int) ([]byte, error) {
	if width < 0 || height < 0 || len(pix) < width*height {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrTruncated, len(pix), width, height)
	}

	out := make([]byte, height*2, height*2+len(pix)+height*2)
	for y := range height {
		if len(out) > maxRowOff {
			return nil, fmt.Errorf("%w: row %d starts at %d, beyond the 16 bit row table", ErrTooWide, y, len(out))
		}
		binary.LittleEndian.PutUint16(out[y*2:], uint16(len(out)))

		row := pix[y*width : (y+1)*width]
		lastHdr := -1
		for x := 0; x < width; {
			if row[x] == 0 {
				x++
				continue
			}
			end := x
			for end < width && row[end] != 0 && end-x < maxRun {
				end++
			}
			if x > maxGap {
				return nil, fmt.Errorf("%w: row %d has a run at column %d", ErrTooWide, y, x)
			}
			lastHdr = len(out)
			out = append(out, uint8(end-x), uint8(x))
			out = append(out, row[x:end]...)
			x = end
		}

		if lastHdr < 0 {
			out = append(out, lastFlag, 0)
		} else {
			out[lastHdr] |= lastFlag
		}
	}
	return out, nil
}

// DecodeRLE expands RLE sprite data back to width x height indexed pixels.
func DecodeRLE(data []byte, width, height int) ([]uint8, error) {
	if _, err := rleExtent(data, width, height); err != nil {
		return nil, err
	}

	pix := make([]uint8, width*height)
	for y := range height {
		off := int(binary.LittleEndian.Uint16(data[y*2:]))
		for last := false; !last; {
			var run []uint8
			var gap int
			run, gap, off, last = NextSegment(data, off)
			copy(pix[y*width+gap:], run)
		}
	}
	return pix, nil
}

// NextSegment decodes the segment starting at off in RLE row data and
// returns its pixels, the column it starts at, the offset of the following
// segment and whether it ends the row. Data must have been validated.
func NextSegment(data []byte, off int) (run []uint8, gap, next int, last bool) {
	n := int(data[off] & maxRun)
	gap = int(data[off+1])
	last = data[off]&lastFlag != 0
	next = off + 2 + n
	return data[off+2 : next : next], gap, next, last
}
