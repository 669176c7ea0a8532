package palette

// Remap replaces each palette index by another one.
type Remap [256]uint8

// Blend combines a source and a destination index; it is indexed by
// (src<<8)|dst.
type Blend [256 * 256]uint8

func IdentityRemap() *Remap {
	r := new(Remap)
	for i := range r {
		r[i] = uint8(i)
	}
	return r
}

// Maps is the set of lookup tables selectable from packed colors and image
// ids. Tables are added at startup and never change afterwards.
type Maps struct {
	remaps []*Remap
	blends []*Blend
}

func (m *Maps) AddRemap(r *Remap) int {
	m.remaps = append(m.remaps, r)
	return len(m.remaps) - 1
}

func (m *Maps) AddBlend(b *Blend) int {
	m.blends = append(m.blends, b)
	return len(m.blends) - 1
}

// Remap returns the remap table at i, or nil when there is none.
func (m *Maps) Remap(i int) *Remap {
	if m == nil || i < 0 || i >= len(m.remaps) {
		return nil
	}
	return m.remaps[i]
}

// Blend returns the blend table at i, or nil when there is none.
func (m *Maps) Blend(i int) *Blend {
	if m == nil || i < 0 || i >= len(m.blends) {
		return nil
	}
	return m.blends[i]
}

func (m *Maps) NumRemaps() int {
	if m == nil {
		return 0
	}
	return len(m.remaps)
}

func (m *Maps) NumBlends() int {
	if m == nil {
		return 0
	}
	return len(m.blends)
}
