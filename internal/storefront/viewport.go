package storefront

// Viewport models carousel scroll mechanics for a row of equally sized
// cards: step size, edge clamping, and prev/next enablement. Pure state, no
// rendering and no data dependency on the ordering protocol.
type Viewport struct {
	ItemWidth int
	Gap       int
	Width     int
	Count     int

	offset int
}

// Step is the distance of one prev/next move.
func (v *Viewport) Step() int {
	return v.ItemWidth + v.Gap
}

// contentWidth is the total width of all cards including gaps.
func (v *Viewport) contentWidth() int {
	if v.Count == 0 {
		return 0
	}
	return v.Count*v.ItemWidth + (v.Count-1)*v.Gap
}

// maxOffset is the furthest the row can scroll.
func (v *Viewport) maxOffset() int {
	m := v.contentWidth() - v.Width
	if m < 0 {
		return 0
	}
	return m
}

// Offset returns the current scroll position.
func (v *Viewport) Offset() int { return v.offset }

// CanPrev reports whether the row can scroll backwards.
func (v *Viewport) CanPrev() bool { return v.offset > 0 }

// CanNext reports whether the row can scroll forwards.
func (v *Viewport) CanNext() bool { return v.offset < v.maxOffset() }

// Next advances one step, clamped at the end.
func (v *Viewport) Next() {
	v.setOffset(v.offset + v.Step())
}

// Prev goes back one step, clamped at the start.
func (v *Viewport) Prev() {
	v.setOffset(v.offset - v.Step())
}

// ScrollToIndex jumps so the card at i is flush with the left edge, clamped
// to the scrollable range.
func (v *Viewport) ScrollToIndex(i int) {
	if i < 0 {
		i = 0
	}
	v.setOffset(i * v.Step())
}

func (v *Viewport) setOffset(o int) {
	if o < 0 {
		o = 0
	}
	if m := v.maxOffset(); o > m {
		o = m
	}
	v.offset = o
}
