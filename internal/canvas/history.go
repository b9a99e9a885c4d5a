package canvas

import "image"

// History is a bounded stack of full canvas snapshots. When a push would
// exceed the depth, the oldest snapshot is dropped first.
type History struct {
	snaps []*image.RGBA
	depth int
}

// NewHistory creates a History holding at most depth snapshots.
func NewHistory(depth int) *History {
	return &History{
		snaps: make([]*image.RGBA, 0, depth),
		depth: depth,
	}
}

// Push stores a deep copy of img.
func (h *History) Push(img *image.RGBA) {
	if len(h.snaps) >= h.depth {
		// Shift left by 1, removing the oldest snapshot
		copy(h.snaps, h.snaps[1:])
		h.snaps[len(h.snaps)-1] = nil
		h.snaps = h.snaps[:len(h.snaps)-1]
	}
	h.snaps = append(h.snaps, cloneRGBA(img))
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (*image.RGBA, bool) {
	if len(h.snaps) == 0 {
		return nil, false
	}
	last := h.snaps[len(h.snaps)-1]
	h.snaps[len(h.snaps)-1] = nil
	h.snaps = h.snaps[:len(h.snaps)-1]
	return last, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snaps)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}
