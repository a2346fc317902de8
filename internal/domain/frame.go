package domain

// Frame is one snapshot of every cell color, in row-major order.
type Frame []Color

// NewFrame returns a frame sized for d with every cell set to fill.
func NewFrame(d Dimensions, fill Color) Frame {
	f := make(Frame, d.Cells())
	for i := range f {
		f[i] = fill
	}
	return f
}

// Clone returns an independent copy of the frame.
func (f Frame) Clone() Frame {
	if f == nil {
		return nil
	}
	out := make(Frame, len(f))
	copy(out, f)
	return out
}

// Equal reports whether both frames hold the same colors in the same order.
func (f Frame) Equal(other Frame) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// CloneFrames deep-copies a frame sequence.
func CloneFrames(frames []Frame) []Frame {
	out := make([]Frame, len(frames))
	for i, f := range frames {
		out[i] = f.Clone()
	}
	return out
}
