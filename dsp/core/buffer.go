package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// Block is a fixed-size render buffer.
type Block [BlockSize]float64

// Slice returns the block as a slice sharing its storage.
func (b *Block) Slice() []float64 { return b[:] }
