package timestamp

import "strconv"

// MaxBufSize is the capacity of the formatting buffer.
const MaxBufSize = 32

// BoundedWriter accumulates at most MaxBufSize bytes. Writes past capacity
// are dropped and recorded by Truncated.
type BoundedWriter struct {
	buf       [MaxBufSize]byte
	n         int
	truncated bool
}

// PutByte appends c if there is room.
func (w *BoundedWriter) PutByte(c byte) {
	if w.n >= len(w.buf) {
		w.truncated = true
		return
	}
	w.buf[w.n] = c
	w.n++
}

// PutString appends as much of s as fits.
func (w *BoundedWriter) PutString(s string) {
	for i := 0; i < len(s); i++ {
		w.PutByte(s[i])
	}
}

// PutUint appends v in decimal, left-padded with zeros to width digits.
func (w *BoundedWriter) PutUint(v uint64, width int) {
	var digits [20]byte
	d := strconv.AppendUint(digits[:0], v, 10)
	for i := len(d); i < width; i++ {
		w.PutByte('0')
	}
	for _, c := range d {
		w.PutByte(c)
	}
}

// Len returns the number of bytes held.
func (w *BoundedWriter) Len() int { return w.n }

// Truncated reports whether any write was dropped.
func (w *BoundedWriter) Truncated() bool { return w.truncated }

func (w *BoundedWriter) String() string {
	return string(w.buf[:w.n])
}
