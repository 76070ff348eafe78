package delay

import "fmt"

// Ring is a FIFO sample queue with push-back/pop-front access backed by a
// circular buffer. Capacity is reserved up front; a push that exceeds the
// free space grows the backing array, so callers that reserve for their
// steady-state block size never allocate while processing.
type Ring struct {
	buf  []float64
	head int
	size int
}

// NewRing returns a ring with at least the given capacity reserved.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be > 0: %d", capacity)
	}
	return &Ring{buf: make([]float64, capacity)}, nil
}

// Len returns the number of queued samples.
func (r *Ring) Len() int {
	return r.size
}

// Cap returns the reserved capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// PushBack appends all samples in src to the back of the queue, growing the
// backing array if the free space is insufficient.
func (r *Ring) PushBack(src []float64) {
	if len(src) == 0 {
		return
	}

	need := r.size + len(src)
	if need > len(r.buf) {
		r.grow(need)
	}

	pos := r.head + r.size
	if pos >= len(r.buf) {
		pos -= len(r.buf)
	}

	n := copy(r.buf[pos:], src)
	if n < len(src) {
		copy(r.buf, src[n:])
	}
	r.size += len(src)
}

// PushZeros appends n zero samples.
func (r *Ring) PushZeros(n int) {
	if n <= 0 {
		return
	}

	need := r.size + n
	if need > len(r.buf) {
		r.grow(need)
	}

	pos := r.head + r.size
	for i := 0; i < n; i++ {
		if pos >= len(r.buf) {
			pos = 0
		}
		r.buf[pos] = 0
		pos++
	}
	r.size += n
}

// PopFront removes up to len(dst) samples from the front of the queue into
// dst and returns the number of samples copied.
func (r *Ring) PopFront(dst []float64) int {
	n := len(dst)
	if n > r.size {
		n = r.size
	}
	if n == 0 {
		return 0
	}

	m := copy(dst[:n], r.buf[r.head:min(r.head+n, len(r.buf))])
	if m < n {
		copy(dst[m:n], r.buf)
	}

	r.head += n
	if r.head >= len(r.buf) {
		r.head -= len(r.buf)
	}
	r.size -= n

	return n
}

// Reset discards all queued samples without releasing capacity.
func (r *Ring) Reset() {
	r.head = 0
	r.size = 0
}

func (r *Ring) grow(need int) {
	newCap := 2 * len(r.buf)
	if newCap < need {
		newCap = need
	}

	grown := make([]float64, newCap)
	n := copy(grown, r.buf[r.head:])
	copy(grown[n:], r.buf[:r.head])
	// Only the first r.size entries of the unrolled data are live.
	r.buf = grown
	r.head = 0
}
