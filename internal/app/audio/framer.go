package audio

// Framer cuts a continuous sample stream into fixed-size frames.
type Framer struct {
	size int
	buf  []float32
}

func NewFramer(size int) *Framer {
	return &Framer{size: size, buf: make([]float32, 0, size)}
}

// Push appends samples and calls emit for every complete frame. The slice
// passed to emit is owned by the callee.
func (f *Framer) Push(samples []float32, emit func(frame []float32)) {
	for len(samples) > 0 {
		n := min(f.size-len(f.buf), len(samples))
		f.buf = append(f.buf, samples[:n]...)
		samples = samples[n:]
		if len(f.buf) == f.size {
			emit(f.buf)
			f.buf = make([]float32, 0, f.size)
		}
	}
}

// Pending is the number of buffered samples not yet emitted.
func (f *Framer) Pending() int { return len(f.buf) }

func (f *Framer) Reset() { f.buf = f.buf[:0] }
