package audio

import (
	"encoding/binary"
	"math"
	"sync"
)

// maxVoices caps how many buffers may overlap before the oldest is dropped.
const maxVoices = 32

type voice struct {
	samples []float32
	pos     int
}

// Mixer sums every buffer handed to Add from the moment it arrives. Nothing
// is reordered or delayed; overlapping buffers are mixed and clipped.
type Mixer struct {
	mu     sync.Mutex
	voices []*voice
}

func (m *Mixer) Add(samples []float32) {
	if len(samples) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.voices) >= maxVoices {
		m.voices = m.voices[1:]
	}
	m.voices = append(m.voices, &voice{samples: samples})
}

// Active is the number of buffers still playing.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Mix fills out with the next len(out) mixed samples.
func (m *Mixer) Mix(out []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range out {
		out[i] = 0
	}
	live := m.voices[:0]
	for _, v := range m.voices {
		n := min(len(out), len(v.samples)-v.pos)
		for i := 0; i < n; i++ {
			out[i] += v.samples[v.pos+i]
		}
		v.pos += n
		if v.pos < len(v.samples) {
			live = append(live, v)
		}
	}
	for i := len(live); i < len(m.voices); i++ {
		m.voices[i] = nil
	}
	m.voices = live
	for i, s := range out {
		out[i] = float32(math.Max(-1, math.Min(1, float64(s))))
	}
}

// MixBytes fills a little-endian float32 device buffer.
func (m *Mixer) MixBytes(out []byte, scratch []float32) []float32 {
	n := len(out) / 4
	if cap(scratch) < n {
		scratch = make([]float32, n)
	}
	scratch = scratch[:n]
	m.Mix(scratch)
	for i, s := range scratch {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return scratch
}
