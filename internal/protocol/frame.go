package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// FrameSamples is the number of mono float32 samples in one audio frame.
const FrameSamples = 4096

var ErrMalformedFrame = errors.New("malformed audio frame")

// EncodeFrame packs samples as little-endian float32 with no header.
func EncodeFrame(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}

// DecodeFrame unpacks a binary frame into float32 samples.
func DecodeFrame(b []byte) ([]float32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedFrame, len(b))
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}
