package core

import "errors"

// ErrPermission is returned when microphone access is denied or unavailable.
var ErrPermission = errors.New("microphone permission denied")

type CaptureConfig struct {
	SampleRate int
	Channels   int
}

// AudioDevice abstracts the platform audio stack.
type AudioDevice interface {
	// OpenCapture starts the microphone. onSamples receives chunks of arbitrary
	// length on a device-owned goroutine. Failure wraps ErrPermission.
	OpenCapture(cfg CaptureConfig, onSamples func([]float32)) (CaptureStream, error)
	// OpenOutput creates an audio output context at its native rate.
	OpenOutput() (OutputContext, error)
}

// CaptureStream is a running microphone capture.
type CaptureStream interface {
	// Close releases the capture track. Safe to call more than once.
	Close() error
}

// OutputContext plays mono float32 buffers. Play schedules immediately and never blocks.
type OutputContext interface {
	SampleRate() int
	Play(samples []float32)
	Close() error
}
