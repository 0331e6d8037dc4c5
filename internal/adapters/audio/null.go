package audio

import (
	"fmt"

	"github.com/dkeye/VoiceClient/internal/core"
)

// Null is the device used when audio is disabled: the microphone is never
// available and playback is discarded.
type Null struct{}

func (Null) OpenCapture(core.CaptureConfig, func([]float32)) (core.CaptureStream, error) {
	return nil, fmt.Errorf("%w: audio disabled", core.ErrPermission)
}

func (Null) OpenOutput() (core.OutputContext, error) { return discard{}, nil }

func (Null) Close() error { return nil }

type discard struct{}

func (discard) SampleRate() int { return 48000 }
func (discard) Play([]float32)  {}
func (discard) Close() error    { return nil }

var _ core.AudioDevice = Null{}
