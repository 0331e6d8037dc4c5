// Package audio captures microphone audio into fixed frames for the channel
// and plays inbound frames as they arrive.
package audio

import (
	"errors"
	"sync"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/protocol"
	"github.com/rs/zerolog"
)

// Poster serializes capture callbacks onto the client event loop.
type Poster interface {
	Post(fn func()) bool
}

type Options struct {
	SampleRate   int
	FrameSamples int
}

// Pipeline owns microphone capture and the single playback context.
// Start, Stop and the capture path run on the event loop; Playback and
// SetMute may be called from any goroutine.
type Pipeline struct {
	device core.AudioDevice
	sender core.FrameSender
	loop   Poster
	opts   Options
	logger zerolog.Logger

	gate trackGate

	capture core.CaptureStream
	framer  *Framer
	gen     uint64

	outOnce sync.Once
	outMu   sync.Mutex
	out     core.OutputContext
}

func NewPipeline(device core.AudioDevice, sender core.FrameSender, loop Poster, opts Options, logger zerolog.Logger) *Pipeline {
	if opts.FrameSamples <= 0 {
		opts.FrameSamples = protocol.FrameSamples
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 48000
	}
	return &Pipeline{
		device: device,
		sender: sender,
		loop:   loop,
		opts:   opts,
		logger: logger.With().Str("module", "audio").Logger(),
		framer: NewFramer(opts.FrameSamples),
	}
}

// Start opens the microphone. It reports false, leaving nothing running,
// when access is denied or the device fails.
func (p *Pipeline) Start() bool {
	if p.capture != nil {
		return true
	}
	p.gen++
	gen := p.gen
	p.framer.Reset()
	stream, err := p.device.OpenCapture(core.CaptureConfig{SampleRate: p.opts.SampleRate, Channels: 1}, func(samples []float32) {
		buf := append([]float32(nil), samples...)
		p.loop.Post(func() { p.onCaptured(gen, buf) })
	})
	if err != nil {
		if errors.Is(err, core.ErrPermission) {
			p.logger.Warn().Err(err).Msg("microphone access denied")
		} else {
			p.logger.Error().Err(err).Msg("open capture")
		}
		return false
	}
	p.capture = stream
	p.logger.Info().Int("sample_rate", p.opts.SampleRate).Msg("capture started")
	return true
}

func (p *Pipeline) onCaptured(gen uint64, samples []float32) {
	if p.capture == nil || gen != p.gen {
		return
	}
	// Muted samples never reach the framer, and the partial frame is
	// discarded, so the first frame after unmuting holds only live audio.
	if p.gate.State() == TrackStateMuted {
		p.framer.Reset()
		return
	}
	p.framer.Push(samples, func(frame []float32) {
		// The channel logs dropped sends itself.
		_ = p.sender.SendBinary(protocol.EncodeFrame(frame))
	})
}

// Active reports whether capture is running.
func (p *Pipeline) Active() bool { return p.capture != nil }

// SetMute flips the capture gate; capture keeps running.
func (p *Pipeline) SetMute(muted bool) {
	if muted {
		p.gate.MarkMuted()
	} else {
		p.gate.MarkLive()
	}
	p.logger.Info().Str("track", p.gate.State().String()).Msg("mute changed")
}

func (p *Pipeline) Muted() bool { return p.gate.State() == TrackStateMuted }

// Stop releases the capture stream. Safe when never started or already stopped.
func (p *Pipeline) Stop() {
	if p.capture == nil {
		return
	}
	stream := p.capture
	p.capture = nil
	p.gen++
	p.framer.Reset()
	p.gate.MarkLive()
	if err := stream.Close(); err != nil {
		p.logger.Error().Err(err).Msg("close capture")
	}
	p.logger.Info().Msg("capture stopped")
}

// Playback plays one inbound frame immediately. The output context is
// created on the first frame and reused for the life of the pipeline.
func (p *Pipeline) Playback(samples []float32) {
	p.outOnce.Do(func() {
		out, err := p.device.OpenOutput()
		if err != nil {
			p.logger.Error().Err(err).Msg("open output context")
			return
		}
		p.outMu.Lock()
		p.out = out
		p.outMu.Unlock()
		p.logger.Info().Int("sample_rate", out.SampleRate()).Msg("output context created")
	})
	p.outMu.Lock()
	out := p.out
	p.outMu.Unlock()
	if out == nil {
		return
	}
	out.Play(samples)
}

// Close stops capture and releases the output context.
func (p *Pipeline) Close() error {
	p.Stop()
	p.outMu.Lock()
	out := p.out
	p.out = nil
	p.outMu.Unlock()
	if out != nil {
		return out.Close()
	}
	return nil
}
