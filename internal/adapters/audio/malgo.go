// Package audio implements the platform audio device on miniaudio.
package audio

import (
	"fmt"
	"sync"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/protocol"
	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog"
)

// Device opens microphone captures and the playback context.
type Device struct {
	ctx    *malgo.AllocatedContext
	logger zerolog.Logger
}

func NewDevice(logger zerolog.Logger) (*Device, error) {
	logger = logger.With().Str("module", "audio.device").Logger()
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		logger.Debug().Msg(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}
	return &Device{ctx: ctx, logger: logger}, nil
}

func (d *Device) Close() error {
	if err := d.ctx.Uninit(); err != nil {
		return err
	}
	d.ctx.Free()
	return nil
}

// OpenCapture starts a mono float32 microphone stream. Any failure to open or
// start the device is reported as a permission error.
func (d *Device) OpenCapture(cfg core.CaptureConfig, onSamples func([]float32)) (core.CaptureStream, error) {
	dc := malgo.DefaultDeviceConfig(malgo.Capture)
	dc.Capture.Format = malgo.FormatF32
	dc.Capture.Channels = uint32(max(cfg.Channels, 1))
	dc.SampleRate = uint32(cfg.SampleRate)

	dev, err := malgo.InitDevice(d.ctx.Context, dc, malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			samples, err := protocol.DecodeFrame(input)
			if err != nil {
				return
			}
			onSamples(samples)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrPermission, err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		return nil, fmt.Errorf("%w: %v", core.ErrPermission, err)
	}
	d.logger.Info().Uint32("sample_rate", dc.SampleRate).Msg("capture device started")
	return &captureStream{dev: dev}, nil
}

type captureStream struct {
	dev  *malgo.Device
	once sync.Once
}

func (s *captureStream) Close() error {
	var err error
	s.once.Do(func() {
		err = s.dev.Stop()
		s.dev.Uninit()
	})
	return err
}

// OpenOutput starts a mono float32 playback device at its native rate.
func (d *Device) OpenOutput() (core.OutputContext, error) {
	out := &output{}
	dc := malgo.DefaultDeviceConfig(malgo.Playback)
	dc.Playback.Format = malgo.FormatF32
	dc.Playback.Channels = 1

	dev, err := malgo.InitDevice(d.ctx.Context, dc, malgo.DeviceCallbacks{
		Data: func(outBuf, _ []byte, _ uint32) {
			out.scratch = out.mixer.MixBytes(outBuf, out.scratch)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("init playback device: %w", err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		return nil, fmt.Errorf("start playback device: %w", err)
	}
	out.dev = dev
	d.logger.Info().Uint32("sample_rate", dev.SampleRate()).Msg("playback device started")
	return out, nil
}

type output struct {
	dev     *malgo.Device
	mixer   Mixer
	scratch []float32
	once    sync.Once
}

func (o *output) SampleRate() int { return int(o.dev.SampleRate()) }

func (o *output) Play(samples []float32) { o.mixer.Add(samples) }

func (o *output) Close() error {
	var err error
	o.once.Do(func() {
		err = o.dev.Stop()
		o.dev.Uninit()
	})
	return err
}

var _ core.AudioDevice = (*Device)(nil)
