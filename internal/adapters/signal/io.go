package signal

import (
	"errors"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/protocol"
	"github.com/gorilla/websocket"
)

func (m *Manager) current(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen == gen
}

func (m *Manager) readPump(wc *wsConn, h Handlers) {
	for {
		mt, data, err := wc.conn.ReadMessage()
		if err != nil {
			code, reason := closeInfo(err)
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				m.loop.Post(func() { m.handleError(wc.gen, h, err) })
			}
			m.loop.Post(func() { m.handleClose(wc.gen, h, code, reason) })
			wc.Close()
			return
		}
		switch mt {
		case websocket.TextMessage:
			m.loop.Post(func() { m.handleText(wc.gen, h, data) })
		case websocket.BinaryMessage:
			m.loop.Post(func() { m.handleBinary(wc.gen, data) })
		}
	}
}

func closeInfo(err error) (int, string) {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return ce.Code, ce.Text
	}
	return websocket.CloseAbnormalClosure, err.Error()
}

func (m *Manager) handleText(gen uint64, h Handlers, data []byte) {
	if !m.current(gen) {
		return
	}
	env, err := protocol.Decode(data)
	if err != nil {
		m.logger.Error().Err(err).Int("bytes", len(data)).Msg("discarding malformed message")
		return
	}
	m.logger.Debug().Str("type", string(env.Type)).Msg("message received")
	if h.Dispatcher != nil {
		h.Dispatcher.Dispatch(env.Type, env.Payload)
	}
}

func (m *Manager) handleBinary(gen uint64, data []byte) {
	if !m.current(gen) {
		return
	}
	samples, err := protocol.DecodeFrame(data)
	if err != nil {
		m.logger.Warn().Err(err).Int("bytes", len(data)).Msg("discarding audio frame")
		return
	}
	if m.player != nil {
		m.player.Playback(samples)
	}
}

func (m *Manager) handleError(gen uint64, h Handlers, err error) {
	if !m.current(gen) {
		return
	}
	m.logger.Error().Err(err).Uint64("gen", gen).Msg("connection error")
	if h.Error != nil {
		h.Error(err)
	}
}

func (m *Manager) handleClose(gen uint64, h Handlers, code int, reason string) {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return
	}
	m.conn = nil
	m.state = core.ChannelClosed
	m.mu.Unlock()

	m.logger.Info().Int("code", code).Str("reason", reason).Uint64("gen", gen).Msg("connection closed")
	if h.Close != nil {
		h.Close(code, reason)
	}
}
