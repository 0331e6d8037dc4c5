// Package signal owns the single client connection: it dials, classifies
// inbound frames and transmits outbound envelopes and audio frames.
package signal

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/protocol"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var ErrChannelNotOpen = errors.New("channel not open")

// Dispatcher receives every well-formed text envelope.
type Dispatcher interface {
	Dispatch(kind protocol.Kind, payload json.RawMessage)
}

// Player receives decoded inbound audio frames.
type Player interface {
	Playback(samples []float32)
}

// Poster serializes callbacks onto the client event loop.
type Poster interface {
	Post(fn func()) bool
}

// Handlers are supplied on every Connect and live as long as that connection.
type Handlers struct {
	Dispatcher Dispatcher
	Error      func(err error)
	Close      func(code int, reason string)
}

type Options struct {
	URL          string
	ReadLimit    int64
	WriteTimeout time.Duration
	DialTimeout  time.Duration
	PingPeriod   time.Duration
	Dialer       *websocket.Dialer
}

func (o *Options) normalize() {
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = 15 * time.Second
	}
	if o.Dialer == nil {
		o.Dialer = websocket.DefaultDialer
	}
}

// Status is a read-only view of the channel.
type Status struct {
	State      core.ChannelState `json:"state"`
	Generation uint64            `json:"generation"`
}

// Manager owns at most one live connection. Connect always starts a fresh one.
type Manager struct {
	opts   Options
	loop   Poster
	player Player
	logger zerolog.Logger

	mu    sync.Mutex
	state core.ChannelState
	conn  *wsConn
	gen   uint64
}

func NewManager(opts Options, loop Poster, player Player, logger zerolog.Logger) *Manager {
	opts.normalize()
	return &Manager{
		opts:   opts,
		loop:   loop,
		player: player,
		logger: logger.With().Str("module", "signal").Logger(),
	}
}

type wsConn struct {
	conn *websocket.Conn
	gen  uint64

	writeMu sync.Mutex
	once    sync.Once
	done    chan struct{}
}

func (c *wsConn) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = c.conn.Close()
	})
}

// Connect dials a new connection and returns immediately. Any previous
// connection is closed and its late events are ignored. onOpen runs once on the
// event loop when the connection opens.
func (m *Manager) Connect(ctx context.Context, onOpen func(), h Handlers) {
	m.mu.Lock()
	old := m.conn
	m.gen++
	gen := m.gen
	m.conn = nil
	m.state = core.ChannelConnecting
	m.mu.Unlock()

	if old != nil {
		m.logger.Info().Uint64("gen", old.gen).Msg("replacing previous connection")
		old.Close()
	}
	m.logger.Info().Str("url", m.opts.URL).Uint64("gen", gen).Msg("connecting")
	go m.dial(ctx, gen, onOpen, h)
}

func (m *Manager) dial(ctx context.Context, gen uint64, onOpen func(), h Handlers) {
	dialCtx, cancel := context.WithTimeout(ctx, m.opts.DialTimeout)
	defer cancel()

	conn, _, err := m.opts.Dialer.DialContext(dialCtx, m.opts.URL, nil)
	if err != nil {
		m.loop.Post(func() {
			m.handleError(gen, h, err)
			m.handleClose(gen, h, websocket.CloseAbnormalClosure, err.Error())
		})
		return
	}
	if m.opts.ReadLimit > 0 {
		conn.SetReadLimit(m.opts.ReadLimit)
	}
	wc := &wsConn{conn: conn, gen: gen, done: make(chan struct{})}

	posted := m.loop.Post(func() {
		m.mu.Lock()
		if m.gen != gen {
			m.mu.Unlock()
			wc.Close()
			return
		}
		m.conn = wc
		m.state = core.ChannelOpen
		m.mu.Unlock()
		m.logger.Info().Uint64("gen", gen).Msg("connection opened")
		if onOpen != nil {
			onOpen()
		}
	})
	if !posted {
		wc.Close()
		return
	}
	go m.readPump(wc, h)
	if m.opts.PingPeriod > 0 {
		go m.pingLoop(wc)
	}
}

// Current returns the channel state and connection generation.
func (m *Manager) Current() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{State: m.state, Generation: m.gen}
}

// Close tears the connection down locally. Handlers of the closed
// connection are not invoked afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	old := m.conn
	m.gen++
	m.conn = nil
	m.state = core.ChannelClosed
	m.mu.Unlock()
	if old != nil {
		old.Close()
		m.logger.Info().Uint64("gen", old.gen).Msg("connection closed locally")
	}
}

func (m *Manager) open() (*wsConn, core.ChannelState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != core.ChannelOpen || m.conn == nil {
		return nil, m.state
	}
	return m.conn, m.state
}

// Send serializes an envelope and transmits it if the channel is open.
// Otherwise it logs once and returns ErrChannelNotOpen; nothing is queued.
func (m *Manager) Send(kind protocol.Kind, payload any) error {
	wc, state := m.open()
	if wc == nil {
		m.logger.Error().Str("type", string(kind)).Str("state", state.String()).Msg("could not send message, channel is not open")
		return ErrChannelNotOpen
	}
	data, err := protocol.Encode(kind, payload)
	if err != nil {
		m.logger.Error().Err(err).Str("type", string(kind)).Msg("encode envelope")
		return err
	}
	m.logger.Debug().Str("type", string(kind)).Msg("sending message")
	return m.write(wc, websocket.TextMessage, data)
}

// SendBinary transmits a raw frame under the same open/not-open rule as Send.
func (m *Manager) SendBinary(f core.Frame) error {
	wc, state := m.open()
	if wc == nil {
		m.logger.Error().Int("bytes", len(f)).Str("state", state.String()).Msg("could not send frame, channel is not open")
		return ErrChannelNotOpen
	}
	return m.write(wc, websocket.BinaryMessage, f)
}

func (m *Manager) write(wc *wsConn, messageType int, data []byte) error {
	wc.writeMu.Lock()
	defer wc.writeMu.Unlock()
	if err := wc.conn.SetWriteDeadline(time.Now().Add(m.opts.WriteTimeout)); err != nil {
		m.logger.Error().Err(err).Msg("set write deadline")
		return err
	}
	if err := wc.conn.WriteMessage(messageType, data); err != nil {
		m.logger.Error().Err(err).Int("message_type", messageType).Msg("write error")
		return err
	}
	return nil
}
