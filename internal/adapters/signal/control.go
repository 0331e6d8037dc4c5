package signal

import (
	"time"

	"github.com/gorilla/websocket"
)

// pingLoop keeps intermediaries from idling the connection out.
func (m *Manager) pingLoop(wc *wsConn) {
	ticker := time.NewTicker(m.opts.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-wc.done:
			return
		case <-ticker.C:
			wc.writeMu.Lock()
			err := wc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(m.opts.WriteTimeout))
			wc.writeMu.Unlock()
			if err != nil {
				m.logger.Debug().Err(err).Msg("ping failed")
				return
			}
		}
	}
}
