package audio

import "sync/atomic"

type TrackState int32

const (
	TrackStateLive TrackState = iota
	TrackStateMuted
)

func (s TrackState) String() string {
	if s == TrackStateMuted {
		return "muted"
	}
	return "live"
}

// trackGate decides per frame whether captured audio leaves the client.
// Zero value is live.
type trackGate struct {
	state atomic.Int32
}

func (g *trackGate) State() TrackState {
	return TrackState(g.state.Load())
}

func (g *trackGate) MarkLive() {
	g.state.Store(int32(TrackStateLive))
}

func (g *trackGate) MarkMuted() {
	g.state.Store(int32(TrackStateMuted))
}
