package core

// ChannelState of the single client connection.
type ChannelState int

const (
	ChannelClosed ChannelState = iota
	ChannelConnecting
	ChannelOpen
)

func (s ChannelState) String() string {
	switch s {
	case ChannelConnecting:
		return "CONNECTING"
	case ChannelOpen:
		return "OPEN"
	default:
		return "CLOSED"
	}
}

// FrameSender transmits raw binary frames over the channel.
type FrameSender interface {
	SendBinary(f Frame) error
}
