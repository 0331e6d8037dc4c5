package orch

import (
	"errors"

	"github.com/dkeye/VoiceClient/internal/adapters/signal"
	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/protocol"
	"github.com/google/uuid"
)

// StartVoice starts capture in the bound room and invites the room's peers.
// A failed invite ends the call again.
func (o *Orchestrator) StartVoice() error {
	if err := o.enterCall(); err != nil {
		return err
	}
	if err := o.send(protocol.KindRequestVoiceChat, nil); err != nil {
		o.endCall()
		return err
	}
	return nil
}

// enterCall needs an open channel: frames captured without one could only be dropped.
func (o *Orchestrator) enterCall() error {
	switch o.Session.State() {
	case app.StateInRoom:
	case app.StateInCall:
		return app.ErrAlreadyInCall
	default:
		return app.ErrNotInRoom
	}
	if st := o.Channel.Current(); st.State != core.ChannelOpen {
		o.logger().Warn().Str("channel", st.State.String()).Msg("call not started, channel is not open")
		o.notify(core.NoticeError, "connectionError")
		return signal.ErrChannelNotOpen
	}
	if !o.Media.Start() {
		o.notify(core.NoticeError, "microphoneError")
		return core.ErrPermission
	}
	call, err := o.Session.EnterCall()
	if err != nil {
		o.Media.Stop()
		return err
	}
	o.Media.SetMute(false)
	o.Renderer.SetCallControls(true, call.Muted)
	o.logger().Info().Int64("room", int64(call.RoomID)).Msg("call started")
	return nil
}

// SetMute gates outbound frames without stopping capture.
func (o *Orchestrator) SetMute(muted bool) error {
	if err := o.Session.SetMuted(muted); err != nil {
		return err
	}
	o.Media.SetMute(muted)
	o.Renderer.SetCallControls(true, muted)
	return nil
}

// ToggleMute flips the mute flag of the active call.
func (o *Orchestrator) ToggleMute() error {
	call, ok := o.Session.Call()
	if !ok {
		return app.ErrNotInCall
	}
	return o.SetMute(!call.Muted)
}

// HangUp ends the call and stays in the room.
func (o *Orchestrator) HangUp() error {
	if !o.endCall() {
		return app.ErrNotInCall
	}
	return nil
}

func (o *Orchestrator) endCall() bool {
	if !o.Session.LeaveCall() {
		return false
	}
	o.Media.Stop()
	o.Renderer.SetCallControls(false, false)
	return true
}

func (o *Orchestrator) OnVoiceChatInvitation(p protocol.FromUser) {
	text := o.Text.Format("voiceInvitation", "username", p.FromUsername)
	o.Prompter.Prompt(o.Invites.Add(core.InviteVoice, p.FromUsername, 0, text))
}

// ResolveInvitation resumes a pending invitation with the user's answer.
// Declining changes nothing.
func (o *Orchestrator) ResolveInvitation(id uuid.UUID, accept bool) error {
	inv, err := o.Invites.Take(id)
	if err != nil {
		return err
	}
	o.Prompter.Dismiss(id)
	o.logger().Info().Str("id", id.String()).Str("kind", string(inv.Kind)).Bool("accept", accept).Msg("invitation resolved")
	if !accept {
		return nil
	}
	switch inv.Kind {
	case core.InviteChat:
		return o.JoinRoom(inv.RoomID)
	case core.InviteVoice:
		err := o.enterCall()
		if errors.Is(err, app.ErrNotInRoom) {
			o.notify(core.NoticeError, "voiceNotInRoom")
		}
		return err
	default:
		return nil
	}
}
