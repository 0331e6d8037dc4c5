package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/VoiceClient/internal/protocol"
	"github.com/rs/zerolog"
)

var ErrUnknownKind = errors.New("unknown message kind")

// Dispatcher decodes the payload for a kind and calls the matching Handler
// method synchronously. Undecodable payloads and unknown kinds are logged and dropped.
type Dispatcher struct {
	h      Handler
	logger zerolog.Logger
}

func New(h Handler, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{h: h, logger: logger.With().Str("module", "dispatch").Logger()}
}

func (d *Dispatcher) Dispatch(kind protocol.Kind, payload json.RawMessage) {
	if err := d.route(kind, payload); err != nil {
		if errors.Is(err, ErrUnknownKind) {
			d.logger.Warn().Str("type", string(kind)).Msg("unknown message")
			return
		}
		d.logger.Error().Err(err).Str("type", string(kind)).Msg("discarding message")
	}
}

func (d *Dispatcher) route(kind protocol.Kind, payload json.RawMessage) error {
	h := d.h
	switch kind {
	case protocol.KindAuthOK:
		return call(payload, h.OnAuthOK)
	case protocol.KindAuthFail:
		return call(payload, h.OnAuthFail)
	case protocol.KindRegisterOK:
		return call(payload, h.OnRegisterOK)
	case protocol.KindRegisterFail:
		return call(payload, h.OnRegisterFail)
	case protocol.KindJoinOK:
		return call(payload, h.OnJoinOK)
	case protocol.KindChatList:
		return call(payload, h.OnChatList)
	case protocol.KindMessageHistory:
		return call(payload, h.OnMessageHistory)
	case protocol.KindNewChatMessage:
		return call(payload, h.OnNewChatMessage)
	case protocol.KindFriendList:
		return call(payload, h.OnFriendList)
	case protocol.KindFriendRequests:
		return call(payload, h.OnFriendRequests)
	case protocol.KindNewFriendRequest:
		return call(payload, h.OnNewFriendRequest)
	case protocol.KindFriendRequestSent:
		return call(payload, h.OnFriendRequestSent)
	case protocol.KindFriendRequestFail:
		return call(payload, h.OnFriendRequestFail)
	case protocol.KindFriendRequestAccepted:
		return call(payload, h.OnFriendRequestAccepted)
	case protocol.KindFriendRequestRejected:
		return call(payload, h.OnFriendRequestRejected)
	case protocol.KindInvitation:
		return call(payload, h.OnInvitation)
	case protocol.KindVoiceChatInvitation:
		return call(payload, h.OnVoiceChatInvitation)
	case protocol.KindAdminAllUsers:
		return call(payload, h.OnAdminAllUsers)
	case protocol.KindAdminAllRooms:
		return call(payload, h.OnAdminAllRooms)
	case protocol.KindAdminCreateUserOK:
		return call(payload, h.OnAdminCreateUserOK)
	case protocol.KindAdminCreateUserFail:
		return call(payload, h.OnAdminCreateUserFail)
	case protocol.KindAdminChangePortOK:
		return call(payload, h.OnAdminChangePortOK)
	case protocol.KindAdminChangePortFail:
		return call(payload, h.OnAdminChangePortFail)
	case protocol.KindAdminGenericOK:
		return call(payload, h.OnAdminGenericOK)
	case protocol.KindAdminError:
		return call(payload, h.OnAdminError)
	default:
		return ErrUnknownKind
	}
}

func call[T any](payload json.RawMessage, fn func(T)) error {
	var v T
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	fn(v)
	return nil
}
