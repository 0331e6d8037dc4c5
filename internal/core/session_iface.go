package core

import (
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/google/uuid"
)

type InvitationKind string

const (
	InviteChat  InvitationKind = "chat"
	InviteVoice InvitationKind = "voice"
)

// PendingInvitation is a yes/no question waiting on the user.
// It is resolved through an explicit call, never by blocking the event loop.
type PendingInvitation struct {
	ID     uuid.UUID      `json:"id"`
	Kind   InvitationKind `json:"kind"`
	From   string         `json:"from"`
	RoomID domain.RoomID  `json:"room_id,omitempty"`
	Text   string         `json:"text"`
}

// Prompter presents pending invitations. Prompt must return immediately.
type Prompter interface {
	Prompt(inv PendingInvitation)
	Dismiss(id uuid.UUID)
}
