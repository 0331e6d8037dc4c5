package app

import (
	"errors"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrInvitationNotFound = errors.New("invitation not found")

// Invitations holds the invitations waiting on a user decision, in arrival order.
type Invitations struct {
	logger  zerolog.Logger
	pending map[uuid.UUID]core.PendingInvitation
	order   []uuid.UUID
}

func NewInvitations(logger zerolog.Logger) *Invitations {
	return &Invitations{
		logger:  logger.With().Str("module", "app.registry").Logger(),
		pending: make(map[uuid.UUID]core.PendingInvitation),
	}
}

func (r *Invitations) Add(kind core.InvitationKind, from string, room domain.RoomID, text string) core.PendingInvitation {
	inv := core.PendingInvitation{
		ID:     uuid.New(),
		Kind:   kind,
		From:   from,
		RoomID: room,
		Text:   text,
	}
	r.pending[inv.ID] = inv
	r.order = append(r.order, inv.ID)
	r.logger.Info().Str("id", inv.ID.String()).Str("kind", string(kind)).Str("from", from).Msg("invitation pending")
	return inv
}

// Take removes and returns the invitation with id.
func (r *Invitations) Take(id uuid.UUID) (core.PendingInvitation, error) {
	inv, ok := r.pending[id]
	if !ok {
		return core.PendingInvitation{}, ErrInvitationNotFound
	}
	delete(r.pending, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return inv, nil
}

func (r *Invitations) List() []core.PendingInvitation {
	out := make([]core.PendingInvitation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.pending[id])
	}
	return out
}

// Clear drops every pending invitation and returns their ids.
func (r *Invitations) Clear() []uuid.UUID {
	ids := r.order
	r.pending = make(map[uuid.UUID]core.PendingInvitation)
	r.order = nil
	if len(ids) > 0 {
		r.logger.Info().Int("count", len(ids)).Msg("pending invitations dismissed")
	}
	return ids
}
