// Package app holds the client session state machine and the small
// registries the orchestrator keeps next to it.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/rs/zerolog"
)

// TokenKey is the LocalStore key of the persisted auth token.
const TokenKey = "authToken"

var (
	ErrInvalidTransition    = errors.New("invalid session transition")
	ErrNotAuthenticated     = fmt.Errorf("%w: not authenticated", ErrInvalidTransition)
	ErrNotInRoom            = fmt.Errorf("%w: not in a room", ErrInvalidTransition)
	ErrNotInCall            = fmt.Errorf("%w: no active call", ErrInvalidTransition)
	ErrAlreadyInCall        = fmt.Errorf("%w: call already active", ErrInvalidTransition)
	ErrAlreadyAuthenticated = fmt.Errorf("%w: already authenticated", ErrInvalidTransition)
)

// Session tracks authentication and room/call state. It is owned by the
// event loop and is not safe for concurrent use.
type Session struct {
	store  core.LocalStore
	logger zerolog.Logger

	state   State
	profile domain.Profile
	room    domain.RoomID
	call    domain.CallState
}

func NewSession(store core.LocalStore, logger zerolog.Logger) *Session {
	return &Session{
		store:  store,
		logger: logger.With().Str("module", "app.session").Logger(),
	}
}

func (s *Session) State() State { return s.state }

func (s *Session) Profile() (domain.Profile, bool) {
	return s.profile, s.state.Authenticated()
}

// ChatTarget is the room bound by the most recent join_ok.
func (s *Session) ChatTarget() (domain.RoomID, error) {
	if !s.state.InRoom() {
		return 0, ErrNotInRoom
	}
	return s.room, nil
}

func (s *Session) Call() (domain.CallState, bool) {
	return s.call, s.state == StateInCall
}

// StoredToken returns the persisted token, if any.
func (s *Session) StoredToken(ctx context.Context) (string, bool) {
	tok, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			s.logger.Error().Err(err).Msg("read stored token")
		}
		return "", false
	}
	return tok, tok != ""
}

func (s *Session) transition(to State) {
	if s.state == to {
		return
	}
	s.logger.Info().Str("from", s.state.String()).Str("to", to.String()).Msg("state transition")
	s.state = to
}

// BeginAuth records that login, register or auth_with_token was sent.
func (s *Session) BeginAuth() error {
	switch s.state {
	case StateSetup, StateAuthenticating:
		s.transition(StateAuthenticating)
		return nil
	default:
		return ErrAlreadyAuthenticated
	}
}

// OnAuthOK persists the token and records the profile. It reports whether
// this was the transition into Authenticated.
func (s *Session) OnAuthOK(ctx context.Context, p domain.Profile) bool {
	if p.Token != "" {
		if err := s.store.Set(ctx, TokenKey, p.Token); err != nil {
			s.logger.Error().Err(err).Msg("persist token")
		}
	}
	s.profile = p
	if s.state.Authenticated() {
		s.logger.Info().Str("username", p.Username).Msg("profile refreshed")
		return false
	}
	s.transition(StateAuthenticated)
	s.logger.Info().Str("username", p.Username).Str("role", string(p.Role)).Msg("authenticated")
	return true
}

// OnAuthFail forces Setup from any state and clears the persisted token.
// It reports whether a call was active.
func (s *Session) OnAuthFail(ctx context.Context) bool {
	return s.reset(ctx)
}

// Logout clears the persisted token and returns to Setup. It reports
// whether a call was active.
func (s *Session) Logout(ctx context.Context) bool {
	return s.reset(ctx)
}

func (s *Session) reset(ctx context.Context) bool {
	hadCall := s.state == StateInCall
	if err := s.store.Delete(ctx, TokenKey); err != nil && !errors.Is(err, core.ErrNotFound) {
		s.logger.Error().Err(err).Msg("clear token")
	}
	s.profile = domain.Profile{}
	s.room = 0
	s.call = domain.CallState{}
	s.transition(StateSetup)
	return hadCall
}

// AbortAuth returns an in-flight authentication attempt to Setup. It is a
// no-op in any other state.
func (s *Session) AbortAuth() bool {
	if s.state != StateAuthenticating {
		return false
	}
	s.transition(StateSetup)
	return true
}

// OnJoinOK binds room as the chat target, ending any active call. It
// reports whether a call was active.
func (s *Session) OnJoinOK(room domain.RoomID) (bool, error) {
	if !s.state.Authenticated() {
		return false, ErrNotAuthenticated
	}
	hadCall := s.state == StateInCall
	s.room = room
	s.call = domain.CallState{}
	s.transition(StateInRoom)
	s.logger.Info().Int64("room", int64(room)).Msg("chat target bound")
	return hadCall, nil
}

// EnterCall starts a call in the bound room.
func (s *Session) EnterCall() (domain.CallState, error) {
	switch s.state {
	case StateInRoom:
	case StateInCall:
		return s.call, ErrAlreadyInCall
	default:
		return domain.CallState{}, ErrNotInRoom
	}
	s.call = domain.CallState{RoomID: s.room}
	s.transition(StateInCall)
	return s.call, nil
}

func (s *Session) SetMuted(muted bool) error {
	if s.state != StateInCall {
		return ErrNotInCall
	}
	s.call.Muted = muted
	return nil
}

// LeaveCall ends the call and stays in the room.
func (s *Session) LeaveCall() bool {
	if s.state != StateInCall {
		return false
	}
	s.call = domain.CallState{}
	s.transition(StateInRoom)
	return true
}

// LeaveRoom unbinds the chat target. It reports whether a call was active.
func (s *Session) LeaveRoom() (bool, error) {
	if !s.state.InRoom() {
		return false, ErrNotInRoom
	}
	hadCall := s.state == StateInCall
	s.room = 0
	s.call = domain.CallState{}
	s.transition(StateAuthenticated)
	return hadCall, nil
}
