// Package orch is the client controller. It handles every inbound message,
// exposes the outbound action API and keeps session, audio and collaborators
// consistent. All methods run on the event loop.
package orch

import (
	"context"

	"github.com/dkeye/VoiceClient/internal/adapters/signal"
	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/app/dispatch"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/dkeye/VoiceClient/internal/protocol"
	"github.com/rs/zerolog"
)

// Channel is the connection owner.
type Channel interface {
	Connect(ctx context.Context, onOpen func(), h signal.Handlers)
	Send(kind protocol.Kind, payload any) error
	Current() signal.Status
	Close()
}

// Media is the audio pipeline as seen by the controller.
type Media interface {
	Start() bool
	Stop()
	SetMute(muted bool)
	Active() bool
}

// Localizer is a Translator whose language can be changed at runtime.
type Localizer interface {
	core.Translator
	Language() string
	SetLanguage(ctx context.Context, lang string) error
}

type Orchestrator struct {
	Channel   Channel
	Media     Media
	Session   *app.Session
	Snapshots *app.Snapshots
	Invites   *app.Invitations
	Renderer  core.Renderer
	Prompter  core.Prompter
	Text      Localizer
	Log       zerolog.Logger

	// Ctx bounds local storage calls made from inbound handlers.
	Ctx context.Context

	log *zerolog.Logger
}

var _ dispatch.Handler = (*Orchestrator)(nil)

func (o *Orchestrator) ctx() context.Context {
	if o.Ctx != nil {
		return o.Ctx
	}
	return context.Background()
}

func (o *Orchestrator) logger() *zerolog.Logger {
	if o.log == nil {
		l := o.Log.With().Str("module", "orch").Logger()
		o.log = &l
	}
	return o.log
}

func (o *Orchestrator) handlers() signal.Handlers {
	return signal.Handlers{
		Dispatcher: dispatch.New(o, o.Log),
		Error:      o.onChannelError,
		Close:      o.onChannelClose,
	}
}

// connect opens a fresh connection and sends kind/payload once it is open.
func (o *Orchestrator) connect(ctx context.Context, kind protocol.Kind, payload any) {
	o.Channel.Connect(ctx, func() {
		_ = o.Channel.Send(kind, payload)
	}, o.handlers())
}

func (o *Orchestrator) send(kind protocol.Kind, payload any) error {
	return o.Channel.Send(kind, payload)
}

func (o *Orchestrator) notify(level core.NoticeLevel, key string, pairs ...string) {
	o.Renderer.Notify(core.Notice{Level: level, Text: o.Text.Format(key, pairs...)})
}

// renderIfAuthenticated is the gate for list snapshots: the cache is always
// updated, rendering waits for authentication.
func (o *Orchestrator) renderIfAuthenticated(render func()) {
	if o.Session.State().Authenticated() {
		render()
	}
}

// Login validates creds and sends login on a fresh connection.
func (o *Orchestrator) Login(ctx context.Context, creds domain.Credentials) error {
	return o.authenticate(ctx, protocol.KindLogin, creds)
}

// Register validates creds and sends register on a fresh connection. The
// server closes the connection after answering.
func (o *Orchestrator) Register(ctx context.Context, creds domain.Credentials) error {
	return o.authenticate(ctx, protocol.KindRegister, creds)
}

func (o *Orchestrator) authenticate(ctx context.Context, kind protocol.Kind, creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		o.notify(core.NoticeError, "authEmptyFields")
		return err
	}
	if err := o.Session.BeginAuth(); err != nil {
		return err
	}
	o.logger().Info().Str("type", string(kind)).Str("username", creds.Username).Msg("authenticating")
	o.connect(ctx, kind, creds)
	return nil
}

// Resume tries the persisted token. Without one it shows the setup view
// and reports false.
func (o *Orchestrator) Resume(ctx context.Context) bool {
	tok, ok := o.Session.StoredToken(ctx)
	if !ok {
		o.Renderer.ShowView(core.ViewSetup)
		return false
	}
	if err := o.Session.BeginAuth(); err != nil {
		return false
	}
	o.logger().Info().Msg("resuming session with stored token")
	o.connect(ctx, protocol.KindAuthWithToken, protocol.AuthWithToken{Token: tok})
	return true
}

// Logout clears the token, tears down audio, closes the channel and resets
// all client state.
func (o *Orchestrator) Logout(ctx context.Context) {
	o.Media.Stop()
	o.Session.Logout(ctx)
	o.Channel.Close()
	o.resetClient()
	o.logger().Info().Msg("logged out")
}

func (o *Orchestrator) resetClient() {
	o.Snapshots.Reset()
	for _, id := range o.Invites.Clear() {
		o.Prompter.Dismiss(id)
	}
	o.Renderer.SetAdminControls(false)
	o.Renderer.SetCallControls(false, false)
	o.Renderer.ShowView(core.ViewSetup)
}

// SetLanguage switches the translation catalog and re-renders the cached lists.
func (o *Orchestrator) SetLanguage(ctx context.Context, lang string) error {
	if err := o.Text.SetLanguage(ctx, lang); err != nil {
		return err
	}
	o.renderIfAuthenticated(func() { o.Snapshots.Flush(o.Renderer) })
	return nil
}

func (o *Orchestrator) OnAuthOK(p protocol.AuthOK) {
	profile := domain.Profile{Username: p.Username, Role: p.Role, Token: p.Token}
	flush := o.Session.OnAuthOK(o.ctx(), profile)

	o.Renderer.ShowView(core.ViewMain)
	o.Renderer.ShowProfile(profile)
	o.Renderer.SetAdminControls(profile.IsAdmin())
	if flush {
		o.Snapshots.Flush(o.Renderer)
	}
}

func (o *Orchestrator) OnAuthFail(n protocol.Notice) {
	o.Media.Stop()
	o.Session.OnAuthFail(o.ctx())
	for _, id := range o.Invites.Clear() {
		o.Prompter.Dismiss(id)
	}
	o.Renderer.SetAdminControls(false)
	o.Renderer.SetCallControls(false, false)
	o.Renderer.ShowView(core.ViewSetup)
	o.notify(core.NoticeError, "genericError", "message", n.Text)
}

func (o *Orchestrator) OnRegisterOK(n protocol.Notice) {
	o.Session.AbortAuth()
	o.notify(core.NoticeSuccess, "genericSuccess", "message", n.Text)
}

func (o *Orchestrator) OnRegisterFail(n protocol.Notice) {
	o.Session.AbortAuth()
	o.notify(core.NoticeError, "genericError", "message", n.Text)
}

func (o *Orchestrator) onChannelError(err error) {
	o.logger().Error().Err(err).Msg("channel error")
	o.notify(core.NoticeError, "connectionError")
}

func (o *Orchestrator) onChannelClose(code int, reason string) {
	o.logger().Info().Int("code", code).Str("reason", reason).Msg("channel closed")
	if o.Session.AbortAuth() {
		o.Renderer.ShowView(core.ViewSetup)
	}
	if o.Session.LeaveCall() {
		o.Media.Stop()
		o.Renderer.SetCallControls(false, false)
	}
}

// Status is a read-only summary for presentation collaborators.
type Status struct {
	State    app.State                `json:"state"`
	Channel  signal.Status            `json:"channel"`
	Profile  *domain.Profile          `json:"profile,omitempty"`
	Room     *domain.RoomID           `json:"room,omitempty"`
	Call     *domain.CallState        `json:"call,omitempty"`
	Pending  []core.PendingInvitation `json:"pending"`
	Language string                   `json:"language"`
}

func (o *Orchestrator) Status() Status {
	st := Status{
		State:    o.Session.State(),
		Channel:  o.Channel.Current(),
		Pending:  o.Invites.List(),
		Language: o.Text.Language(),
	}
	if p, ok := o.Session.Profile(); ok {
		st.Profile = &p
	}
	if room, err := o.Session.ChatTarget(); err == nil {
		st.Room = &room
	}
	if c, ok := o.Session.Call(); ok {
		st.Call = &c
	}
	return st
}
