package orch

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dkeye/VoiceClient/internal/adapters/signal"
	"github.com/dkeye/VoiceClient/internal/adapters/store"
	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/dkeye/VoiceClient/internal/protocol"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type sentMsg struct {
	kind    protocol.Kind
	payload any
}

type fakeChannel struct {
	open     bool
	connects int
	closes   int
	onOpen   func()
	h        signal.Handlers
	sent     []sentMsg
	// failOn makes Send of that kind fail on an open channel.
	failOn protocol.Kind
}

func (c *fakeChannel) Connect(_ context.Context, onOpen func(), h signal.Handlers) {
	c.connects++
	c.open = false
	c.onOpen = onOpen
	c.h = h
}

func (c *fakeChannel) Send(kind protocol.Kind, payload any) error {
	if !c.open || (c.failOn != "" && kind == c.failOn) {
		return signal.ErrChannelNotOpen
	}
	c.sent = append(c.sent, sentMsg{kind, payload})
	return nil
}

func (c *fakeChannel) Current() signal.Status {
	if c.open {
		return signal.Status{State: core.ChannelOpen}
	}
	return signal.Status{State: core.ChannelClosed}
}

func (c *fakeChannel) Close() {
	c.open = false
	c.closes++
}

// accept simulates the server accepting the connection.
func (c *fakeChannel) accept() {
	c.open = true
	if c.onOpen != nil {
		c.onOpen()
	}
}

func (c *fakeChannel) deliver(t *testing.T, kind protocol.Kind, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal %s: %v", kind, err)
	}
	c.h.Dispatcher.Dispatch(kind, data)
}

func (c *fakeChannel) last(t *testing.T) sentMsg {
	t.Helper()
	if len(c.sent) == 0 {
		t.Fatal("nothing sent")
	}
	return c.sent[len(c.sent)-1]
}

type fakeMedia struct {
	denied bool
	active bool
	muted  bool
	starts int
	stops  int
}

func (m *fakeMedia) Start() bool {
	if m.denied {
		return false
	}
	m.starts++
	m.active = true
	return true
}

func (m *fakeMedia) Stop() {
	m.stops++
	m.active = false
}

func (m *fakeMedia) SetMute(muted bool) { m.muted = muted }
func (m *fakeMedia) Active() bool       { return m.active }

type fakeRenderer struct {
	view         core.View
	profile      domain.Profile
	admin        bool
	callActive   bool
	callMuted    bool
	chatTarget   domain.RoomID
	notices      []core.Notice
	chatRenders  int
	friendRender int
	reqRenders   int
	addedReqs    int
	history      []domain.ChatMessage
	users        []domain.AdminUser
}

func (r *fakeRenderer) ShowView(v core.View)                        { r.view = v }
func (r *fakeRenderer) ShowProfile(p domain.Profile)                { r.profile = p }
func (r *fakeRenderer) SetAdminControls(visible bool)               { r.admin = visible }
func (r *fakeRenderer) SetCallControls(active, muted bool)          { r.callActive, r.callMuted = active, muted }
func (r *fakeRenderer) SetChatTarget(room domain.RoomID)            { r.chatTarget = room }
func (r *fakeRenderer) Notify(n core.Notice)                        { r.notices = append(r.notices, n) }
func (r *fakeRenderer) RenderChatList([]domain.ChatInfo)            { r.chatRenders++ }
func (r *fakeRenderer) RenderFriendList([]domain.Friend)            { r.friendRender++ }
func (r *fakeRenderer) RenderFriendRequests([]domain.FriendRequest) { r.reqRenders++ }
func (r *fakeRenderer) AddFriendRequest(domain.FriendRequest)       { r.addedReqs++ }
func (r *fakeRenderer) RenderMessageHistory(m []domain.ChatMessage) { r.history = m }
func (r *fakeRenderer) AddChatMessage(m domain.ChatMessage)         { r.history = append(r.history, m) }
func (r *fakeRenderer) RenderUsers(u []domain.AdminUser)            { r.users = u }
func (r *fakeRenderer) RenderRooms([]domain.AdminRoom)              {}

func (r *fakeRenderer) lastNotice(t *testing.T) core.Notice {
	t.Helper()
	if len(r.notices) == 0 {
		t.Fatal("no notice shown")
	}
	return r.notices[len(r.notices)-1]
}

type fakePrompter struct {
	prompts   []core.PendingInvitation
	dismissed []uuid.UUID
}

func (p *fakePrompter) Prompt(inv core.PendingInvitation) { p.prompts = append(p.prompts, inv) }
func (p *fakePrompter) Dismiss(id uuid.UUID)              { p.dismissed = append(p.dismissed, id) }

// keyText renders "key|name=value|..." so tests can assert on keys and arguments.
type keyText struct{ lang string }

func (k *keyText) T(key string) string { return key }

func (k *keyText) Format(key string, pairs ...string) string {
	return strings.Join(append([]string{key}, pairs...), "|")
}

func (k *keyText) Language() string { return k.lang }

func (k *keyText) SetLanguage(_ context.Context, lang string) error {
	k.lang = lang
	return nil
}

type harness struct {
	o        *Orchestrator
	ch       *fakeChannel
	media    *fakeMedia
	render   *fakeRenderer
	prompter *fakePrompter
	store    core.LocalStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st := store.NewMemory()
	h := &harness{
		ch:       &fakeChannel{},
		media:    &fakeMedia{},
		render:   &fakeRenderer{},
		prompter: &fakePrompter{},
		store:    st,
	}
	h.o = &Orchestrator{
		Channel:   h.ch,
		Media:     h.media,
		Session:   app.NewSession(st, zerolog.Nop()),
		Snapshots: &app.Snapshots{},
		Invites:   app.NewInvitations(zerolog.Nop()),
		Renderer:  h.render,
		Prompter:  h.prompter,
		Text:      &keyText{lang: "en"},
		Log:       zerolog.Nop(),
	}
	return h
}

// login drives a successful login for username with the given role.
func (h *harness) login(t *testing.T, role domain.Role) {
	t.Helper()
	if err := h.o.Login(context.Background(), domain.Credentials{Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	h.ch.accept()
	h.ch.deliver(t, protocol.KindAuthOK, protocol.AuthOK{Token: "abc", Username: "alice", Role: role})
}

func (h *harness) joinRoom(t *testing.T, room domain.RoomID) {
	t.Helper()
	if err := h.o.JoinRoom(room); err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	h.ch.deliver(t, protocol.KindJoinOK, protocol.JoinOK{RoomID: room})
}
