package orch

import (
	"errors"
	"testing"

	"github.com/dkeye/VoiceClient/internal/adapters/signal"
	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/dkeye/VoiceClient/internal/protocol"
	"github.com/google/uuid"
)

func TestStartVoice(t *testing.T) {
	h := newHarness(t)
	h.login(t, domain.RoleMember)
	if err := h.o.StartVoice(); !errors.Is(err, app.ErrNotInRoom) {
		t.Fatalf("StartVoice outside a room = %v", err)
	}
	h.joinRoom(t, 7)
	if err := h.o.StartVoice(); err != nil {
		t.Fatalf("StartVoice: %v", err)
	}
	if h.ch.last(t).kind != protocol.KindRequestVoiceChat {
		t.Errorf("last sent = %s", h.ch.last(t).kind)
	}
	if h.o.Session.State() != app.StateInCall || !h.media.active || !h.render.callActive {
		t.Fatalf("state %v media %v controls %v", h.o.Session.State(), h.media.active, h.render.callActive)
	}

	if err := h.o.ToggleMute(); err != nil {
		t.Fatal(err)
	}
	if !h.media.muted || !h.render.callMuted || !h.media.active {
		t.Errorf("mute: media muted=%v active=%v controls=%v", h.media.muted, h.media.active, h.render.callMuted)
	}
	if err := h.o.HangUp(); err != nil {
		t.Fatal(err)
	}
	if h.o.Session.State() != app.StateInRoom || h.media.active {
		t.Errorf("after hang up: %v, media %v", h.o.Session.State(), h.media.active)
	}
}

func TestStartVoicePermissionDenied(t *testing.T) {
	h := newHarness(t)
	h.login(t, domain.RoleMember)
	h.joinRoom(t, 7)
	h.media.denied = true
	sent := len(h.ch.sent)

	if err := h.o.StartVoice(); !errors.Is(err, core.ErrPermission) {
		t.Fatalf("StartVoice = %v", err)
	}
	if h.o.Session.State() != app.StateInRoom {
		t.Errorf("state = %v", h.o.Session.State())
	}
	if len(h.ch.sent) != sent {
		t.Error("request_voice_chat sent without capture")
	}
	if n := h.render.lastNotice(t); n.Text != "microphoneError" {
		t.Errorf("notice = %+v", n)
	}
}

func TestStartVoiceNeedsOpenChannel(t *testing.T) {
	h := newHarness(t)
	h.login(t, domain.RoleMember)
	h.joinRoom(t, 7)
	h.ch.open = false

	if err := h.o.StartVoice(); !errors.Is(err, signal.ErrChannelNotOpen) {
		t.Fatalf("StartVoice = %v", err)
	}
	if h.o.Session.State() != app.StateInRoom {
		t.Errorf("state = %v, want in_room", h.o.Session.State())
	}
	if h.media.starts != 0 || h.media.active || h.render.callActive {
		t.Errorf("capture started on a closed channel: starts %d active %v controls %v", h.media.starts, h.media.active, h.render.callActive)
	}
}

func TestStartVoiceInviteFailureEndsCall(t *testing.T) {
	h := newHarness(t)
	h.login(t, domain.RoleMember)
	h.joinRoom(t, 7)
	h.ch.failOn = protocol.KindRequestVoiceChat

	if err := h.o.StartVoice(); !errors.Is(err, signal.ErrChannelNotOpen) {
		t.Fatalf("StartVoice = %v", err)
	}
	if h.o.Session.State() != app.StateInRoom {
		t.Errorf("state = %v, want in_room", h.o.Session.State())
	}
	if h.media.active || h.media.stops == 0 || h.render.callActive {
		t.Errorf("call left running: active %v stops %d controls %v", h.media.active, h.media.stops, h.render.callActive)
	}
}

func TestJoinOKStopsCall(t *testing.T) {
	h := newHarness(t)
	h.login(t, domain.RoleMember)
	h.joinRoom(t, 7)
	_ = h.o.StartVoice()
	h.ch.deliver(t, protocol.KindJoinOK, protocol.JoinOK{RoomID: 8})
	if h.media.active || h.render.callActive || h.o.Session.State() != app.StateInRoom {
		t.Errorf("call survived rebinding: media %v state %v", h.media.active, h.o.Session.State())
	}
}

func TestChatInvitation(t *testing.T) {
	h := newHarness(t)
	h.login(t, domain.RoleMember)
	h.ch.deliver(t, protocol.KindInvitation, protocol.Invitation{FromUsername: "bob", RoomID: 9})
	if len(h.prompter.prompts) != 1 {
		t.Fatalf("prompts = %d", len(h.prompter.prompts))
	}
	inv := h.prompter.prompts[0]
	if inv.Kind != core.InviteChat || inv.RoomID != 9 || inv.Text != "chatInvitation|username|bob" {
		t.Fatalf("invitation = %+v", inv)
	}

	sent := len(h.ch.sent)
	if err := h.o.ResolveInvitation(inv.ID, true); err != nil {
		t.Fatalf("ResolveInvitation: %v", err)
	}
	msg := h.ch.last(t)
	if p, ok := msg.payload.(protocol.JoinRoom); len(h.ch.sent) != sent+1 || !ok || p.RoomID != 9 {
		t.Fatalf("sent %s %#v", msg.kind, msg.payload)
	}
	if err := h.o.ResolveInvitation(inv.ID, true); !errors.Is(err, app.ErrInvitationNotFound) {
		t.Errorf("second resolve = %v", err)
	}
}

func TestDeclineInvitationChangesNothing(t *testing.T) {
	h := newHarness(t)
	h.login(t, domain.RoleMember)
	h.ch.deliver(t, protocol.KindInvitation, protocol.Invitation{FromUsername: "bob", RoomID: 9})
	sent := len(h.ch.sent)
	if err := h.o.ResolveInvitation(h.prompter.prompts[0].ID, false); err != nil {
		t.Fatal(err)
	}
	if len(h.ch.sent) != sent || h.o.Session.State() != app.StateAuthenticated {
		t.Error("declining changed state")
	}
	if err := h.o.ResolveInvitation(uuid.New(), true); !errors.Is(err, app.ErrInvitationNotFound) {
		t.Errorf("unknown id = %v", err)
	}
}

func TestVoiceInvitationAccept(t *testing.T) {
	h := newHarness(t)
	h.login(t, domain.RoleMember)
	h.joinRoom(t, 5)
	h.ch.deliver(t, protocol.KindVoiceChatInvitation, protocol.FromUser{FromUsername: "carol"})
	inv := h.prompter.prompts[0]
	if inv.Kind != core.InviteVoice {
		t.Fatalf("kind = %s", inv.Kind)
	}
	sent := len(h.ch.sent)
	if err := h.o.ResolveInvitation(inv.ID, true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if h.o.Session.State() != app.StateInCall || !h.media.active {
		t.Fatalf("state %v media %v", h.o.Session.State(), h.media.active)
	}
	if len(h.ch.sent) != sent {
		t.Error("accepting a voice invitation sent a control message")
	}
}

func TestFriendRequestAcceptedRefreshes(t *testing.T) {
	h := newHarness(t)
	h.login(t, domain.RoleMember)
	sent := len(h.ch.sent)
	h.ch.deliver(t, protocol.KindFriendRequestAccepted, protocol.FromUser{FromUsername: "bob"})
	if len(h.ch.sent) != sent+2 {
		t.Fatalf("sent %d messages, want 2", len(h.ch.sent)-sent)
	}
	if h.ch.sent[sent].kind != protocol.KindGetFriendList || h.ch.sent[sent+1].kind != protocol.KindGetFriendRequests {
		t.Errorf("refresh order = %s, %s", h.ch.sent[sent].kind, h.ch.sent[sent+1].kind)
	}
}

func TestAdminActions(t *testing.T) {
	h := newHarness(t)
	h.login(t, domain.RoleMember)
	if err := h.o.AdminGetAllUsers(); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("member AdminGetAllUsers = %v", err)
	}

	h = newHarness(t)
	h.login(t, domain.RoleAdmin)
	if err := h.o.AdminChangePort(70000); !errors.Is(err, domain.ErrInvalidPort) {
		t.Errorf("AdminChangePort(70000) = %v", err)
	}
	if err := h.o.AdminChangePort(8081); err != nil {
		t.Fatal(err)
	}
	if p, ok := h.ch.last(t).payload.(protocol.AdminChangePort); !ok || p.Port != 8081 {
		t.Errorf("payload = %#v", h.ch.last(t).payload)
	}
	if err := h.o.AdminCreateUser(domain.Credentials{Username: "dave"}, domain.RoleMember); !errors.Is(err, domain.ErrPasswordEmpty) {
		t.Errorf("AdminCreateUser without password = %v", err)
	}
	if err := h.o.AdminDeleteUser(12); err != nil {
		t.Fatal(err)
	}
	if p, ok := h.ch.last(t).payload.(protocol.AdminDeleteUser); !ok || p.UserID != 12 {
		t.Errorf("payload = %#v", h.ch.last(t).payload)
	}
	h.ch.deliver(t, protocol.KindAdminAllUsers, []domain.AdminUser{{ID: 1, Username: "root", Role: domain.RoleAdmin}})
	if len(h.render.users) != 1 || h.render.users[0].ID != 1 {
		t.Errorf("users = %+v", h.render.users)
	}
}
