package http

import (
	"slices"
	"sync"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/google/uuid"
)

const maxNotices = 50

// CallView is what the call controls show.
type CallView struct {
	Active    bool   `json:"active"`
	Muted     bool   `json:"muted"`
	MuteLabel string `json:"mute_label"`
}

// Snapshot is the presentation state served to local UIs. Rev increases on
// every change so pollers can skip unchanged snapshots.
type Snapshot struct {
	Rev            uint64                   `json:"rev"`
	View           core.View                `json:"view"`
	Profile        *domain.Profile          `json:"profile,omitempty"`
	AdminControls  bool                     `json:"admin_controls"`
	Call           CallView                 `json:"call"`
	ChatTarget     *domain.RoomID           `json:"chat_target,omitempty"`
	Chats          []domain.ChatInfo        `json:"chats"`
	Friends        []domain.Friend          `json:"friends"`
	FriendRequests []domain.FriendRequest   `json:"friend_requests"`
	Messages       []domain.ChatMessage     `json:"messages"`
	Users          []domain.AdminUser       `json:"users"`
	Rooms          []domain.AdminRoom       `json:"rooms"`
	Notices        []core.Notice            `json:"notices"`
	Invitations    []core.PendingInvitation `json:"invitations"`
}

// ViewState is a Renderer and Prompter that keeps the latest rendering in
// memory for the control API.
type ViewState struct {
	text core.Translator

	mu   sync.RWMutex
	snap Snapshot
}

func NewViewState(text core.Translator) *ViewState {
	return &ViewState{text: text, snap: Snapshot{View: core.ViewSetup}}
}

func (v *ViewState) update(fn func(s *Snapshot)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.snap)
	v.snap.Rev++
}

// Snapshot returns a deep enough copy to be serialized without the lock.
func (v *ViewState) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s := v.snap
	s.Chats = slices.Clone(s.Chats)
	s.Friends = slices.Clone(s.Friends)
	s.FriendRequests = slices.Clone(s.FriendRequests)
	s.Messages = slices.Clone(s.Messages)
	s.Users = slices.Clone(s.Users)
	s.Rooms = slices.Clone(s.Rooms)
	s.Notices = slices.Clone(s.Notices)
	s.Invitations = slices.Clone(s.Invitations)
	s.Call.MuteLabel = v.text.T("muteMicButton")
	if s.Call.Muted {
		s.Call.MuteLabel = v.text.T("unmuteMicButton")
	}
	return s
}

func (v *ViewState) ShowView(view core.View) {
	v.update(func(s *Snapshot) { s.View = view })
}

func (v *ViewState) ShowProfile(p domain.Profile) {
	v.update(func(s *Snapshot) { s.Profile = &p })
}

func (v *ViewState) SetAdminControls(visible bool) {
	v.update(func(s *Snapshot) { s.AdminControls = visible })
}

func (v *ViewState) SetCallControls(active, muted bool) {
	v.update(func(s *Snapshot) { s.Call.Active, s.Call.Muted = active, muted })
}

func (v *ViewState) SetChatTarget(room domain.RoomID) {
	v.update(func(s *Snapshot) {
		s.ChatTarget = &room
		s.Messages = nil
	})
}

func (v *ViewState) Notify(n core.Notice) {
	v.update(func(s *Snapshot) {
		s.Notices = append(s.Notices, n)
		if len(s.Notices) > maxNotices {
			s.Notices = s.Notices[len(s.Notices)-maxNotices:]
		}
	})
}

func (v *ViewState) RenderChatList(chats []domain.ChatInfo) {
	v.update(func(s *Snapshot) { s.Chats = chats })
}

func (v *ViewState) RenderFriendList(friends []domain.Friend) {
	v.update(func(s *Snapshot) { s.Friends = friends })
}

func (v *ViewState) RenderFriendRequests(reqs []domain.FriendRequest) {
	v.update(func(s *Snapshot) { s.FriendRequests = reqs })
}

// AddFriendRequest puts the newest request first.
func (v *ViewState) AddFriendRequest(req domain.FriendRequest) {
	v.update(func(s *Snapshot) {
		s.FriendRequests = append([]domain.FriendRequest{req}, s.FriendRequests...)
	})
}

func (v *ViewState) RenderMessageHistory(msgs []domain.ChatMessage) {
	v.update(func(s *Snapshot) { s.Messages = msgs })
}

func (v *ViewState) AddChatMessage(msg domain.ChatMessage) {
	v.update(func(s *Snapshot) { s.Messages = append(s.Messages, msg) })
}

func (v *ViewState) RenderUsers(users []domain.AdminUser) {
	v.update(func(s *Snapshot) { s.Users = users })
}

func (v *ViewState) RenderRooms(rooms []domain.AdminRoom) {
	v.update(func(s *Snapshot) { s.Rooms = rooms })
}

func (v *ViewState) Prompt(inv core.PendingInvitation) {
	v.update(func(s *Snapshot) { s.Invitations = append(s.Invitations, inv) })
}

func (v *ViewState) Dismiss(id uuid.UUID) {
	v.update(func(s *Snapshot) {
		s.Invitations = slices.DeleteFunc(s.Invitations, func(inv core.PendingInvitation) bool {
			return inv.ID == id
		})
	})
}

// ClearNotices drops notices the UI has shown.
func (v *ViewState) ClearNotices() {
	v.update(func(s *Snapshot) { s.Notices = nil })
}

var (
	_ core.Renderer = (*ViewState)(nil)
	_ core.Prompter = (*ViewState)(nil)
)
