package app

import (
	"slices"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
)

// Snapshots caches the latest list-bearing events so they can be rendered
// once the session is authenticated, or again after a language change.
type Snapshots struct {
	chats    []domain.ChatInfo
	friends  []domain.Friend
	requests []domain.FriendRequest
}

func (s *Snapshots) SetChats(v []domain.ChatInfo)         { s.chats = slices.Clone(v) }
func (s *Snapshots) SetFriends(v []domain.Friend)         { s.friends = slices.Clone(v) }
func (s *Snapshots) SetRequests(v []domain.FriendRequest) { s.requests = slices.Clone(v) }
func (s *Snapshots) AddRequest(req domain.FriendRequest)  { s.requests = append(s.requests, req) }

func (s *Snapshots) Chats() []domain.ChatInfo         { return slices.Clone(s.chats) }
func (s *Snapshots) Friends() []domain.Friend         { return slices.Clone(s.friends) }
func (s *Snapshots) Requests() []domain.FriendRequest { return slices.Clone(s.requests) }

// Flush renders all three lists, including empty ones.
func (s *Snapshots) Flush(r core.Renderer) {
	r.RenderChatList(s.Chats())
	r.RenderFriendList(s.Friends())
	r.RenderFriendRequests(s.Requests())
}

func (s *Snapshots) Reset() {
	s.chats, s.friends, s.requests = nil, nil, nil
}
