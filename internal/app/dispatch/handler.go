// Package dispatch routes inbound envelopes to typed handler methods.
package dispatch

import (
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/dkeye/VoiceClient/internal/protocol"
)

// Handler has one method per inbound kind. Implementations embed Unhandled
// and override what they care about.
type Handler interface {
	OnAuthOK(p protocol.AuthOK)
	OnAuthFail(n protocol.Notice)
	OnRegisterOK(n protocol.Notice)
	OnRegisterFail(n protocol.Notice)
	OnJoinOK(p protocol.JoinOK)

	OnChatList(chats []domain.ChatInfo)
	OnMessageHistory(msgs []domain.ChatMessage)
	OnNewChatMessage(msg domain.ChatMessage)

	OnFriendList(friends []domain.Friend)
	OnFriendRequests(reqs []domain.FriendRequest)
	OnNewFriendRequest(req domain.FriendRequest)
	OnFriendRequestSent(p protocol.FriendRequestSent)
	OnFriendRequestFail(n protocol.Notice)
	OnFriendRequestAccepted(p protocol.FromUser)
	OnFriendRequestRejected(p protocol.FromUser)

	OnInvitation(p protocol.Invitation)
	OnVoiceChatInvitation(p protocol.FromUser)

	OnAdminAllUsers(users []domain.AdminUser)
	OnAdminAllRooms(rooms []domain.AdminRoom)
	OnAdminCreateUserOK(n protocol.Notice)
	OnAdminCreateUserFail(n protocol.Notice)
	OnAdminChangePortOK(n protocol.Notice)
	OnAdminChangePortFail(n protocol.Notice)
	OnAdminGenericOK(n protocol.Notice)
	OnAdminError(n protocol.Notice)
}

// Unhandled is the explicit default: every kind is accepted and ignored.
type Unhandled struct{}

func (Unhandled) OnAuthOK(protocol.AuthOK)                       {}
func (Unhandled) OnAuthFail(protocol.Notice)                     {}
func (Unhandled) OnRegisterOK(protocol.Notice)                   {}
func (Unhandled) OnRegisterFail(protocol.Notice)                 {}
func (Unhandled) OnJoinOK(protocol.JoinOK)                       {}
func (Unhandled) OnChatList([]domain.ChatInfo)                   {}
func (Unhandled) OnMessageHistory([]domain.ChatMessage)          {}
func (Unhandled) OnNewChatMessage(domain.ChatMessage)            {}
func (Unhandled) OnFriendList([]domain.Friend)                   {}
func (Unhandled) OnFriendRequests([]domain.FriendRequest)        {}
func (Unhandled) OnNewFriendRequest(domain.FriendRequest)        {}
func (Unhandled) OnFriendRequestSent(protocol.FriendRequestSent) {}
func (Unhandled) OnFriendRequestFail(protocol.Notice)            {}
func (Unhandled) OnFriendRequestAccepted(protocol.FromUser)      {}
func (Unhandled) OnFriendRequestRejected(protocol.FromUser)      {}
func (Unhandled) OnInvitation(protocol.Invitation)               {}
func (Unhandled) OnVoiceChatInvitation(protocol.FromUser)        {}
func (Unhandled) OnAdminAllUsers([]domain.AdminUser)             {}
func (Unhandled) OnAdminAllRooms([]domain.AdminRoom)             {}
func (Unhandled) OnAdminCreateUserOK(protocol.Notice)            {}
func (Unhandled) OnAdminCreateUserFail(protocol.Notice)          {}
func (Unhandled) OnAdminChangePortOK(protocol.Notice)            {}
func (Unhandled) OnAdminChangePortFail(protocol.Notice)          {}
func (Unhandled) OnAdminGenericOK(protocol.Notice)               {}
func (Unhandled) OnAdminError(protocol.Notice)                   {}

var _ Handler = Unhandled{}
