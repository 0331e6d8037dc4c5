package orch

import (
	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/dkeye/VoiceClient/internal/protocol"
)

func (o *Orchestrator) requireAuth() error {
	if !o.Session.State().Authenticated() {
		return app.ErrNotAuthenticated
	}
	return nil
}

// JoinRoom asks the server for a room. The chat target changes on join_ok.
func (o *Orchestrator) JoinRoom(room domain.RoomID) error {
	if err := o.requireAuth(); err != nil {
		return err
	}
	return o.send(protocol.KindJoinRoom, protocol.JoinRoom{RoomID: room})
}

// SendChatMessage targets the room bound by the latest join_ok.
func (o *Orchestrator) SendChatMessage(content string) error {
	if content == "" {
		return domain.ErrContentEmpty
	}
	room, err := o.Session.ChatTarget()
	if err != nil {
		return err
	}
	return o.send(protocol.KindSendChatMessage, protocol.SendChatMessage{RoomID: room, Content: content})
}

// LeaveRoom goes back to the main view, ending any call.
func (o *Orchestrator) LeaveRoom() error {
	if _, err := o.Session.LeaveRoom(); err != nil {
		return err
	}
	o.Media.Stop()
	o.Renderer.SetCallControls(false, false)
	o.Renderer.ShowView(core.ViewMain)
	return nil
}

// RefreshLists asks for the chat list, friend list and friend requests.
func (o *Orchestrator) RefreshLists() error {
	if err := o.requireAuth(); err != nil {
		return err
	}
	for _, k := range []protocol.Kind{protocol.KindGetChatList, protocol.KindGetFriendList, protocol.KindGetFriendRequests} {
		if err := o.send(k, nil); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) SendFriendRequest(username string) error {
	if username == "" {
		return domain.ErrUsernameEmpty
	}
	if err := o.requireAuth(); err != nil {
		return err
	}
	return o.send(protocol.KindSendFriendRequest, protocol.SendFriendRequest{Username: username})
}

func (o *Orchestrator) RespondToFriendRequest(requestID int64, accept bool) error {
	if err := o.requireAuth(); err != nil {
		return err
	}
	return o.send(protocol.KindRespondToFriendRequest, protocol.RespondToFriendRequest{RequestID: requestID, Accept: accept})
}

func (o *Orchestrator) DeleteFriend(friend domain.UserID) error {
	if err := o.requireAuth(); err != nil {
		return err
	}
	return o.send(protocol.KindDeleteFriend, protocol.FriendRef{FriendID: friend})
}

// QuickChat opens (or creates) the private room with a friend; the server
// answers with join_ok.
func (o *Orchestrator) QuickChat(friend domain.UserID) error {
	if err := o.requireAuth(); err != nil {
		return err
	}
	return o.send(protocol.KindQuickChatWithFriend, protocol.FriendRef{FriendID: friend})
}

func (o *Orchestrator) OnJoinOK(p protocol.JoinOK) {
	if _, err := o.Session.OnJoinOK(p.RoomID); err != nil {
		o.logger().Warn().Err(err).Int64("room", int64(p.RoomID)).Msg("join_ok ignored")
		return
	}
	o.Media.Stop()
	o.Renderer.ShowView(core.ViewCall)
	o.Renderer.SetChatTarget(p.RoomID)
	o.Renderer.SetCallControls(false, false)
}

func (o *Orchestrator) OnChatList(chats []domain.ChatInfo) {
	o.Snapshots.SetChats(chats)
	o.renderIfAuthenticated(func() { o.Renderer.RenderChatList(o.Snapshots.Chats()) })
}

func (o *Orchestrator) OnMessageHistory(msgs []domain.ChatMessage) {
	o.Renderer.RenderMessageHistory(msgs)
}

func (o *Orchestrator) OnNewChatMessage(msg domain.ChatMessage) {
	o.Renderer.AddChatMessage(msg)
}

func (o *Orchestrator) OnFriendList(friends []domain.Friend) {
	o.Snapshots.SetFriends(friends)
	o.renderIfAuthenticated(func() { o.Renderer.RenderFriendList(o.Snapshots.Friends()) })
}

func (o *Orchestrator) OnFriendRequests(reqs []domain.FriendRequest) {
	o.Snapshots.SetRequests(reqs)
	o.renderIfAuthenticated(func() { o.Renderer.RenderFriendRequests(o.Snapshots.Requests()) })
}

func (o *Orchestrator) OnNewFriendRequest(req domain.FriendRequest) {
	o.Snapshots.AddRequest(req)
	o.renderIfAuthenticated(func() { o.Renderer.AddFriendRequest(req) })
}

func (o *Orchestrator) OnFriendRequestSent(p protocol.FriendRequestSent) {
	o.notify(core.NoticeSuccess, "friendRequestSentSuccess", "username", p.Username)
}

func (o *Orchestrator) OnFriendRequestFail(n protocol.Notice) {
	o.notify(core.NoticeError, "friendRequestFail", "error", n.Text)
}

func (o *Orchestrator) OnFriendRequestAccepted(p protocol.FromUser) {
	o.notify(core.NoticeInfo, "friendRequestAccepted", "username", p.FromUsername)
	_ = o.send(protocol.KindGetFriendList, nil)
	_ = o.send(protocol.KindGetFriendRequests, nil)
}

func (o *Orchestrator) OnFriendRequestRejected(p protocol.FromUser) {
	o.notify(core.NoticeInfo, "friendRequestRejected", "username", p.FromUsername)
}

func (o *Orchestrator) OnInvitation(p protocol.Invitation) {
	text := o.Text.Format("chatInvitation", "username", p.FromUsername)
	o.Prompter.Prompt(o.Invites.Add(core.InviteChat, p.FromUsername, p.RoomID, text))
}
