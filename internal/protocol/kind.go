// Package protocol describes the wire format spoken over the client channel:
// JSON envelopes on text frames and raw PCM on binary frames.
package protocol

// Kind is the message-type tag carried in an envelope.
type Kind string

// Outbound kinds (client -> server).
const (
	KindLogin                  Kind = "login"
	KindRegister               Kind = "register"
	KindAuthWithToken          Kind = "auth_with_token"
	KindJoinRoom               Kind = "join_room"
	KindSendChatMessage        Kind = "send_chat_message"
	KindSendFriendRequest      Kind = "send_friend_request"
	KindRespondToFriendRequest Kind = "respond_to_friend_request"
	KindDeleteFriend           Kind = "delete_friend"
	KindQuickChatWithFriend    Kind = "quick_chat_with_friend"
	KindRequestVoiceChat       Kind = "request_voice_chat"
	KindGetChatList            Kind = "get_chat_list"
	KindGetFriendList          Kind = "get_friend_list"
	KindGetFriendRequests      Kind = "get_friend_requests"
	KindAdminGetAllUsers       Kind = "admin_get_all_users"
	KindAdminGetAllRooms       Kind = "admin_get_all_rooms"
	KindAdminCreateUser        Kind = "admin_create_user"
	KindAdminDeleteUser        Kind = "admin_delete_user"
	KindAdminDeleteRoom        Kind = "admin_delete_room"
	KindAdminShutdownServer    Kind = "admin_shutdown_server"
	KindAdminChangePort        Kind = "admin_change_port"
)

// Inbound kinds (server -> client).
const (
	KindAuthOK                Kind = "auth_ok"
	KindAuthFail              Kind = "auth_fail"
	KindRegisterOK            Kind = "register_ok"
	KindRegisterFail          Kind = "register_fail"
	KindJoinOK                Kind = "join_ok"
	KindChatList              Kind = "chat_list"
	KindMessageHistory        Kind = "message_history"
	KindNewChatMessage        Kind = "new_chat_message"
	KindFriendList            Kind = "friend_list"
	KindFriendRequests        Kind = "friend_requests"
	KindNewFriendRequest      Kind = "new_friend_request"
	KindFriendRequestSent     Kind = "friend_request_sent"
	KindFriendRequestFail     Kind = "friend_request_fail"
	KindFriendRequestAccepted Kind = "friend_request_accepted"
	KindFriendRequestRejected Kind = "friend_request_rejected"
	KindInvitation            Kind = "invitation"
	KindVoiceChatInvitation   Kind = "voice_chat_invitation"
	KindAdminAllUsers         Kind = "admin_all_users"
	KindAdminAllRooms         Kind = "admin_all_rooms"
	KindAdminCreateUserOK     Kind = "admin_create_user_ok"
	KindAdminCreateUserFail   Kind = "admin_create_user_fail"
	KindAdminChangePortOK     Kind = "admin_change_port_ok"
	KindAdminChangePortFail   Kind = "admin_change_port_fail"
	KindAdminGenericOK        Kind = "admin_generic_ok"
	KindAdminError            Kind = "admin_error"
)

var inbound = []Kind{
	KindAuthOK, KindAuthFail, KindRegisterOK, KindRegisterFail,
	KindJoinOK, KindChatList, KindMessageHistory, KindNewChatMessage,
	KindFriendList, KindFriendRequests, KindNewFriendRequest,
	KindFriendRequestSent, KindFriendRequestFail,
	KindFriendRequestAccepted, KindFriendRequestRejected,
	KindInvitation, KindVoiceChatInvitation,
	KindAdminAllUsers, KindAdminAllRooms,
	KindAdminCreateUserOK, KindAdminCreateUserFail,
	KindAdminChangePortOK, KindAdminChangePortFail,
	KindAdminGenericOK, KindAdminError,
}

var outbound = []Kind{
	KindLogin, KindRegister, KindAuthWithToken,
	KindJoinRoom, KindSendChatMessage,
	KindSendFriendRequest, KindRespondToFriendRequest, KindDeleteFriend,
	KindQuickChatWithFriend, KindRequestVoiceChat,
	KindGetChatList, KindGetFriendList, KindGetFriendRequests,
	KindAdminGetAllUsers, KindAdminGetAllRooms, KindAdminCreateUser,
	KindAdminDeleteUser, KindAdminDeleteRoom, KindAdminShutdownServer,
	KindAdminChangePort,
}

var inboundSet = func() map[Kind]struct{} {
	m := make(map[Kind]struct{}, len(inbound))
	for _, k := range inbound {
		m[k] = struct{}{}
	}
	return m
}()

// InboundKinds returns the catalog of server -> client tags.
func InboundKinds() []Kind {
	out := make([]Kind, len(inbound))
	copy(out, inbound)
	return out
}

// OutboundKinds returns the catalog of client -> server tags.
func OutboundKinds() []Kind {
	out := make([]Kind, len(outbound))
	copy(out, outbound)
	return out
}

// IsInbound reports whether k belongs to the server -> client catalog.
func (k Kind) IsInbound() bool {
	_, ok := inboundSet[k]
	return ok
}

func (k Kind) String() string { return string(k) }
