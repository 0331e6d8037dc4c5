package protocol

import "github.com/dkeye/VoiceClient/internal/domain"

// Outbound payloads.

type AuthWithToken struct {
	Token string `json:"token"`
}

type JoinRoom struct {
	RoomID domain.RoomID `json:"roomId"`
}

type SendChatMessage struct {
	RoomID  domain.RoomID `json:"roomId"`
	Content string        `json:"content"`
}

type SendFriendRequest struct {
	Username string `json:"username"`
}

type RespondToFriendRequest struct {
	RequestID int64 `json:"requestId"`
	Accept    bool  `json:"accept"`
}

type FriendRef struct {
	FriendID domain.UserID `json:"friendId"`
}

type AdminCreateUser struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type AdminDeleteUser struct {
	UserID domain.UserID `json:"user_id"`
}

type AdminDeleteRoom struct {
	RoomID domain.RoomID `json:"room_id"`
}

type AdminChangePort struct {
	Port int `json:"port"`
}

// Inbound payloads.

type AuthOK struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

type JoinOK struct {
	RoomID domain.RoomID `json:"roomId"`
}

type FriendRequestSent struct {
	Username string `json:"username"`
}

// FromUser carries the peer named in accept/reject and voice invitations.
type FromUser struct {
	FromUsername string `json:"from_username"`
}

type Invitation struct {
	FromUsername string        `json:"from_username"`
	RoomID       domain.RoomID `json:"room_id"`
}
