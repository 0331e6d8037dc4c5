package core

import (
	"context"
	"errors"

	"github.com/dkeye/VoiceClient/internal/domain"
)

// Frame is a raw binary payload (e.g., audio frame).
type Frame []byte

// ErrNotFound is returned by a LocalStore for an absent key.
var ErrNotFound = errors.New("not found")

// LocalStore is durable client-local storage for small string values
// such as the auth token and the preferred language.
type LocalStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Translator resolves a key into a localized string, returning the key itself when absent.
type Translator interface {
	T(key string) string
	// Format translates key and fills {name} placeholders from name/value pairs.
	Format(key string, pairs ...string) string
}

// View names the top-level screen a renderer should show.
type View string

const (
	ViewSetup View = "setup"
	ViewMain  View = "main"
	ViewCall  View = "call"
	ViewAdmin View = "admin"
)

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is an already-localized message for the user.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

// Renderer is the presentation collaborator. It only consumes typed snapshots;
// anything it wants to change goes back through the outbound action API.
type Renderer interface {
	ShowView(v View)
	ShowProfile(p domain.Profile)
	SetAdminControls(visible bool)
	SetCallControls(active, muted bool)
	SetChatTarget(room domain.RoomID)
	Notify(n Notice)

	RenderChatList(chats []domain.ChatInfo)
	RenderFriendList(friends []domain.Friend)
	RenderFriendRequests(reqs []domain.FriendRequest)
	AddFriendRequest(req domain.FriendRequest)
	RenderMessageHistory(msgs []domain.ChatMessage)
	AddChatMessage(msg domain.ChatMessage)
	RenderUsers(users []domain.AdminUser)
	RenderRooms(rooms []domain.AdminRoom)
}
