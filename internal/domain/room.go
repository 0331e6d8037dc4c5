package domain

import "strings"

type RoomID int64

// ChatInfo is one entry of the user's chat list.
type ChatInfo struct {
	RoomID       RoomID   `json:"room_id"`
	Name         string   `json:"name,omitempty"`
	Participants []string `json:"participants,omitempty"`
	IsOnline     bool     `json:"is_online"`
}

// DisplayName falls back to the participant list for unnamed private rooms.
func (c ChatInfo) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return strings.Join(c.Participants, ", ")
}

type ChatMessage struct {
	ID             int64  `json:"id"`
	RoomID         RoomID `json:"room_id"`
	SenderUsername string `json:"sender_username"`
	Content        string `json:"content"`
	Timestamp      string `json:"timestamp"`
}

// AdminRoom is one row of the admin room listing.
type AdminRoom struct {
	ID           RoomID   `json:"id"`
	Name         string   `json:"name,omitempty"`
	IsPrivate    bool     `json:"is_private"`
	CreatedAt    string   `json:"created_at"`
	Participants []string `json:"participants"`
}

// CallState exists only while a voice call is active.
type CallState struct {
	RoomID RoomID `json:"room_id"`
	Muted  bool   `json:"muted"`
}
