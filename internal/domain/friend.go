package domain

type Friend struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
	IsOnline bool   `json:"is_online"`
}

type FriendRequest struct {
	ID           int64  `json:"id"`
	FromUserID   UserID `json:"from_user_id"`
	FromUsername string `json:"from_username"`
	ToUserID     UserID `json:"to_user_id"`
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
}
