package entity

import "time"

type Chat struct {
	ID           string    `json:"id" firestore:"-"`
	Participants []string  `json:"participants" firestore:"participants"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID.
func (c *Chat) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

// ChatSummary is one row of a user's chat list.
type ChatSummary struct {
	ChatID      string   `json:"chat_id"`
	OtherUser   *User    `json:"other_user"`
	LastMessage *Message `json:"last_message,omitempty"`
	UnreadCount int      `json:"unread_count"`
}
