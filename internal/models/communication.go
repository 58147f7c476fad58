package models

import "time"

// ChatMessage represents a single message posted in a class conversation.
type ChatMessage struct {
	ID         string    `json:"id"`
	TeamID     string    `json:"teamId"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
