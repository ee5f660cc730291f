package models

import "time"

type Message struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"sender_id"`
	RecipientID    string    `json:"recipient_id,omitempty"`
	Subject        string    `json:"subject,omitempty"`
	Content        string    `json:"content"`
	IsAdminMessage bool      `json:"is_admin_message"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
