package models

import "time"

// Message represents one entry in a ticket's chat, ordered by creation time.
type Message struct {
	ID          string    `json:"_id"`
	TicketID    string    `json:"ticket_id"`
	Content     string    `json:"content"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	IsSupport   bool      `json:"is_support"`
	CreatedAt   time.Time `json:"created_at"`
}

// UnreadCount is the response of GET /tickets/{id}/unread-count.
type UnreadCount struct {
	Count int `json:"count"`
}
