package models

import "time"

// Notification event names pushed over the live channel.
const (
	EventConnected    = "connected"
	EventCreated      = "created"
	EventUpdated      = "updated"
	EventCommentAdded = "comment_added"
	EventMessageAdded = "message_added"
)

// Notification is the envelope delivered over the live-update channel.
// The connection ack carries only the event name; ticket events carry the
// affected ticket.
type Notification struct {
	Event     string    `json:"event"`
	TicketID  string    `json:"ticket_id,omitempty"`
	Ticket    *Ticket   `json:"ticket,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// IsTicketEvent reports whether the notification describes a ticket
// lifecycle change rather than a channel control message.
func (n *Notification) IsTicketEvent() bool {
	switch n.Event {
	case EventCreated, EventUpdated, EventCommentAdded, EventMessageAdded:
		return true
	}
	return false
}

// Describe returns the toast text for the event, or "" for events that do
// not produce a user-visible notification.
func (n *Notification) Describe() string {
	title := ""
	if n.Ticket != nil {
		title = n.Ticket.Title
	}
	switch n.Event {
	case EventCreated:
		return "Ticket created: " + title
	case EventUpdated:
		return "Ticket updated: " + title
	case EventCommentAdded, EventMessageAdded:
		return "New comment on: " + title
	}
	return ""
}
