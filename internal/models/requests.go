package models

import (
	"fmt"
	"regexp"
	"strings"
)

// emailRe matches the backend's ticket email check: something@something.tld.
var emailRe = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// usernameRe matches the backend's username rule: letters, digits, underscore.
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidEmail reports whether s looks like an email address the backend
// would accept.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// TicketCreate is the payload of POST /tickets/.
type TicketCreate struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Priority      Priority `json:"priority"`
	Category      Category `json:"category"`
	ReporterEmail string   `json:"reporter_email"`
	ReporterName  string   `json:"reporter_name"`
}

// Validate mirrors the backend's field constraints so that obviously bad
// submissions never reach the network.
func (r *TicketCreate) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(r.Title) > 200 {
		return fmt.Errorf("title must be at most 200 characters")
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if len(r.Description) > 2000 {
		return fmt.Errorf("description must be at most 2000 characters")
	}
	if !r.Priority.Valid() {
		return fmt.Errorf("unknown priority %q", r.Priority)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if !ValidEmail(r.ReporterEmail) {
		return fmt.Errorf("invalid reporter email %q", r.ReporterEmail)
	}
	if strings.TrimSpace(r.ReporterName) == "" {
		return fmt.Errorf("reporter name is required")
	}
	return nil
}

// TicketUpdate is the payload of PATCH /tickets/{id}. Nil fields are left
// untouched by the backend.
type TicketUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Category    *Category `json:"category,omitempty"`
	AssigneeID  *string   `json:"assignee_id,omitempty"`
}

// MessageCreate is the payload of POST /tickets/{id}/messages.
type MessageCreate struct {
	Content     string `json:"content"`
	AuthorEmail string `json:"author_email"`
	AuthorName  string `json:"author_name"`
}

// Validate checks the message against the backend's constraints.
func (r *MessageCreate) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("message content is required")
	}
	if len(r.Content) > 1000 {
		return fmt.Errorf("message content must be at most 1000 characters")
	}
	if !ValidEmail(r.AuthorEmail) {
		return fmt.Errorf("invalid author email %q", r.AuthorEmail)
	}
	if strings.TrimSpace(r.AuthorName) == "" {
		return fmt.Errorf("author name is required")
	}
	return nil
}

// Credentials is the payload of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the payload of POST /auth/register.
type Registration struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// Validate mirrors the backend's registration rules.
func (r *Registration) Validate() error {
	if !ValidEmail(r.Email) {
		return fmt.Errorf("invalid email %q", r.Email)
	}
	if len(r.Username) < 3 {
		return fmt.Errorf("username must be at least 3 characters")
	}
	if !usernameRe.MatchString(r.Username) {
		return fmt.Errorf("username may contain only letters, digits and underscore")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return fmt.Errorf("full name is required")
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

// ProfileUpdate is the payload of PUT /auth/me. Nil fields are unchanged.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Username *string `json:"username,omitempty"`
}
