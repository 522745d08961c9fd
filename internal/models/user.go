package models

import "time"

// UserProfile represents the authenticated user as returned by the backend.
type UserProfile struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	IsActive       bool      `json:"is_active"`
	IsSupportStaff bool      `json:"is_support_staff"`
	CreatedAt      time.Time `json:"created_at"`
}

// Token is the backend's login/register response: a bearer credential plus
// the profile it was issued for.
type Token struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        UserProfile `json:"user"`
}

// SupportCheck is the response of GET /support/check for support staff.
type SupportCheck struct {
	IsSupport bool `json:"is_support"`
	User      struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	} `json:"user"`
}
