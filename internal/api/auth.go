package api

import (
	"context"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

// AuthService handles authentication API operations.
type AuthService struct {
	client *Client
}

// Register creates a new account and returns the issued credential.
func (s *AuthService) Register(ctx context.Context, req *models.Registration) (*models.Token, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var result models.Token
	if err := s.client.Post(ctx, "/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login exchanges credentials for a bearer token.
func (s *AuthService) Login(ctx context.Context, creds *models.Credentials) (*models.Token, error) {
	var result models.Token
	if err := s.client.Post(ctx, "/auth/login", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me retrieves the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context) (*models.UserProfile, error) {
	var result models.UserProfile
	if err := s.client.Get(ctx, "/auth/me", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProfile changes the user's full name and/or username.
func (s *AuthService) UpdateProfile(ctx context.Context, req *models.ProfileUpdate) (*models.UserProfile, error) {
	var result models.UserProfile
	if err := s.client.Put(ctx, "/auth/me", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
