package api

import (
	"context"
	"fmt"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

// SupportService handles support-console API operations. All of its
// endpoints require support-staff rights on the backend.
type SupportService struct {
	client *Client
}

// Check asks the backend whether the current user is support staff. A 403
// means "no" and is not an error; every other failure is surfaced.
func (s *SupportService) Check(ctx context.Context) (*models.SupportCheck, error) {
	var result models.SupportCheck
	err := s.client.Get(ctx, "/support/check", &result)
	if err != nil {
		if IsForbidden(err) {
			return &models.SupportCheck{IsSupport: false}, nil
		}
		return nil, err
	}
	return &result, nil
}

// Unassigned retrieves the queue of tickets no agent has taken yet.
func (s *SupportService) Unassigned(ctx context.Context, page, pageSize int) (*models.TicketList, error) {
	var result models.TicketList
	path := fmt.Sprintf("/support/tickets/unassigned?page=%d&page_size=%d", page, pageSize)
	if err := s.client.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Assigned retrieves the queue of tickets assigned to the current agent.
func (s *SupportService) Assigned(ctx context.Context, page, pageSize int) (*models.TicketList, error) {
	var result models.TicketList
	path := fmt.Sprintf("/support/tickets/assigned?page=%d&page_size=%d", page, pageSize)
	if err := s.client.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Assign takes the ticket for the current agent.
func (s *SupportService) Assign(ctx context.Context, id string) (*models.Ticket, error) {
	var result models.Ticket
	if err := s.client.Post(ctx, fmt.Sprintf("/support/tickets/%s/assign", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkRead marks the ticket's messages as read for the current agent.
func (s *SupportService) MarkRead(ctx context.Context, id string) error {
	return s.client.Post(ctx, fmt.Sprintf("/support/tickets/%s/mark-read", id), nil, nil)
}

// Messages retrieves a ticket's chat history through the support endpoint.
func (s *SupportService) Messages(ctx context.Context, id string) ([]models.Message, error) {
	var result []models.Message
	if err := s.client.Get(ctx, fmt.Sprintf("/support/tickets/%s/messages", id), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// AddMessage posts a chat message as the current agent. The backend rejects
// messages whose author_email differs from the authenticated user.
func (s *SupportService) AddMessage(ctx context.Context, id string, req *models.MessageCreate) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var result models.Message
	if err := s.client.Post(ctx, fmt.Sprintf("/support/tickets/%s/messages", id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
