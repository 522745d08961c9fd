package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

// TicketsService handles ticket-related API operations.
type TicketsService struct {
	client *Client
}

// List retrieves a page of tickets matching the filters.
func (s *TicketsService) List(ctx context.Context, filters models.TicketFilters, page, pageSize int) (*models.TicketList, error) {
	path := "/tickets/"
	if q := filters.Values(page, pageSize); len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result models.TicketList
	if err := s.client.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get retrieves a specific ticket by ID.
func (s *TicketsService) Get(ctx context.Context, id string) (*models.Ticket, error) {
	var result models.Ticket
	if err := s.client.Get(ctx, fmt.Sprintf("/tickets/%s", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create creates a new ticket. The backend opens it with status "открыт"
// regardless of the payload.
func (s *TicketsService) Create(ctx context.Context, req *models.TicketCreate) (*models.Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var result models.Ticket
	if err := s.client.Post(ctx, "/tickets/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update patches ticket fields. Nil fields in req are left unchanged.
func (s *TicketsService) Update(ctx context.Context, id string, req *models.TicketUpdate) (*models.Ticket, error) {
	var result models.Ticket
	if err := s.client.Patch(ctx, fmt.Sprintf("/tickets/%s", id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Messages retrieves the ticket's chat history in chronological order.
func (s *TicketsService) Messages(ctx context.Context, id string) ([]models.Message, error) {
	var result []models.Message
	if err := s.client.Get(ctx, fmt.Sprintf("/tickets/%s/messages", id), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// AddMessage appends a message to the ticket's chat and returns the stored
// message as echoed by the backend.
func (s *TicketsService) AddMessage(ctx context.Context, id string, req *models.MessageCreate) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var result models.Message
	if err := s.client.Post(ctx, fmt.Sprintf("/tickets/%s/messages", id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UnreadCount returns how many messages in the ticket the user has not read.
func (s *TicketsService) UnreadCount(ctx context.Context, id, userEmail string) (int, error) {
	var result models.UnreadCount
	path := fmt.Sprintf("/tickets/%s/unread-count?%s", id, url.Values{"user_email": {userEmail}}.Encode())
	if err := s.client.Get(ctx, path, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

// Stats retrieves aggregate ticket counts.
func (s *TicketsService) Stats(ctx context.Context) (*models.TicketStats, error) {
	var result models.TicketStats
	if err := s.client.Get(ctx, "/tickets/stats/summary", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
