// Package console implements the support-staff side of the client: the
// unassigned/assigned queues, ticket acceptance, and the per-ticket chat
// session. None of it is reachable for users the backend does not report as
// support staff.
package console

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/supportdesk-io/supportdesk-cli/internal/api"
	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/ui"
)

// ErrNotSupportStaff is returned by New when the capability check reports a
// regular user.
var ErrNotSupportStaff = errors.New("support console requires support-staff rights")

// Console is the support console for one agent.
type Console struct {
	client  *api.Client
	agent   models.UserProfile
	toaster *ui.Toaster
	logger  *zap.Logger

	pageSize int

	mu         sync.RWMutex
	unassigned *models.TicketList
	assigned   *models.TicketList
	unread     map[string]int

	chat *ChatSession
}

// New checks the capability flag and constructs the console. The check runs
// once at startup; ErrNotSupportStaff means the backend said no.
func New(ctx context.Context, client *api.Client, agent models.UserProfile, toaster *ui.Toaster, logger *zap.Logger, pageSize int) (*Console, error) {
	check, err := client.Support.Check(ctx)
	if err != nil {
		return nil, err
	}
	if !check.IsSupport {
		return nil, ErrNotSupportStaff
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	c := &Console{
		client:   client,
		agent:    agent,
		toaster:  toaster,
		logger:   logger,
		pageSize: pageSize,
		unread:   make(map[string]int),
	}
	c.chat = newChatSession(c)
	return c, nil
}

// Chat returns the console's single chat session.
func (c *Console) Chat() *ChatSession {
	return c.chat
}

// RefreshQueues reloads both queues. A failure keeps the previous snapshot
// and surfaces as a toast.
func (c *Console) RefreshQueues(ctx context.Context) error {
	unassigned, err := c.client.Support.Unassigned(ctx, 1, c.pageSize)
	if err != nil {
		c.toaster.Error(api.Detail(err, "Failed to load unassigned queue"))
		return err
	}
	assigned, err := c.client.Support.Assigned(ctx, 1, c.pageSize)
	if err != nil {
		c.toaster.Error(api.Detail(err, "Failed to load assigned queue"))
		return err
	}

	c.mu.Lock()
	c.unassigned = unassigned
	c.assigned = assigned
	c.mu.Unlock()
	return nil
}

// Queues returns the last loaded queue snapshots; either may be nil before
// the first refresh.
func (c *Console) Queues() (unassigned, assigned *models.TicketList) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unassigned, c.assigned
}

// RefreshUnread recounts unread messages for every assigned ticket. Count
// failures are ignored per ticket; the badge just goes stale.
func (c *Console) RefreshUnread(ctx context.Context) {
	c.mu.RLock()
	assigned := c.assigned
	c.mu.RUnlock()
	if assigned == nil {
		return
	}

	counts := make(map[string]int, len(assigned.Tickets))
	for _, t := range assigned.Tickets {
		n, err := c.client.Tickets.UnreadCount(ctx, t.ID, c.agent.Email)
		if err != nil {
			c.logger.Debug("unread count failed", zap.String("ticket_id", t.ID), zap.Error(err))
			continue
		}
		counts[t.ID] = n
	}

	c.mu.Lock()
	for id, n := range counts {
		c.unread[id] = n
	}
	c.mu.Unlock()
}

// Unread returns the last known unread count for a ticket.
func (c *Console) Unread(ticketID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unread[ticketID]
}

// Accept runs the take-a-ticket flow: show the ticket to the agent via the
// confirm callback, assign it, then optionally set the chosen priority.
// Assignment failure aborts the flow; a priority failure after a successful
// assignment is downgraded to a warning. Both queues refresh in every
// outcome that got past the confirmation.
func (c *Console) Accept(ctx context.Context, ticketID string, priority models.Priority, confirm func(*models.Ticket) bool) error {
	ticket, err := c.client.Tickets.Get(ctx, ticketID)
	if err != nil {
		c.toaster.Error(api.Detail(err, "Failed to load ticket"))
		return err
	}
	if confirm != nil && !confirm(ticket) {
		return nil
	}

	if _, err := c.client.Support.Assign(ctx, ticketID); err != nil {
		c.toaster.Error(api.Detail(err, "Failed to accept ticket"))
		return err
	}

	priorityFailed := false
	if priority != "" {
		if _, err := c.client.Tickets.Update(ctx, ticketID, &models.TicketUpdate{Priority: &priority}); err != nil {
			// Assignment already happened; the agent keeps the ticket.
			priorityFailed = true
			c.logger.Warn("priority update after accept failed",
				zap.String("ticket_id", ticketID), zap.Error(err))
		}
	}
	if priorityFailed {
		c.toaster.Warning("Ticket accepted but priority not updated")
	} else {
		c.toaster.Success("Ticket accepted: " + ticket.Title)
	}
	return c.RefreshQueues(ctx)
}
