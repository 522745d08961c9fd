package console

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/supportdesk-io/supportdesk-cli/internal/api"
	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

// ChatState is the chat session's lifecycle state.
type ChatState int

const (
	ChatClosed ChatState = iota
	ChatLoading
	ChatOpen
)

func (s ChatState) String() string {
	switch s {
	case ChatLoading:
		return "loading"
	case ChatOpen:
		return "open"
	default:
		return "closed"
	}
}

// ChatSession is the per-ticket support chat. A console holds exactly one:
// the ticket pointer is empty whenever the session is closed, and every
// mutation is guarded by an id match so that an action aimed at a ticket
// the session has since moved away from touches nothing.
type ChatSession struct {
	console *Console

	mu       sync.Mutex
	state    ChatState
	ticketID string
	ticket   *models.Ticket
	messages []models.Message
}

func newChatSession(c *Console) *ChatSession {
	return &ChatSession{console: c}
}

// State returns the session state.
func (s *ChatSession) State() ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TicketID returns the id of the ticket the session is pointed at, or ""
// when no session is open.
func (s *ChatSession) TicketID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticketID
}

// Ticket returns the loaded ticket, or nil.
func (s *ChatSession) Ticket() *models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticket
}

// Messages returns the chat history loaded so far, oldest first.
func (s *ChatSession) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Open points the session at ticketID and loads the ticket detail and
// message history in parallel. Messages are additionally marked read,
// fire-and-forget. If the pointer moved while the fetches were in flight
// the result is discarded.
func (s *ChatSession) Open(ctx context.Context, ticketID string) error {
	s.mu.Lock()
	s.state = ChatLoading
	s.ticketID = ticketID
	s.ticket = nil
	s.messages = nil
	s.mu.Unlock()

	var (
		wg         sync.WaitGroup
		ticket     *models.Ticket
		messages   []models.Message
		ticketErr  error
		messageErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ticket, ticketErr = s.console.client.Tickets.Get(ctx, ticketID)
	}()
	go func() {
		defer wg.Done()
		messages, messageErr = s.console.client.Support.Messages(ctx, ticketID)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticketID != ticketID {
		// The session was re-targeted or closed while loading.
		return nil
	}
	if ticketErr != nil {
		s.reset()
		s.console.toaster.Error(api.Detail(ticketErr, "Failed to load ticket"))
		return ticketErr
	}
	if messageErr != nil {
		s.reset()
		s.console.toaster.Error(api.Detail(messageErr, "Failed to load messages"))
		return messageErr
	}

	s.ticket = ticket
	s.messages = messages
	s.state = ChatOpen

	go func() {
		// Read receipts are best effort.
		if err := s.console.client.Support.MarkRead(context.WithoutCancel(ctx), ticketID); err != nil {
			s.console.logger.Debug("mark-read failed", zap.String("ticket_id", ticketID), zap.Error(err))
		}
	}()
	return nil
}

// Send posts a chat message as the agent and appends the backend's echo to
// the history. Empty input, or a session that is not open, is a silent
// no-op with no network call.
func (s *ChatSession) Send(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)

	s.mu.Lock()
	if content == "" || s.state != ChatOpen {
		s.mu.Unlock()
		return nil
	}
	ticketID := s.ticketID
	s.mu.Unlock()

	req := &models.MessageCreate{
		Content:     content,
		AuthorEmail: s.console.agent.Email,
		AuthorName:  s.console.agent.FullName,
	}
	msg, err := s.console.client.Support.AddMessage(ctx, ticketID, req)
	if err != nil {
		s.console.toaster.Error(api.Detail(err, "Failed to send message"))
		return err
	}

	s.mu.Lock()
	if s.ticketID == ticketID {
		s.messages = append(s.messages, *msg)
	}
	s.mu.Unlock()
	return nil
}

// UpdatePriority changes the open ticket's priority. It is a no-op, with no
// network call, when ticketID does not match the session pointer. On
// success the held ticket is updated in place and both queues refresh in
// the background.
func (s *ChatSession) UpdatePriority(ctx context.Context, ticketID string, priority models.Priority) error {
	s.mu.Lock()
	if s.state != ChatOpen || s.ticketID != ticketID {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	updated, err := s.console.client.Tickets.Update(ctx, ticketID, &models.TicketUpdate{Priority: &priority})
	if err != nil {
		s.console.toaster.Error(api.Detail(err, "Failed to update priority"))
		return err
	}

	s.mu.Lock()
	if s.ticketID == ticketID {
		s.ticket = updated
	}
	s.mu.Unlock()

	s.console.toaster.Success("Priority set to " + priority.Label())
	go s.console.RefreshQueues(context.WithoutCancel(ctx))
	return nil
}

// CloseTicket closes the open ticket after interactive confirmation. It is
// a no-op, with no network call, when ticketID does not match the session
// pointer or the agent declines. Success clears the session and refreshes
// both queues.
func (s *ChatSession) CloseTicket(ctx context.Context, ticketID string, confirm func(*models.Ticket) bool) error {
	s.mu.Lock()
	if s.state != ChatOpen || s.ticketID != ticketID {
		s.mu.Unlock()
		return nil
	}
	ticket := s.ticket
	s.mu.Unlock()

	if confirm != nil && !confirm(ticket) {
		return nil
	}

	closed := models.StatusClosed
	if _, err := s.console.client.Tickets.Update(ctx, ticketID, &models.TicketUpdate{Status: &closed}); err != nil {
		s.console.toaster.Error(api.Detail(err, "Failed to close ticket"))
		return err
	}

	s.mu.Lock()
	s.reset()
	s.mu.Unlock()

	s.console.toaster.Success("Ticket closed")
	return s.console.RefreshQueues(ctx)
}

// Close ends the session unconditionally: pointer to empty, content
// cleared. Closing an already-closed session is harmless.
func (s *ChatSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// reset clears all session content. Callers hold s.mu.
func (s *ChatSession) reset() {
	s.state = ChatClosed
	s.ticketID = ""
	s.ticket = nil
	s.messages = nil
}
