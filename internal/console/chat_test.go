package console

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/ui"
)

func TestChatOpen(t *testing.T) {
	t.Run("loads ticket and history", func(t *testing.T) {
		c, _, _ := newConsoleFixture(t)
		chat := c.Chat()

		require.NoError(t, chat.Open(context.Background(), "a1"))
		assert.Equal(t, ChatOpen, chat.State())
		assert.Equal(t, "a1", chat.TicketID())

		ticket := chat.Ticket()
		require.NotNil(t, ticket)
		assert.Equal(t, "a1", ticket.ID)

		messages := chat.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, "help", messages[0].Content)
	})

	t.Run("load failure resets the session", func(t *testing.T) {
		c, backend, toaster := newConsoleFixture(t)
		backend.on("GET /tickets/gone", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail":"Ticket not found"}`)
		})

		err := c.Chat().Open(context.Background(), "gone")
		require.Error(t, err)
		assert.Equal(t, ChatClosed, c.Chat().State())
		assert.Empty(t, c.Chat().TicketID())
		assert.Equal(t, "Ticket not found", lastToast(t, toaster).Message)
	})
}

func TestChatSend(t *testing.T) {
	t.Run("posts and appends the echo", func(t *testing.T) {
		c, backend, _ := newConsoleFixture(t)
		chat := c.Chat()
		require.NoError(t, chat.Open(context.Background(), "a1"))

		require.NoError(t, chat.Send(context.Background(), "on it"))
		assert.Equal(t, 1, backend.calls("POST /support/tickets/a1/messages"))

		messages := chat.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, "echo", messages[1].Content)
		assert.True(t, messages[1].IsSupport)
	})

	t.Run("blank input is a silent no-op", func(t *testing.T) {
		c, backend, _ := newConsoleFixture(t)
		chat := c.Chat()
		require.NoError(t, chat.Open(context.Background(), "a1"))

		require.NoError(t, chat.Send(context.Background(), "   "))
		assert.Zero(t, backend.calls("POST /support/tickets/a1/messages"))
		assert.Len(t, chat.Messages(), 1)
	})

	t.Run("closed session never touches the network", func(t *testing.T) {
		c, backend, _ := newConsoleFixture(t)

		require.NoError(t, c.Chat().Send(context.Background(), "hello?"))
		assert.Zero(t, backend.calls("POST /support/tickets"))
	})
}

func TestChatPointerGuard(t *testing.T) {
	t.Run("priority change for another ticket is a no-op", func(t *testing.T) {
		c, backend, _ := newConsoleFixture(t)
		chat := c.Chat()
		require.NoError(t, chat.Open(context.Background(), "a1"))

		require.NoError(t, chat.UpdatePriority(context.Background(), "b2", models.PriorityLow))
		assert.Zero(t, backend.calls("PATCH /tickets/b2"))

		ticket := chat.Ticket()
		require.NotNil(t, ticket)
		assert.NotEqual(t, models.PriorityLow, ticket.Priority)
	})

	t.Run("close for another ticket is a no-op", func(t *testing.T) {
		c, backend, _ := newConsoleFixture(t)
		chat := c.Chat()
		require.NoError(t, chat.Open(context.Background(), "a1"))

		require.NoError(t, chat.CloseTicket(context.Background(), "b2", nil))
		assert.Zero(t, backend.calls("PATCH /tickets/b2"))
		assert.Equal(t, ChatOpen, chat.State())
	})
}

func TestChatUpdatePriority(t *testing.T) {
	c, backend, _ := newConsoleFixture(t)
	chat := c.Chat()
	require.NoError(t, chat.Open(context.Background(), "a1"))

	require.NoError(t, chat.UpdatePriority(context.Background(), "a1", models.PriorityCritical))
	assert.Equal(t, 1, backend.calls("PATCH /tickets/a1"))

	// The held ticket reflects the backend's echo.
	ticket := chat.Ticket()
	require.NotNil(t, ticket)
	assert.Equal(t, models.PriorityCritical, ticket.Priority)
	assert.Equal(t, ChatOpen, chat.State())
}

func TestChatCloseTicket(t *testing.T) {
	t.Run("declined confirmation changes nothing", func(t *testing.T) {
		c, backend, _ := newConsoleFixture(t)
		chat := c.Chat()
		require.NoError(t, chat.Open(context.Background(), "a1"))

		require.NoError(t, chat.CloseTicket(context.Background(), "a1", func(*models.Ticket) bool { return false }))
		assert.Zero(t, backend.calls("PATCH /tickets/a1"))
		assert.Equal(t, ChatOpen, chat.State())
	})

	t.Run("confirmed close resets the session and refreshes queues", func(t *testing.T) {
		c, backend, toaster := newConsoleFixture(t)
		chat := c.Chat()
		require.NoError(t, chat.Open(context.Background(), "a1"))

		require.NoError(t, chat.CloseTicket(context.Background(), "a1", func(*models.Ticket) bool { return true }))
		assert.Equal(t, 1, backend.calls("PATCH /tickets/a1"))
		assert.Equal(t, ChatClosed, chat.State())
		assert.Nil(t, chat.Ticket())
		assert.Equal(t, 1, backend.calls("GET /support/tickets/unassigned"))
		assert.Equal(t, ui.LevelSuccess, lastToast(t, toaster).Level)
	})
}

func TestChatClose(t *testing.T) {
	c, _, _ := newConsoleFixture(t)
	chat := c.Chat()
	require.NoError(t, chat.Open(context.Background(), "a1"))

	chat.Close()
	assert.Equal(t, ChatClosed, chat.State())
	assert.Empty(t, chat.TicketID())
	assert.Nil(t, chat.Ticket())
	assert.Empty(t, chat.Messages())

	// Closing again is harmless.
	chat.Close()
	assert.Equal(t, ChatClosed, chat.State())
}
