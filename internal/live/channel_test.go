package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

// newWSServer runs handler on every upgraded connection and returns the
// ws:// URL.
func newWSServer(t *testing.T, handler func(*websocket.Conn)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		handler(conn)
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestDispatch(t *testing.T) {
	var got []models.Notification
	c := NewChannel(Config{Handler: func(n models.Notification) { got = append(got, n) }})

	c.dispatch([]byte("pong"))
	c.dispatch([]byte(`{"event":"connected"}`))
	c.dispatch([]byte(`garbage`))
	c.dispatch([]byte(`{"event":"updated","ticket_id":"t1","ticket":{"id":"t1","title":"VPN down"}}`))

	require.Len(t, got, 1)
	assert.Equal(t, models.EventUpdated, got[0].Event)
	assert.Equal(t, "t1", got[0].TicketID)
	require.NotNil(t, got[0].Ticket)
	assert.Equal(t, "VPN down", got[0].Ticket.Title)
}

func TestRunDialFailureDelay(t *testing.T) {
	// Nothing listens here.
	c := NewChannel(Config{URL: "ws://127.0.0.1:1", InitialRetryDelay: 10 * time.Second})

	var delays []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) bool {
		delays = append(delays, d)
		return false
	}

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, []time.Duration{10 * time.Second}, delays)
	assert.Equal(t, StateDisconnected, c.State())
}

func TestRunReconnectDelayAfterDrop(t *testing.T) {
	url := newWSServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"created","ticket":{"id":"t1","title":"New one"}}`))
		conn.Close()
	})

	received := make(chan models.Notification, 1)
	c := NewChannel(Config{
		URL:            url,
		ReconnectDelay: 5 * time.Second,
		Handler:        func(n models.Notification) { received <- n },
	})

	var delays []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) bool {
		delays = append(delays, d)
		return false
	}

	require.NoError(t, c.Run(context.Background()))

	// The event arrived before the drop, and the drop waits the reconnect
	// delay rather than the dial-retry delay.
	select {
	case n := <-received:
		assert.Equal(t, models.EventCreated, n.Event)
	default:
		t.Fatal("no notification dispatched")
	}
	assert.Equal(t, []time.Duration{5 * time.Second}, delays)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewChannel(Config{URL: "ws://127.0.0.1:1"})
	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateDisconnected, c.State())
}

func TestConfigDefaults(t *testing.T) {
	c := NewChannel(Config{URL: "ws://example/ws"})
	assert.Equal(t, 5*time.Second, c.cfg.ReconnectDelay)
	assert.Equal(t, 10*time.Second, c.cfg.InitialRetryDelay)
	assert.Equal(t, StateDisconnected, c.State())
}

func TestSleepCtx(t *testing.T) {
	assert.True(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleepCtx(ctx, time.Hour))
}
