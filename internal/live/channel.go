// Package live maintains the push subscription that delivers ticket
// lifecycle events. The channel reconnects forever with fixed delays; the
// owning context is the only way to stop it.
package live

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

// State of the channel's connection machine.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "disconnected"
	}
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler receives every ticket event read from the channel. The connection
// ack is filtered out before dispatch. Relevance filtering (does this event
// concern the current user) is the handler's job.
type Handler func(models.Notification)

// Config represents channel configuration.
type Config struct {
	// URL of the notification endpoint (ws:// or wss://).
	URL string

	// ReconnectDelay is slept after an established connection drops.
	ReconnectDelay time.Duration

	// InitialRetryDelay is slept when the dial itself fails.
	InitialRetryDelay time.Duration

	Handler Handler
	Logger  *zap.Logger
}

// Channel is a reconnecting subscription to the ticket event feed.
type Channel struct {
	cfg    Config
	dialer *websocket.Dialer
	logger *zap.Logger
	state  atomic.Int32

	// sleep is replaced in tests to observe the chosen delay.
	sleep func(ctx context.Context, d time.Duration) bool
}

// NewChannel creates a channel. It does not connect until Run.
func NewChannel(cfg Config) *Channel {
	if cfg.ReconnectDelay == 0 {
		cfg.ReconnectDelay = 5 * time.Second
	}
	if cfg.InitialRetryDelay == 0 {
		cfg.InitialRetryDelay = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Channel{
		cfg:    cfg,
		dialer: websocket.DefaultDialer,
		logger: cfg.Logger,
		sleep:  sleepCtx,
	}
}

// State returns the current connection state.
func (c *Channel) State() State {
	return State(c.state.Load())
}

// Run connects and keeps reconnecting until ctx is cancelled. A failed dial
// waits the initial-retry delay; a dropped connection waits the reconnect
// delay. There is no backoff and no retry cap.
func (c *Channel) Run(ctx context.Context) error {
	defer c.state.Store(int32(StateDisconnected))

	for {
		c.state.Store(int32(StateConnecting))

		conn, _, err := c.dialer.DialContext(ctx, c.cfg.URL, nil)
		if err != nil {
			c.state.Store(int32(StateDisconnected))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("live channel dial failed",
				zap.String("url", c.cfg.URL),
				zap.Duration("retry_in", c.cfg.InitialRetryDelay),
				zap.Error(err))
			if !c.sleep(ctx, c.cfg.InitialRetryDelay) {
				return ctx.Err()
			}
			continue
		}

		c.state.Store(int32(StateOpen))
		c.logger.Info("live channel connected", zap.String("url", c.cfg.URL))

		c.pump(ctx, conn)

		c.state.Store(int32(StateDisconnected))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("live channel closed",
			zap.Duration("reconnect_in", c.cfg.ReconnectDelay))
		if !c.sleep(ctx, c.cfg.ReconnectDelay) {
			return ctx.Err()
		}
	}
}

// pump reads events until the connection drops or ctx is cancelled. A
// keepalive "ping" is written periodically; the server's "pong" replies are
// discarded.
func (c *Channel) pump(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
					return
				}
			case <-ctx.Done():
				conn.Close()
				return
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && ctx.Err() == nil {
				c.logger.Warn("live channel read error", zap.Error(err))
			}
			return
		}
		c.dispatch(data)
	}
}

// dispatch parses one frame and hands ticket events to the handler.
func (c *Channel) dispatch(data []byte) {
	if string(data) == "pong" {
		return
	}

	var n models.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		c.logger.Debug("live channel: unparseable frame", zap.ByteString("frame", data))
		return
	}
	if n.Event == models.EventConnected {
		c.logger.Debug("live channel acknowledged")
		return
	}
	if c.cfg.Handler != nil {
		c.cfg.Handler(n)
	}
}

// sleepCtx waits d or until ctx is done; it reports whether the full delay
// elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
