package poller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/supportdesk-io/supportdesk-cli/internal/api"
	"github.com/supportdesk-io/supportdesk-cli/internal/console"
	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/ui"
)

func newTestConsole(t *testing.T) *console.Console {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/support/check" {
			io.WriteString(w, `{"is_support":true,"user":{"email":"agent@example.com"}}`)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/support/tickets/") {
			io.WriteString(w, `{"tickets":[],"total":0,"page":1,"page_size":20,"total_pages":0}`)
			return
		}
		io.WriteString(w, `{}`)
	}))
	t.Cleanup(server.Close)

	client := api.NewClient(&api.Config{BaseURL: server.URL})
	c, err := console.New(context.Background(), client, models.UserProfile{Email: "agent@example.com"}, ui.NewToaster(io.Discard), zap.NewNop(), 20)
	require.NoError(t, err)
	return c
}

func TestPollerLifecycle(t *testing.T) {
	p := New(newTestConsole(t), time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.Start(ctx))
	// Start is idempotent.
	require.NoError(t, p.Start(ctx))

	cancel()
	// Stop after cancellation is safe, as is stopping twice.
	p.Stop()
	p.Stop()
}

func TestPollerDefaults(t *testing.T) {
	p := New(newTestConsole(t), 0, nil)
	require.Equal(t, 30*time.Second, p.interval)
}
