package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&Config{BaseURL: server.URL, Store: &fakeStore{token: "tok"}})
}

func TestTicketsList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tickets/", r.URL.Path)
		assert.Equal(t, "открыт", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tickets":[{"id":"t1","title":"A","status":"открыт"}],"total":11,"page":2,"page_size":10,"total_pages":2}`))
	})

	list, err := client.Tickets.List(context.Background(), models.TicketFilters{Status: models.StatusOpen}, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, list.Total)
	assert.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Tickets, 1)
	assert.Equal(t, models.StatusOpen, list.Tickets[0].Status)
}

func TestTicketsCreateValidatesBeforeNetwork(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := client.Tickets.Create(context.Background(), &models.TicketCreate{Title: ""})
	assert.Error(t, err)
	assert.Zero(t, calls)
}

func TestTicketsUnreadCountEncodesEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tickets/t1/unread-count", r.URL.Path)
		assert.Equal(t, "agent+oncall@example.com", r.URL.Query().Get("user_email"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":3}`))
	})

	n, err := client.Tickets.UnreadCount(context.Background(), "t1", "agent+oncall@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSupportCheck(t *testing.T) {
	t.Run("support staff", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/support/check", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"is_support":true,"user":{"email":"agent@example.com","full_name":"Agent"}}`))
		})

		check, err := client.Support.Check(context.Background())
		require.NoError(t, err)
		assert.True(t, check.IsSupport)
		assert.Equal(t, "agent@example.com", check.User.Email)
	})

	t.Run("403 means regular user, not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"detail":"Not support staff"}`))
		})

		check, err := client.Support.Check(context.Background())
		require.NoError(t, err)
		assert.False(t, check.IsSupport)
	})

	t.Run("other failures surface", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.Support.Check(context.Background())
		assert.Error(t, err)
	})
}

func TestSupportQueues(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, []string{"/support/tickets/unassigned", "/support/tickets/assigned"}, r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tickets":[],"total":0,"page":1,"page_size":20,"total_pages":0}`))
	})

	_, err := client.Support.Unassigned(context.Background(), 1, 20)
	require.NoError(t, err)
	_, err = client.Support.Assigned(context.Background(), 1, 20)
	require.NoError(t, err)
}

func TestSupportAssignAndMarkRead(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"t1","title":"A"}`))
	})

	_, err := client.Support.Assign(context.Background(), "t1")
	require.NoError(t, err)
	require.NoError(t, client.Support.MarkRead(context.Background(), "t1"))
	assert.Equal(t, []string{"/support/tickets/t1/assign", "/support/tickets/t1/mark-read"}, paths)
}

func TestAuthLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"jwt-1","token_type":"bearer","expires_in":1800,"user":{"email":"u@e.com","full_name":"U"}}`))
	})

	token, err := client.Auth.Login(context.Background(), &models.Credentials{Email: "u@e.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", token.AccessToken)
	assert.Equal(t, "u@e.com", token.User.Email)
}
