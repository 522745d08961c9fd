package views

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/supportdesk-io/supportdesk-cli/internal/api"
	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/ui"
)

func newCreateFixture(t *testing.T, handler http.HandlerFunc) (*CreateForm, *State, *ui.Toaster) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(&api.Config{BaseURL: server.URL})
	state := NewState(models.UserProfile{Email: "user@example.com", FullName: "User Example"})
	toaster := ui.NewToaster(io.Discard)
	return NewCreateForm(state, client.Tickets, toaster, zap.NewNop()), state, toaster
}

func TestCreateFormDefaults(t *testing.T) {
	form, _, _ := newCreateFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, models.PriorityMedium, form.Priority)
	assert.Equal(t, models.CategoryGeneral, form.Category)
}

func TestCreateFormSubmit(t *testing.T) {
	t.Run("invalid form never reaches the network", func(t *testing.T) {
		calls := 0
		form, _, toaster := newCreateFixture(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
		})
		form.Title = ""
		form.Description = "something broke"

		_, err := form.Submit(context.Background())
		require.Error(t, err)
		assert.Zero(t, calls)

		history := toaster.History()
		require.Len(t, history, 1)
		assert.Equal(t, ui.LevelError, history[0].Level)
	})

	t.Run("success clears the form and switches to the list", func(t *testing.T) {
		form, state, toaster := newCreateFixture(t, func(w http.ResponseWriter, r *http.Request) {
			var req models.TicketCreate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			// The reporter identity comes from the session, not the form.
			assert.Equal(t, "user@example.com", req.ReporterEmail)
			assert.Equal(t, "User Example", req.ReporterName)
			assert.Equal(t, models.PriorityHigh, req.Priority)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"t9","title":"VPN down","status":"открыт"}`))
		})

		form.Title = "VPN down"
		form.Description = "Cannot connect since this morning"
		form.Priority = models.PriorityHigh
		state.SetActiveTab(TabCreate)

		ticket, err := form.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "t9", ticket.ID)

		assert.Empty(t, form.Title)
		assert.Empty(t, form.Description)
		assert.Equal(t, models.PriorityMedium, form.Priority)
		assert.Equal(t, models.CategoryGeneral, form.Category)
		assert.Equal(t, TabList, state.ActiveTab())

		history := toaster.History()
		require.Len(t, history, 1)
		assert.Equal(t, ui.LevelSuccess, history[0].Level)
	})

	t.Run("backend failure keeps the form intact", func(t *testing.T) {
		form, state, _ := newCreateFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"insert failed"}`))
		})
		form.Title = "Keep me"
		form.Description = "Still here"
		state.SetActiveTab(TabCreate)

		_, err := form.Submit(context.Background())
		require.Error(t, err)
		assert.Equal(t, "Keep me", form.Title)
		assert.Equal(t, TabCreate, state.ActiveTab())
	})
}
