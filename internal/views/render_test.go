package views

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

func TestRenderList(t *testing.T) {
	t.Run("empty state shows the call to action", func(t *testing.T) {
		var buf strings.Builder
		vm := &ListViewModel{Empty: true, Pagination: paginationWindow(1, 1)}
		require.NoError(t, renderList(&buf, vm))
		assert.Contains(t, buf.String(), "Create your first ticket with 'supportdesk tickets create'.")
	})

	t.Run("rows show labels and the pagination window", func(t *testing.T) {
		var buf strings.Builder
		vm := &ListViewModel{
			Tickets: []models.Ticket{{
				ID:            "t1",
				Title:         "VPN down",
				Status:        models.StatusInProgress,
				Priority:      models.PriorityHigh,
				Category:      models.CategoryTechnical,
				ReporterName:  "User",
				ReporterEmail: "user@example.com",
				CreatedAt:     time.Now().Add(-2 * time.Hour),
			}},
			Stats:      ListStats{Total: 21, InProgress: 1},
			Pagination: paginationWindow(2, 3),
		}
		require.NoError(t, renderList(&buf, vm))

		out := buf.String()
		assert.Contains(t, out, "[in progress] VPN down (high, technical) #t1")
		assert.Contains(t, out, "User <user@example.com>")
		assert.Contains(t, out, "hours ago")
		assert.Contains(t, out, "Page 2/3")
		assert.Contains(t, out, "<2>")
		assert.Contains(t, out, "[prev]")
		assert.Contains(t, out, "[next]")
	})
}

func TestRenderDetail(t *testing.T) {
	var buf strings.Builder
	assignee := "Agent Smith"
	ticket := &models.Ticket{
		ID:           "t2",
		Title:        "Printer jam",
		Status:       models.StatusOpen,
		Priority:     models.PriorityLow,
		Category:     models.CategoryGeneral,
		ReporterName: "User",
		AssigneeName: &assignee,
		Description:  "Paper everywhere.",
		CreatedAt:    time.Now().Add(-time.Minute),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, RenderDetail(&buf, ticket))

	out := buf.String()
	assert.Contains(t, out, "Ticket #t2")
	assert.Contains(t, out, "Status:    open")
	assert.Contains(t, out, "Assignee:  Agent Smith")
	assert.Contains(t, out, "Paper everywhere.")
}
