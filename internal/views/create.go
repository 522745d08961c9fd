package views

import (
	"context"

	"go.uber.org/zap"

	"github.com/supportdesk-io/supportdesk-cli/internal/api"
	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/ui"
)

// CreateForm is the ticket creation flow. The reporter identity is
// pre-filled from the session and survives a successful submit; the
// editable fields are cleared.
type CreateForm struct {
	Title       string
	Description string
	Priority    models.Priority
	Category    models.Category

	state   *State
	tickets *api.TicketsService
	toaster *ui.Toaster
	logger  *zap.Logger
}

// NewCreateForm creates the form with backend defaults (medium priority,
// general category).
func NewCreateForm(state *State, tickets *api.TicketsService, toaster *ui.Toaster, logger *zap.Logger) *CreateForm {
	return &CreateForm{
		Priority: models.PriorityMedium,
		Category: models.CategoryGeneral,
		state:    state,
		tickets:  tickets,
		toaster:  toaster,
		logger:   logger,
	}
}

// Submit validates and posts the ticket. Validation failures never reach
// the network. On success the editable fields reset and the active tab
// switches to the list.
func (f *CreateForm) Submit(ctx context.Context) (*models.Ticket, error) {
	user := f.state.User()
	req := &models.TicketCreate{
		Title:         f.Title,
		Description:   f.Description,
		Priority:      f.Priority,
		Category:      f.Category,
		ReporterEmail: user.Email,
		ReporterName:  user.FullName,
	}
	if err := req.Validate(); err != nil {
		f.toaster.Error(err.Error())
		return nil, err
	}

	ticket, err := f.tickets.Create(ctx, req)
	if err != nil {
		f.toaster.Error(api.Detail(err, "Failed to create ticket"))
		return nil, err
	}

	f.Title = ""
	f.Description = ""
	f.Priority = models.PriorityMedium
	f.Category = models.CategoryGeneral
	f.state.SetActiveTab(TabList)

	f.toaster.Success("Ticket created: " + ticket.Title)
	f.logger.Info("ticket created", zap.String("ticket_id", ticket.ID))
	return ticket, nil
}
