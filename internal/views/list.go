package views

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/supportdesk-io/supportdesk-cli/internal/api"
	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/ui"
)

// PageLink is one entry of the pagination control.
type PageLink struct {
	Number  int
	Current bool
}

// Pagination is the rendered pagination window: the current page plus up to
// two pages on each side, with prev/next enabled flags at the edges.
type Pagination struct {
	Current    int
	TotalPages int
	Pages      []PageLink
	HasPrev    bool
	HasNext    bool
}

// paginationWindow builds the visible page links for current out of total.
func paginationWindow(current, total int) Pagination {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - 2
	if start < 1 {
		start = 1
	}
	end := current + 2
	if end > total {
		end = total
	}

	p := Pagination{
		Current:    current,
		TotalPages: total,
		HasPrev:    current > 1,
		HasNext:    current < total,
	}
	for n := start; n <= end; n++ {
		p.Pages = append(p.Pages, PageLink{Number: n, Current: n == current})
	}
	return p
}

// ListStats are the per-page status counters shown above the grid.
type ListStats struct {
	Open       int
	InProgress int
	Finished   int
	Total      int
}

// ListViewModel is everything the list template needs.
type ListViewModel struct {
	Tickets    []models.Ticket
	Stats      ListStats
	Pagination Pagination
	Empty      bool
	Filters    models.TicketFilters
}

// ListView is the paginated, filtered grid of the user's tickets.
type ListView struct {
	state   *State
	tickets *api.TicketsService
	toaster *ui.Toaster
	logger  *zap.Logger

	pageSize int
}

// NewListView creates the list view over the gateway's ticket service.
func NewListView(state *State, tickets *api.TicketsService, toaster *ui.Toaster, logger *zap.Logger, pageSize int) *ListView {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &ListView{
		state:    state,
		tickets:  tickets,
		toaster:  toaster,
		logger:   logger,
		pageSize: pageSize,
	}
}

// Load fetches the current page of the user's own tickets and builds the
// view model. Tickets are reordered by status rank before display; the
// server's order survives within each rank.
func (v *ListView) Load(ctx context.Context) (*ListViewModel, error) {
	filters := v.state.Filters()
	filters.ReporterEmail = v.state.User().Email

	list, err := v.tickets.List(ctx, filters, v.state.Page(), v.pageSize)
	if err != nil {
		v.toaster.Error(api.Detail(err, "Failed to load tickets"))
		return nil, err
	}

	tickets := make([]models.Ticket, len(list.Tickets))
	copy(tickets, list.Tickets)
	models.SortTicketsForDisplay(tickets)

	vm := &ListViewModel{
		Tickets:    tickets,
		Pagination: paginationWindow(list.Page, list.TotalPages),
		Empty:      len(tickets) == 0,
		Filters:    v.state.Filters(),
	}
	for _, t := range tickets {
		switch t.Status.Rank() {
		case 0:
			vm.Stats.Open++
		case 1:
			vm.Stats.InProgress++
		default:
			vm.Stats.Finished++
		}
	}
	vm.Stats.Total = list.Total
	return vm, nil
}

// SetFilters applies a new filter set, resetting to page 1.
func (v *ListView) SetFilters(f models.TicketFilters) {
	v.state.SetFilters(f)
}

// NextPage advances one page if one exists, using the last known total.
func (v *ListView) NextPage(totalPages int) {
	if p := v.state.Page(); p < totalPages {
		v.state.SetPage(p + 1)
	}
}

// PrevPage steps back one page, clamped at 1.
func (v *ListView) PrevPage() {
	v.state.SetPage(v.state.Page() - 1)
}

// Render writes the list view to w.
func (v *ListView) Render(w io.Writer, vm *ListViewModel) error {
	return renderList(w, vm)
}

// Detail fetches a single ticket for the read-only detail view.
func (v *ListView) Detail(ctx context.Context, id string) (*models.Ticket, error) {
	t, err := v.tickets.Get(ctx, id)
	if err != nil {
		v.toaster.Error(api.Detail(err, "Failed to load ticket"))
		return nil, err
	}
	return t, nil
}
