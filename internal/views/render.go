package views

import (
	"io"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/tmpl"
)

var listTpl = tmpl.Must(`Your tickets ({{ stats.Total }} total — {{ stats.Open }} open, {{ stats.InProgress }} in progress, {{ stats.Finished }} finished)
{% if empty %}
No tickets match. Create your first ticket with 'supportdesk tickets create'.
{% else %}{% for t in tickets %}
[{{ t.Status }}] {{ t.Title }} ({{ t.Priority }}, {{ t.Category }}) #{{ t.ID }}
    reported by {{ t.Reporter }}, {{ t.CreatedAt|timeago }}, {{ t.Comments }} comment(s)
{% endfor %}
Page {{ p.Current }}/{{ p.TotalPages }}  {% if p.HasPrev %}[prev]{% else %}(prev){% endif %} {% for link in p.Pages %}{% if link.Current %}<{{ link.Number }}>{% else %} {{ link.Number }} {% endif %}{% endfor %} {% if p.HasNext %}[next]{% else %}(next){% endif %}
{% endif %}`)

var detailTpl = tmpl.Must(`Ticket #{{ t.ID }}
Title:     {{ t.Title }}
Status:    {{ t.Status }}
Priority:  {{ t.Priority }}
Category:  {{ t.Category }}
Reporter:  {{ t.Reporter }}
Assignee:  {{ t.Assignee }}
Created:   {{ t.CreatedAt|timeago }}
Updated:   {{ t.UpdatedAt|timeago }}
Comments:  {{ t.Comments }}

{{ t.Description }}
`)

// ticketRow flattens a ticket for the templates.
type ticketRow struct {
	ID        string
	Title     string
	Status    string
	Priority  string
	Category  string
	Reporter  string
	Assignee  string
	Comments  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func rowFor(t *models.Ticket) ticketRow {
	assignee := "unassigned"
	if t.AssigneeName != nil && *t.AssigneeName != "" {
		assignee = *t.AssigneeName
	}
	return ticketRow{
		ID:        t.ID,
		Title:     t.Title,
		Status:    t.Status.Label(),
		Priority:  t.Priority.Label(),
		Category:  t.Category.Label(),
		Reporter:  t.ReporterName + " <" + t.ReporterEmail + ">",
		Assignee:  assignee,
		Comments:  t.CommentsCount,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func renderList(w io.Writer, vm *ListViewModel) error {
	rows := make([]ticketRow, 0, len(vm.Tickets))
	for i := range vm.Tickets {
		rows = append(rows, rowFor(&vm.Tickets[i]))
	}
	return listTpl.ExecuteWriter(pongo2.Context{
		"tickets": rows,
		"stats":   vm.Stats,
		"p":       vm.Pagination,
		"empty":   vm.Empty,
	}, w)
}

// RenderDetail writes the read-only ticket detail to w.
func RenderDetail(w io.Writer, t *models.Ticket) error {
	return detailTpl.ExecuteWriter(pongo2.Context{"t": rowFor(t)}, w)
}
