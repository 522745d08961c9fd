package console

import (
	"io"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
	"github.com/supportdesk-io/supportdesk-cli/internal/tmpl"
)

var queuesTpl = tmpl.Must(`Unassigned ({{ unassigned|length }})
{% for t in unassigned %}  [{{ t.Priority }}] {{ t.Title }} #{{ t.ID }} — {{ t.Reporter }}, {{ t.CreatedAt|timeago }}
{% endfor %}{% if not unassigned %}  queue is empty
{% endif %}
Assigned to you ({{ assigned|length }})
{% for t in assigned %}  [{{ t.Status }}] {{ t.Title }} #{{ t.ID }}{% if t.Unread %} ({{ t.Unread }} unread){% endif %} — updated {{ t.UpdatedAt|timeago }}
{% endfor %}{% if not assigned %}  nothing assigned to you
{% endif %}`)

var chatTpl = tmpl.Must(`Chat — {{ ticket.Title }} [{{ ticket.Status }}/{{ ticket.Priority }}] #{{ ticket.ID }}
{% for m in messages %}{% if m.IsSupport %}<support>{% else %}<customer>{% endif %} {{ m.AuthorName }} ({{ m.CreatedAt|timeago }}): {{ m.Content }}
{% endfor %}{% if not messages %}  no messages yet
{% endif %}`)

type queueRow struct {
	ID        string
	Title     string
	Status    string
	Priority  string
	Reporter  string
	Unread    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Console) queueRows(list *models.TicketList) []queueRow {
	if list == nil {
		return nil
	}
	rows := make([]queueRow, 0, len(list.Tickets))
	for _, t := range list.Tickets {
		rows = append(rows, queueRow{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status.Label(),
			Priority:  t.Priority.Label(),
			Reporter:  t.ReporterName,
			Unread:    c.Unread(t.ID),
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}
	return rows
}

// RenderQueues writes both queue lists to w.
func (c *Console) RenderQueues(w io.Writer) error {
	unassigned, assigned := c.Queues()
	return queuesTpl.ExecuteWriter(pongo2.Context{
		"unassigned": c.queueRows(unassigned),
		"assigned":   c.queueRows(assigned),
	}, w)
}

// RenderChat writes the open chat session to w. A closed session renders
// nothing.
func (s *ChatSession) RenderChat(w io.Writer) error {
	s.mu.Lock()
	ticket := s.ticket
	messages := make([]models.Message, len(s.messages))
	copy(messages, s.messages)
	s.mu.Unlock()

	if ticket == nil {
		return nil
	}
	return chatTpl.ExecuteWriter(pongo2.Context{
		"ticket": map[string]interface{}{
			"ID":       ticket.ID,
			"Title":    ticket.Title,
			"Status":   ticket.Status.Label(),
			"Priority": ticket.Priority.Label(),
		},
		"messages": messages,
	}, w)
}
