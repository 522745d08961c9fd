package models

import (
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Status is a ticket lifecycle status. The wire values are the backend's
// native (Russian) vocabulary and must round-trip unchanged.
type Status string

const (
	StatusOpen       Status = "открыт"
	StatusInProgress Status = "в_процессе"
	StatusResolved   Status = "решен"
	StatusClosed     Status = "закрыт"
)

// Valid reports whether s is one of the backend's known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Label returns the English display label for the status.
func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusInProgress:
		return "in progress"
	case StatusResolved:
		return "resolved"
	case StatusClosed:
		return "closed"
	}
	return string(s)
}

// Rank returns the display sort rank: open tickets first, in-progress next,
// finished last. An empty or unknown status ranks with open so that anything
// the server starts sending that this client does not know about stays
// visible at the top of the list instead of being buried.
func (s Status) Rank() int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusResolved, StatusClosed:
		return 2
	default:
		return 0
	}
}

// Priority is a ticket priority. Wire values are the backend's vocabulary.
type Priority string

const (
	PriorityLow      Priority = "низкий"
	PriorityMedium   Priority = "средний"
	PriorityHigh     Priority = "высокий"
	PriorityCritical Priority = "критический"
)

// Valid reports whether p is one of the backend's known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Label returns the English display label for the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	}
	return string(p)
}

// ParsePriority maps an English label (as typed on the command line) to the
// wire value. The wire value itself is accepted too.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "critical":
		return PriorityCritical, true
	}
	if p := Priority(s); p.Valid() {
		return p, true
	}
	return "", false
}

// Category is a ticket category. Wire values are the backend's vocabulary.
type Category string

const (
	CategoryTechnical      Category = "техническая"
	CategoryBilling        Category = "биллинг"
	CategoryGeneral        Category = "общий"
	CategoryBugReport      Category = "баг_репорт"
	CategoryFeatureRequest Category = "запрос_функции"
)

// Valid reports whether c is one of the backend's known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTechnical, CategoryBilling, CategoryGeneral, CategoryBugReport, CategoryFeatureRequest:
		return true
	}
	return false
}

// Label returns the English display label for the category.
func (c Category) Label() string {
	switch c {
	case CategoryTechnical:
		return "technical"
	case CategoryBilling:
		return "billing"
	case CategoryGeneral:
		return "general"
	case CategoryBugReport:
		return "bug report"
	case CategoryFeatureRequest:
		return "feature request"
	}
	return string(c)
}

// ParseCategory maps an English label to the wire value. The wire value
// itself is accepted too.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "technical":
		return CategoryTechnical, true
	case "billing":
		return CategoryBilling, true
	case "general":
		return CategoryGeneral, true
	case "bug_report", "bug-report":
		return CategoryBugReport, true
	case "feature_request", "feature-request":
		return CategoryFeatureRequest, true
	}
	if c := Category(s); c.Valid() {
		return c, true
	}
	return "", false
}

// ParseStatus maps an English label to the wire value. The wire value itself
// is accepted too.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "open":
		return StatusOpen, true
	case "in_progress", "in-progress":
		return StatusInProgress, true
	case "resolved":
		return StatusResolved, true
	case "closed":
		return StatusClosed, true
	}
	if st := Status(s); st.Valid() {
		return st, true
	}
	return "", false
}

// Ticket represents a support ticket as returned by the backend.
type Ticket struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        Status     `json:"status"`
	Priority      Priority   `json:"priority"`
	Category      Category   `json:"category"`
	ReporterEmail string     `json:"reporter_email"`
	ReporterName  string     `json:"reporter_name"`
	AssigneeID    *string    `json:"assignee_id,omitempty"`
	AssigneeName  *string    `json:"assignee_name,omitempty"`
	CommentsCount int        `json:"comments_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
}

// IsClosed reports whether the ticket has reached a terminal status.
func (t *Ticket) IsClosed() bool {
	return t.Status == StatusClosed || t.Status == StatusResolved
}

// IsAssigned reports whether a support agent has taken the ticket.
func (t *Ticket) IsAssigned() bool {
	return t.AssigneeID != nil && *t.AssigneeID != ""
}

// TicketList is the backend's paginated ticket response.
type TicketList struct {
	Tickets    []Ticket `json:"tickets"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

// TicketFilters narrows a ticket list query. Zero-valued fields are omitted
// from the request.
type TicketFilters struct {
	Status        Status
	Priority      Priority
	Category      Category
	AssigneeID    string
	ReporterEmail string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	SearchText    string
}

// Values encodes the filters plus pagination into URL query parameters.
func (f TicketFilters) Values(page, pageSize int) url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Set("priority", string(f.Priority))
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if f.AssigneeID != "" {
		q.Set("assignee_id", f.AssigneeID)
	}
	if f.ReporterEmail != "" {
		q.Set("reporter_email", f.ReporterEmail)
	}
	if f.CreatedFrom != nil {
		q.Set("created_from", f.CreatedFrom.UTC().Format(time.RFC3339))
	}
	if f.CreatedTo != nil {
		q.Set("created_to", f.CreatedTo.UTC().Format(time.RFC3339))
	}
	if f.SearchText != "" {
		q.Set("search_text", f.SearchText)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	return q
}

// IsZero reports whether no filter field is set.
func (f TicketFilters) IsZero() bool {
	return f == TicketFilters{}
}

// SortTicketsForDisplay orders tickets by status rank (open first, closed
// last) without disturbing the server's order within a rank. This is a
// display-only reordering, not a query parameter.
func SortTicketsForDisplay(tickets []Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].Status.Rank() < tickets[j].Status.Rank()
	})
}

// TicketStats summarizes ticket counts as returned by /tickets/stats/summary.
type TicketStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
	ByCategory map[string]int `json:"by_category"`
}
