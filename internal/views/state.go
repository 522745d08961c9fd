// Package views renders the customer-facing pages: the ticket list, the
// ticket detail, and the creation flow. All mutable page state lives in an
// explicit State object so that concurrent sessions never share anything.
package views

import (
	"sync"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

// Tab identifies the active page, mirroring the tab bar of the original UI.
type Tab string

const (
	TabList    Tab = "list"
	TabCreate  Tab = "create"
	TabSupport Tab = "support"
)

// State is the per-session client state: who is logged in, which tab is
// active, and the current list query. It replaces what the original kept in
// page-level globals.
type State struct {
	mu        sync.RWMutex
	user      models.UserProfile
	filters   models.TicketFilters
	page      int
	activeTab Tab
}

// NewState creates page state for the given user, starting on the list tab
// at page 1.
func NewState(user models.UserProfile) *State {
	return &State{
		user:      user,
		page:      1,
		activeTab: TabList,
	}
}

// User returns the authenticated user's profile.
func (s *State) User() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser replaces the stored profile (after a profile update).
func (s *State) SetUser(user models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Filters returns the current filter set.
func (s *State) Filters() models.TicketFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters replaces the filter set. Any filter change resets the list to
// page 1.
func (s *State) SetFilters(f models.TicketFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.page = 1
}

// Page returns the current list page (1-based).
func (s *State) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// SetPage moves to the given page; values below 1 clamp to 1.
func (s *State) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.page = page
}

// ActiveTab returns the active tab.
func (s *State) ActiveTab() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeTab
}

// SetActiveTab switches tabs.
func (s *State) SetActiveTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
}
