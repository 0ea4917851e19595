// Package dashboard owns the per-user layout state, the project overview and the quick actions.
package dashboard

import (
	"errors"
	"sync"
)

var (
	// ErrUnknownSection is returned when selecting a sidebar entry that does not exist.
	ErrUnknownSection = errors.New("unknown navigation section")
	// ErrInvalidView is returned for project views other than grid or list.
	ErrInvalidView = errors.New("invalid project view")
)

// NavItem is one sidebar entry.
type NavItem struct {
	Key   string
	Label string
	Icon  string
}

// Navigation lists the sidebar entries in display order.
var Navigation = []NavItem{
	{Key: "dashboard", Label: "Dashboard", Icon: "/icons/dashboard.svg"},
	{Key: "projects", Label: "Projects", Icon: "/icons/project.svg"},
	{Key: "crm", Label: "CRM", Icon: "/icons/crm.svg"},
	{Key: "marketing", Label: "Marketing", Icon: "/icons/marketing.svg"},
	{Key: "analytics", Label: "Analytics", Icon: "/icons/analytics.svg"},
	{Key: "settings", Label: "Settings", Icon: "/icons/settings.svg"},
}

// ProjectView selects how projects are laid out.
type ProjectView string

const (
	ViewGrid ProjectView = "grid"
	ViewList ProjectView = "list"
)

// ParseProjectView validates raw.
func ParseProjectView(raw string) (ProjectView, error) {
	switch v := ProjectView(raw); v {
	case ViewGrid, ViewList:
		return v, nil
	}
	return "", ErrInvalidView
}

// Layout is a point-in-time copy of a user's layout state.
type Layout struct {
	ActiveSection    string
	SidebarCollapsed bool
	AssistantOpen    bool
	ProjectView      ProjectView
	SearchQuery      string
}

func defaultLayout() Layout {
	return Layout{ActiveSection: "dashboard", ProjectView: ViewGrid}
}

// Session holds one user's layout state for the lifetime of the process.
type Session struct {
	mu     sync.Mutex
	layout Layout
}

// Layout returns a copy of the current state.
func (s *Session) Layout() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// Select makes key the active sidebar entry.
func (s *Session) Select(key string) (Layout, error) {
	if !knownSection(key) {
		return s.Layout(), ErrUnknownSection
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.ActiveSection = key
	return s.layout, nil
}

// ToggleSidebar flips the collapsed flag.
func (s *Session) ToggleSidebar() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.SidebarCollapsed = !s.layout.SidebarCollapsed
	return s.layout
}

// ToggleAssistant flips the assistant panel flag.
func (s *Session) ToggleAssistant() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.AssistantOpen = !s.layout.AssistantOpen
	return s.layout
}

// SetAssistantOpen sets the assistant panel flag explicitly.
func (s *Session) SetAssistantOpen(open bool) Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.AssistantOpen = open
	return s.layout
}

// SetProjectView switches between grid and list.
func (s *Session) SetProjectView(view ProjectView) (Layout, error) {
	if _, err := ParseProjectView(string(view)); err != nil {
		return s.Layout(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.ProjectView = view
	return s.layout, nil
}

// SetSearchQuery stores the project search buffer.
func (s *Session) SetSearchQuery(q string) Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.SearchQuery = q
	return s.layout
}

func knownSection(key string) bool {
	for _, item := range Navigation {
		if item.Key == key {
			return true
		}
	}
	return false
}

// Sessions indexes layout state by user subject. Nothing survives a restart.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessions constructs an empty registry.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// For returns the session for subject, creating it with default state on first use.
func (r *Sessions) For(subject string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[subject]
	if !ok {
		s = &Session{layout: defaultLayout()}
		r.sessions[subject] = s
	}
	return s
}
