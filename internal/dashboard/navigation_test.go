package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionDefaults(t *testing.T) {
	layout := NewSessions().For("user-1").Layout()
	require.Equal(t, "dashboard", layout.ActiveSection)
	require.False(t, layout.SidebarCollapsed)
	require.False(t, layout.AssistantOpen)
	require.Equal(t, ViewGrid, layout.ProjectView)
}

func TestSelectUnknownSectionLeavesStateUnchanged(t *testing.T) {
	s := NewSessions().For("user-1")
	_, err := s.Select("crm")
	require.NoError(t, err)

	layout, err := s.Select("billing")
	require.ErrorIs(t, err, ErrUnknownSection)
	require.Equal(t, "crm", layout.ActiveSection)
}

func TestTogglesFlip(t *testing.T) {
	s := NewSessions().For("user-1")
	require.True(t, s.ToggleSidebar().SidebarCollapsed)
	require.False(t, s.ToggleSidebar().SidebarCollapsed)
	require.True(t, s.ToggleAssistant().AssistantOpen)
	require.False(t, s.SetAssistantOpen(false).AssistantOpen)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	sessions := NewSessions()
	sessions.For("a").ToggleSidebar()

	require.True(t, sessions.For("a").Layout().SidebarCollapsed)
	require.False(t, sessions.For("b").Layout().SidebarCollapsed)
}

func TestSetProjectViewValidates(t *testing.T) {
	s := NewSessions().For("user-1")
	layout, err := s.SetProjectView(ViewList)
	require.NoError(t, err)
	require.Equal(t, ViewList, layout.ProjectView)

	_, err = s.SetProjectView("kanban")
	require.ErrorIs(t, err, ErrInvalidView)
	require.Equal(t, ViewList, s.Layout().ProjectView)
}

func TestNavigationOrder(t *testing.T) {
	keys := make([]string, 0, len(Navigation))
	for _, item := range Navigation {
		keys = append(keys, item.Key)
	}
	require.Equal(t, []string{"dashboard", "projects", "crm", "marketing", "analytics", "settings"}, keys)
}
