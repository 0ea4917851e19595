package dashboard

import (
	"fmt"
	"strings"
	"time"

	"example.com/dashboard/internal/domain"
)

// Metric is one headline number on the overview.
type Metric struct {
	Label  string
	Value  string
	Change int
	Icon   string
}

// ChangeLabel renders the week-over-week delta, e.g. "+2 from last week".
func (m Metric) ChangeLabel() string {
	sign := ""
	if m.Change > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%d from last week", sign, m.Change)
}

// TrendingUp reports whether the delta is rendered as positive.
func (m Metric) TrendingUp() bool {
	return m.Change >= 0
}

// ProjectStatus tracks schedule health.
type ProjectStatus string

const (
	StatusOnTrack ProjectStatus = "on_track"
	StatusAtRisk  ProjectStatus = "at_risk"
	StatusBehind  ProjectStatus = "behind"
)

var statusLabels = map[ProjectStatus]string{
	StatusOnTrack: "On Track",
	StatusAtRisk:  "At Risk",
	StatusBehind:  "Behind",
}

// Label returns the human readable status.
func (s ProjectStatus) Label() string {
	return statusLabels[s]
}

// Project is a card on the overview.
type Project struct {
	ID       string
	Name     string
	Progress int
	Status   ProjectStatus
	DueDate  time.Time
	Team     []domain.Actor
}

// Overview is what the main panel renders.
type Overview struct {
	Metrics  []Metric
	Projects []Project
	View     ProjectView
	Query    string
}

// Catalog supplies the overview content.
type Catalog struct {
	metrics  []Metric
	projects []Project
}

// NewCatalog returns the built-in metrics and projects.
func NewCatalog() *Catalog {
	return &Catalog{
		metrics: []Metric{
			{Label: "Active Projects", Value: "12", Change: 2, Icon: "/icons/project-active.svg"},
			{Label: "Tasks Due Today", Value: "8", Change: -3, Icon: "/icons/task-due.svg"},
			{Label: "Team Productivity", Value: "87%", Change: 5, Icon: "/icons/productivity.svg"},
			{Label: "AI Insights", Value: "3", Change: 1, Icon: "/icons/ai-insight.svg"},
		},
		projects: []Project{
			{
				ID:       "1",
				Name:     "Website Redesign",
				Progress: 75,
				Status:   StatusOnTrack,
				DueDate:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
				Team: []domain.Actor{
					{Name: "Sarah Chen", Avatar: "/avatars/sarah.jpg"},
					{Name: "Alex Kim", Avatar: "/avatars/alex.jpg"},
				},
			},
			{
				ID:       "2",
				Name:     "Mobile App Development",
				Progress: 45,
				Status:   StatusAtRisk,
				DueDate:  time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
				Team: []domain.Actor{
					{Name: "Jamie Wilson", Avatar: "/avatars/jamie.jpg"},
					{Name: "Mike Johnson", Avatar: "/avatars/mike.jpg"},
				},
			},
		},
	}
}

// Overview renders the panel for the given layout. Projects are filtered by a
// case-insensitive substring match of the search query against the name.
func (c *Catalog) Overview(layout Layout) Overview {
	query := strings.ToLower(strings.TrimSpace(layout.SearchQuery))
	projects := make([]Project, 0, len(c.projects))
	for _, p := range c.projects {
		if query == "" || strings.Contains(strings.ToLower(p.Name), query) {
			projects = append(projects, p)
		}
	}

	metrics := make([]Metric, len(c.metrics))
	copy(metrics, c.metrics)

	return Overview{
		Metrics:  metrics,
		Projects: projects,
		View:     layout.ProjectView,
		Query:    layout.SearchQuery,
	}
}
