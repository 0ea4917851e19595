package api

import (
	"time"

	"example.com/dashboard/internal/assistant"
	"example.com/dashboard/internal/dashboard"
	"example.com/dashboard/internal/domain"
	"example.com/dashboard/internal/feed"
)

// UserView is the authenticated identity shown in the header.
type UserView struct {
	Subject  string `json:"subject"`
	TenantID string `json:"tenant_id,omitempty"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
}

// LayoutView mirrors dashboard.Layout.
type LayoutView struct {
	ActiveSection    string `json:"active_section"`
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
	AssistantOpen    bool   `json:"assistant_open"`
	ProjectView      string `json:"project_view"`
	SearchQuery      string `json:"search_query"`
}

// SessionResponse is returned by GET /v1/session.
type SessionResponse struct {
	User   UserView   `json:"user"`
	Layout LayoutView `json:"layout"`
}

// NavItemView is one sidebar entry.
type NavItemView struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// NavigationResponse lists sidebar entries with the current layout.
type NavigationResponse struct {
	Items  []NavItemView `json:"items"`
	Layout LayoutView    `json:"layout"`
}

// SelectSectionRequest is the body of POST /v1/navigation/select.
type SelectSectionRequest struct {
	Key string `json:"key"`
}

// MetricView is one headline number.
type MetricView struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Change      int    `json:"change"`
	ChangeLabel string `json:"change_label"`
	TrendingUp  bool   `json:"trending_up"`
	Icon        string `json:"icon"`
}

// ProjectView is a project card.
type ProjectView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Progress    int         `json:"progress"`
	Status      string      `json:"status"`
	StatusLabel string      `json:"status_label"`
	DueDate     string      `json:"due_date"`
	Team        []ActorView `json:"team"`
}

// OverviewResponse is returned by GET /v1/overview.
type OverviewResponse struct {
	Metrics  []MetricView  `json:"metrics"`
	Projects []ProjectView `json:"projects"`
	View     string        `json:"view"`
	Query    string        `json:"query"`
}

// QuickActionView is one quick action button.
type QuickActionView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// QuickActionsResponse lists quick action buttons.
type QuickActionsResponse struct {
	Items []QuickActionView `json:"items"`
}

// QuickActionRequest carries optional form fields for a quick action.
type QuickActionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QuickActionResponse reports what the action produced.
type QuickActionResponse struct {
	Activity ActivityView `json:"activity"`
	Task     *TaskView    `json:"task,omitempty"`
}

// ActorView is a person with an avatar.
type ActorView struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// ActivityView is a feed row ready for rendering.
type ActivityView struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Actor      ActorView `json:"actor"`
	Action     string    `json:"action"`
	Target     string    `json:"target"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	TimeAgo    string    `json:"time_ago"`
	Icon       string    `json:"icon"`
	Highlight  bool      `json:"highlight"`
}

// FeedResponse is returned by GET /v1/feed, newest first.
type FeedResponse struct {
	Items       []ActivityView `json:"items"`
	Bound       int            `json:"bound"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// TaskView is a persisted task.
type TaskView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TasksResponse lists tasks newest first.
type TasksResponse struct {
	Items []TaskView `json:"items"`
}

// SendMessageRequest is the body of POST /v1/assistant/messages.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// MessageView is one chat bubble.
type MessageView struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationResponse is the current transcript.
type ConversationResponse struct {
	Messages []MessageView `json:"messages"`
	Typing   bool          `json:"typing"`
}

func toLayoutView(l dashboard.Layout) LayoutView {
	return LayoutView{
		ActiveSection:    l.ActiveSection,
		SidebarCollapsed: l.SidebarCollapsed,
		AssistantOpen:    l.AssistantOpen,
		ProjectView:      string(l.ProjectView),
		SearchQuery:      l.SearchQuery,
	}
}

func toActorView(a domain.Actor) ActorView {
	return ActorView{Name: a.Name, Avatar: a.Avatar}
}

func toActivityView(rec domain.ActivityRecord, now time.Time) ActivityView {
	return ActivityView{
		ID:         rec.ID,
		Kind:       string(rec.Kind),
		Actor:      toActorView(rec.Actor),
		Action:     rec.Action,
		Target:     rec.Target,
		Note:       rec.Note,
		OccurredAt: rec.OccurredAt,
		TimeAgo:    feed.TimeAgo(rec.OccurredAt, now),
		Icon:       rec.Kind.Icon(),
		Highlight:  rec.Kind.Highlighted(),
	}
}

func toTaskView(t domain.Task) TaskView {
	return TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}

func toOverviewResponse(o dashboard.Overview) OverviewResponse {
	metrics := make([]MetricView, 0, len(o.Metrics))
	for _, m := range o.Metrics {
		metrics = append(metrics, MetricView{
			Label:       m.Label,
			Value:       m.Value,
			Change:      m.Change,
			ChangeLabel: m.ChangeLabel(),
			TrendingUp:  m.TrendingUp(),
			Icon:        m.Icon,
		})
	}
	projects := make([]ProjectView, 0, len(o.Projects))
	for _, p := range o.Projects {
		team := make([]ActorView, 0, len(p.Team))
		for _, member := range p.Team {
			team = append(team, toActorView(member))
		}
		projects = append(projects, ProjectView{
			ID:          p.ID,
			Name:        p.Name,
			Progress:    p.Progress,
			Status:      string(p.Status),
			StatusLabel: p.Status.Label(),
			DueDate:     p.DueDate.Format("2006-01-02"),
			Team:        team,
		})
	}
	return OverviewResponse{Metrics: metrics, Projects: projects, View: string(o.View), Query: o.Query}
}

func toConversationResponse(conv *assistant.Conversation) ConversationResponse {
	msgs := conv.Messages()
	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, MessageView{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return ConversationResponse{Messages: views, Typing: conv.Typing()}
}
