// Package api exposes HTTP handlers for the dashboard service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"example.com/dashboard/internal/assistant"
	"example.com/dashboard/internal/auth"
	"example.com/dashboard/internal/dashboard"
	"example.com/dashboard/internal/domain"
	"example.com/dashboard/internal/feed"
)

// Deps groups the collaborators the handlers read from and write to.
type Deps struct {
	Feed          *feed.Store
	Sessions      *dashboard.Sessions
	Catalog       *dashboard.Catalog
	Actions       *dashboard.Service
	Conversations *assistant.Conversations
	Logger        *zap.Logger
	Now           func() time.Time
}

// Handler coordinates HTTP requests with the dashboard components.
type Handler struct {
	deps Deps
}

// NewHandler builds a Handler, filling optional dependencies.
func NewHandler(deps Deps) *Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Handler{deps: deps}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", healthz)
	mux.HandleFunc("/v1/session", h.session)
	mux.HandleFunc("/v1/navigation", h.navigation)
	mux.HandleFunc("/v1/navigation/select", h.selectSection)
	mux.HandleFunc("/v1/navigation/sidebar", h.toggleSidebar)
	mux.HandleFunc("/v1/navigation/assistant", h.toggleAssistant)
	mux.HandleFunc("/v1/overview", h.overview)
	mux.HandleFunc("/v1/quick-actions", h.quickActions)
	mux.HandleFunc("/v1/quick-actions/", h.executeQuickAction)
	mux.HandleFunc("/v1/feed", h.feed)
	mux.HandleFunc("/v1/tasks", h.tasks)
	mux.HandleFunc("/v1/assistant/messages", h.assistantMessages)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requireScope resolves the caller's claims and checks scope, writing the error response
// when either is missing.
func requireScope(w http.ResponseWriter, r *http.Request, scope string) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}
	if !claims.HasScope(scope) {
		writeError(w, http.StatusForbidden, "forbidden", "scope "+scope+" required")
		return nil, false
	}
	return claims, true
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return false
	}
	return true
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	claims, ok := requireScope(w, r, auth.ScopeDashboardRead)
	if !ok {
		return
	}
	layout := h.deps.Sessions.For(claims.Subject).Layout()
	writeJSON(w, http.StatusOK, SessionResponse{
		User: UserView{
			Subject:  claims.Subject,
			TenantID: claims.TenantID,
			Name:     claims.DisplayName(),
			Avatar:   claims.Avatar,
		},
		Layout: toLayoutView(layout),
	})
}

func (h *Handler) navigation(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	claims, ok := requireScope(w, r, auth.ScopeDashboardRead)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.navigationResponse(h.deps.Sessions.For(claims.Subject).Layout()))
}

func (h *Handler) selectSection(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	claims, ok := requireScope(w, r, auth.ScopeDashboardRead)
	if !ok {
		return
	}

	var req SelectSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	layout, err := h.deps.Sessions.For(claims.Subject).Select(req.Key)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.navigationResponse(layout))
}

func (h *Handler) toggleSidebar(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	claims, ok := requireScope(w, r, auth.ScopeDashboardRead)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.navigationResponse(h.deps.Sessions.For(claims.Subject).ToggleSidebar()))
}

func (h *Handler) toggleAssistant(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	claims, ok := requireScope(w, r, auth.ScopeDashboardRead)
	if !ok {
		return
	}
	layout := h.deps.Sessions.For(claims.Subject).ToggleAssistant()
	if !layout.AssistantOpen {
		h.deps.Conversations.For(claims.Subject).Close()
	}
	writeJSON(w, http.StatusOK, h.navigationResponse(layout))
}

func (h *Handler) navigationResponse(layout dashboard.Layout) NavigationResponse {
	items := make([]NavItemView, 0, len(dashboard.Navigation))
	for _, item := range dashboard.Navigation {
		items = append(items, NavItemView{
			Key:    item.Key,
			Label:  item.Label,
			Icon:   item.Icon,
			Active: item.Key == layout.ActiveSection,
		})
	}
	return NavigationResponse{Items: items, Layout: toLayoutView(layout)}
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	claims, ok := requireScope(w, r, auth.ScopeDashboardRead)
	if !ok {
		return
	}

	sess := h.deps.Sessions.For(claims.Subject)
	query := r.URL.Query()
	if query.Has("view") {
		if _, err := sess.SetProjectView(dashboard.ProjectView(query.Get("view"))); err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
	}
	if query.Has("q") {
		sess.SetSearchQuery(query.Get("q"))
	}

	writeJSON(w, http.StatusOK, toOverviewResponse(h.deps.Catalog.Overview(sess.Layout())))
}

func (h *Handler) quickActions(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := requireScope(w, r, auth.ScopeDashboardRead); !ok {
		return
	}
	items := make([]QuickActionView, 0, len(dashboard.QuickActions))
	for _, action := range dashboard.QuickActions {
		items = append(items, QuickActionView{ID: action.ID, Title: action.Title, Icon: action.Icon, Color: action.Color})
	}
	writeJSON(w, http.StatusOK, QuickActionsResponse{Items: items})
}

func (h *Handler) executeQuickAction(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/quick-actions/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing quick action id")
		return
	}
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	claims, ok := requireScope(w, r, auth.ScopeDashboardWrite)
	if !ok {
		return
	}

	var req QuickActionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
	}

	actor := domain.Actor{Name: claims.DisplayName(), Avatar: claims.Avatar}
	result, err := h.deps.Actions.Execute(r.Context(), actor, id, dashboard.ActionInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, dashboard.ErrUnknownAction):
			writeError(w, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, dashboard.ErrTitleRequired):
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		default:
			h.deps.Logger.Error("quick action failed", zap.String("action", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		}
		return
	}

	resp := QuickActionResponse{Activity: toActivityView(result.Activity, h.deps.Now())}
	if result.Task != nil {
		view := toTaskView(*result.Task)
		resp.Task = &view
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := requireScope(w, r, auth.ScopeDashboardRead); !ok {
		return
	}

	now := h.deps.Now()
	records := h.deps.Feed.Snapshot()
	items := make([]ActivityView, 0, len(records))
	for _, rec := range records {
		items = append(items, toActivityView(rec, now))
	}
	writeJSON(w, http.StatusOK, FeedResponse{Items: items, Bound: h.deps.Feed.Bound(), GeneratedAt: now})
}

func (h *Handler) tasks(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := requireScope(w, r, auth.ScopeDashboardRead); !ok {
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			if parsed > 100 {
				parsed = 100
			}
			limit = parsed
		}
	}

	tasks, err := h.deps.Actions.Tasks(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	items := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, toTaskView(task))
	}
	writeJSON(w, http.StatusOK, TasksResponse{Items: items})
}

func (h *Handler) assistantMessages(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireScope(w, r, auth.ScopeAssistantChat)
	if !ok {
		return
	}
	conv := h.deps.Conversations.For(claims.Subject)

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, toConversationResponse(conv))
	case http.MethodPost:
		var req SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
		if _, err := conv.Send(r.Context(), req.Content); err != nil {
			if errors.Is(err, assistant.ErrEmptyMessage) {
				writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
				return
			}
			writeError(w, http.StatusBadGateway, "assistant_unavailable", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toConversationResponse(conv))
	case http.MethodDelete:
		conv.Close()
		h.deps.Sessions.For(claims.Subject).SetAssistantOpen(false)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
