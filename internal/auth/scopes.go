package auth

// Scopes understood by the dashboard API.
const (
	ScopeDashboardRead  = "dashboard:read"
	ScopeDashboardWrite = "dashboard:write"
	ScopeAssistantChat  = "assistant:chat"
)

// AllScopes lists every scope, used when minting development tokens.
var AllScopes = []string{ScopeDashboardRead, ScopeDashboardWrite, ScopeAssistantChat}
