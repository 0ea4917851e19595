package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKindAcceptsClosedSet(t *testing.T) {
	for _, raw := range []string{"task", "comment", "project", "meeting", "ai_insight"} {
		k, err := ParseKind(raw)
		require.NoError(t, err)
		require.Equal(t, Kind(raw), k)
		require.NotEmpty(t, k.Icon())
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	_, err := ParseKind("standup")
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestOnlyInsightsAreHighlighted(t *testing.T) {
	require.True(t, KindAIInsight.Highlighted())
	require.False(t, KindComment.Highlighted())
	require.Equal(t, "/icons/ai-insight.svg", KindAIInsight.Icon())
}
