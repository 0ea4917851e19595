package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOverviewFiltersProjectsCaseInsensitively(t *testing.T) {
	catalog := NewCatalog()

	all := catalog.Overview(Layout{ProjectView: ViewGrid})
	require.Len(t, all.Projects, 2)
	require.Len(t, all.Metrics, 4)

	filtered := catalog.Overview(Layout{ProjectView: ViewList, SearchQuery: "  MOBILE "})
	require.Len(t, filtered.Projects, 1)
	require.Equal(t, "Mobile App Development", filtered.Projects[0].Name)
	require.Equal(t, ViewList, filtered.View)

	none := catalog.Overview(Layout{SearchQuery: "payroll"})
	require.Empty(t, none.Projects)
}

func TestMetricChangeLabels(t *testing.T) {
	require.Equal(t, "+2 from last week", Metric{Change: 2}.ChangeLabel())
	require.Equal(t, "-3 from last week", Metric{Change: -3}.ChangeLabel())
	require.Equal(t, "0 from last week", Metric{Change: 0}.ChangeLabel())
	require.True(t, Metric{Change: 0}.TrendingUp())
	require.False(t, Metric{Change: -1}.TrendingUp())
}

func TestStatusLabels(t *testing.T) {
	require.Equal(t, "On Track", StatusOnTrack.Label())
	require.Equal(t, "At Risk", StatusAtRisk.Label())
	require.Equal(t, "Behind", StatusBehind.Label())
}
