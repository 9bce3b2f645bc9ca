// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/tabadul/exchange-engine/tools/dashgen/panels"
)

// BuildOverview constructs the Exchange Engine Overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Exchange Engine Overview").
		Uid("exm-overview").
		Tags([]string{"exm", "exchange-engine"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.CacheHitGauge()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Matching.
	b.WithRow(dashboard.NewRowBuilder("Matching").
		WithPanel(panels.MatchRate()).
		WithPanel(panels.MatchLatency()).
		WithPanel(panels.PoolSizes()).
		WithPanel(panels.RetrievalFailures()))

	// Row 4: Scoring.
	b.WithRow(dashboard.NewRowBuilder("Scoring").
		WithPanel(panels.ScoreDistribution()))

	// Row 5: Chains.
	b.WithRow(dashboard.NewRowBuilder("Chains").
		WithPanel(panels.ChainRate()).
		WithPanel(panels.ChainLatency()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
