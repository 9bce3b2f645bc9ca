package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ChainRate returns a timeseries panel showing chain searches per second
// alongside chains actually found.
func ChainRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Chain Search Rate").
		Description("Chain searches and chains found per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`exm:chain_requests:rate5m`, "searches/s", "A")).
		WithTarget(PromQuery(
			`sum(rate(exm_chains_found_total{job="exchange-engine"}[5m]))`,
			"chains found/s", "B",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ChainLatency returns a timeseries panel showing p50 and p95 chain search
// durations.
func ChainLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Chain Search Latency").
		Description("Chain search duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(exm_chain_duration_seconds_bucket{job="exchange-engine"}[5m])) by (le))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(exm_chain_duration_seconds_bucket{job="exchange-engine"}[5m])) by (le))`,
			"p95",
			"B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
