package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// MatchRate returns a timeseries panel showing match searches per second.
func MatchRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Match Search Rate").
		Description("Match searches per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`exm:match_requests:rate5m`, "searches/s", "A")).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// MatchLatency returns a timeseries panel showing p50 and p95 match search
// durations.
func MatchLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Match Search Latency").
		Description("Match search duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(exm_match_duration_seconds_bucket{job="exchange-engine"}[5m])) by (le))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(exm_match_duration_seconds_bucket{job="exchange-engine"}[5m])) by (le))`,
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

// PoolSizes returns a timeseries panel showing candidate pool sizes by pool.
func PoolSizes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Candidate Pool Sizes").
		Description("Candidates retrieved per search, by pool").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`avg(exm_candidate_pool_size{job="exchange-engine"}) by (pool)`,
			"{{pool}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RetrievalFailures returns a timeseries panel showing candidate retrieval
// failures by pool.
func RetrievalFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Retrieval Failures").
		Description("Candidate retrieval failures per second, by pool").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(exm_retrieval_failures_total{job="exchange-engine"}[5m])) by (pool)`,
			"{{pool}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ScoreDistribution returns a bar gauge panel showing the distribution of
// computed match scores across histogram buckets.
func ScoreDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Score Distribution").
		Description("Distribution of match scores (0-100)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			`sum(increase(exm_match_score_distribution_bucket{job="exchange-engine"}[1h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}
