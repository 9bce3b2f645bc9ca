package rules

// RecordingRules returns the PrometheusRule CR containing the recording
// rules referenced by the Grafana dashboard panels. Every record name
// here must also appear in the dashgen KnownMetrics list.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "exm-recording-rules",
			Labels: map[string]string{
				"app":     "exchange-engine",
				"release": "prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name:     "exm-recording",
					Interval: "30s",
					Rules: []Rule{
						{
							Record: "exm:http_requests:rate5m",
							Expr:   `sum(rate(exm_http_requests_total{job="exchange-engine"}[5m]))`,
						},
						{
							Record: "exm:http_errors:rate5m",
							Expr:   `sum(rate(exm_http_requests_total{job="exchange-engine",status=~"5.."}[5m]))`,
						},
						{
							Record: "exm:match_requests:rate5m",
							Expr:   `sum(rate(exm_match_requests_total{job="exchange-engine"}[5m]))`,
						},
						{
							Record: "exm:chain_requests:rate5m",
							Expr:   `sum(rate(exm_chain_requests_total{job="exchange-engine"}[5m]))`,
						},
						{
							Record: "exm:retrieval_failures:rate5m",
							Expr:   `sum by (pool) (rate(exm_retrieval_failures_total{job="exchange-engine"}[5m]))`,
						},
						{
							Record: "exm:cache_hits:rate5m",
							Expr:   `sum(rate(exm_cache_hits_total{job="exchange-engine"}[5m]))`,
						},
						{
							Record: "exm:cache_misses:rate5m",
							Expr:   `sum(rate(exm_cache_misses_total{job="exchange-engine"}[5m]))`,
						},
					},
				},
			},
		},
	}
}
