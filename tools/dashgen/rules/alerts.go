package rules

// AlertRules returns the PrometheusRule CR containing the alerting
// rules for the exchange engine deployment.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "exm-alerts",
			Labels: map[string]string{
				"app":     "exchange-engine",
				"release": "prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "exm-alerts",
					Rules: []Rule{
						{
							Alert: "EngineDown",
							Expr:  `absent(up{job="exchange-engine"} == 1)`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Exchange engine target is down",
								"description": "Prometheus has not scraped a healthy exchange-engine target for 2 minutes.",
							},
						},
						{
							Alert: "EngineReadinessFailing",
							Expr:  `exm_readyz_up{job="exchange-engine"} == 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Exchange engine readiness probe failing",
								"description": "The /readyz endpoint has reported unavailable for 5 minutes, usually a lost database connection.",
							},
						},
						{
							Alert: "EngineHighErrorRate",
							Expr:  `exm:http_errors:rate5m / exm:http_requests:rate5m > 0.05`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Exchange engine HTTP 5xx rate above 5%",
								"description": "More than 5% of API requests returned 5xx over the last 10 minutes.",
							},
						},
						{
							Alert: "EngineHighMatchLatency",
							Expr:  `histogram_quantile(0.95, sum by (le) (rate(exm_match_duration_seconds_bucket{job="exchange-engine"}[5m]))) > 1`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Match search p95 latency above 1s",
								"description": "The 95th percentile match search duration has exceeded 1 second for 10 minutes.",
							},
						},
						{
							Alert: "EngineRetrievalFailures",
							Expr:  `sum(exm:retrieval_failures:rate5m) > 0`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Candidate retrieval queries failing",
								"description": "At least one candidate pool query has been failing for 15 minutes. Matches are being served from partial pools.",
							},
						},
						{
							Alert: "EngineLowCacheHitRate",
							Expr:  `exm:cache_hits:rate5m / (exm:cache_hits:rate5m + exm:cache_misses:rate5m) < 0.2`,
							For:   "30m",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "Match cache hit rate below 20%",
								"description": "The Redis match cache is serving fewer than 20% of lookups. Check the cache TTL and eviction policy.",
							},
						},
					},
				},
			},
		},
	}
}
