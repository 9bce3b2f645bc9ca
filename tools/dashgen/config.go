package main

import "errors"

// KnownMetrics is the set of metric names exported by the exchange engine
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"exm_http_request_duration_seconds": true,
	"exm_http_requests_total":           true,

	// Health metrics.
	"exm_healthz_up": true,
	"exm_readyz_up":  true,

	// Matching metrics.
	"exm_match_requests_total":     true,
	"exm_match_duration_seconds":   true,
	"exm_match_score_distribution": true,
	"exm_candidate_pool_size":      true,
	"exm_retrieval_failures_total": true,

	// Chain metrics.
	"exm_chain_requests_total":   true,
	"exm_chains_found_total":     true,
	"exm_chain_duration_seconds": true,

	// Cache metrics.
	"exm_cache_hits_total":   true,
	"exm_cache_misses_total": true,

	// Recording rules.
	"exm:http_requests:rate5m":      true,
	"exm:http_errors:rate5m":        true,
	"exm:match_requests:rate5m":     true,
	"exm:chain_requests:rate5m":     true,
	"exm:retrieval_failures:rate5m": true,
	"exm:cache_hits:rate5m":         true,
	"exm:cache_misses:rate5m":       true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
