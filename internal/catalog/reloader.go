package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Reloader periodically re-reads the catalog snapshot so taxonomy edits
// published by the config service reach the engine without a restart.
type Reloader struct {
	cron     *cron.Cron
	provider *FileProvider
	log      *slog.Logger
}

// NewReloader schedules a reload of p every interval.
func NewReloader(p *FileProvider, interval time.Duration, log *slog.Logger) (*Reloader, error) {
	c := cron.New()

	r := &Reloader{
		cron:     c,
		provider: p,
		log:      log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), r.reload); err != nil {
		return nil, err
	}

	return r, nil
}

// Start begins running scheduled reloads.
func (r *Reloader) Start() {
	r.log.Info("catalog reloader started")
	r.cron.Start()
}

// Stop gracefully stops the reloader, waiting for a running reload to finish.
func (r *Reloader) Stop() context.Context {
	r.log.Info("catalog reloader stopping")
	return r.cron.Stop()
}

func (r *Reloader) reload() {
	if err := r.provider.Reload(); err != nil {
		// Keep serving the previous snapshot on a bad reload.
		r.log.Error("catalog reload failed", "error", err)
		return
	}
	r.log.Debug("catalog reloaded", "categories", len(r.provider.Categories()))
}
