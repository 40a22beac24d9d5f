package crontab

import (
	"context"
	"fmt"

	"github.com/mileusna/crontab"

	"github.com/B3N14M1N/ChatAI/internal/config"
	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/logger"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/metrics"
	"github.com/B3N14M1N/ChatAI/internal/utils/platformerrors"
)

const DefaultSweepInterval = 5 // in minutes

type Crontab struct {
	ctab  *crontab.Crontab
	cache *chat.ContextCache
}

func NewCrontab(cache *chat.ContextCache) *Crontab {
	return &Crontab{
		ctab:  crontab.New(),
		cache: cache,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	// sweep once on server start
	c.sweepCache()

	sweepInterval := DefaultSweepInterval
	if cfg := config.GetGlobal(); cfg != nil && cfg.CacheSweepIntervalMinutes > 0 {
		sweepInterval = cfg.CacheSweepIntervalMinutes
	}

	cronExpr := fmt.Sprintf("*/%d * * * *", sweepInterval)
	if err := c.ctab.AddJob(cronExpr, c.sweepCache); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add cache sweep job")
	}
	log.Info().Msgf("Context cache sweep scheduled: every %d minute(s)", sweepInterval)

	// Schedule environment reload job
	if err := c.ctab.AddJob("* * * * *", func() {
		// Reload config
		config.Load()
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add env reload job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) sweepCache() {
	purged := c.cache.PurgeExpired()
	remaining := c.cache.Len()
	metrics.RecordCacheSweep(purged, remaining)
	if purged > 0 {
		log := logger.GetLogger()
		log.Info().
			Int("purged", purged).
			Int("remaining", remaining).
			Msg("purged expired conversation contexts")
	}
}
