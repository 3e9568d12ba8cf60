package health

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/url-shortener/domain"
	loggerKit "github.com/superj80820/url-shortener/kit/logger"
	"golang.org/x/sync/errgroup"
)

type healthUseCase struct {
	linkRepo      domain.LinkRepo
	linkCacheRepo domain.LinkCacheRepo
	timeout       time.Duration
	logger        *loggerKit.Logger
}

func CreateHealthUseCase(linkRepo domain.LinkRepo, linkCacheRepo domain.LinkCacheRepo, timeout time.Duration, logger *loggerKit.Logger) (domain.HealthUseCase, error) {
	if linkRepo == nil || linkCacheRepo == nil || logger == nil {
		return nil, errors.New("create health use case failed")
	}
	if timeout <= 0 {
		return nil, errors.New("health timeout must be positive")
	}
	return &healthUseCase{
		linkRepo:      linkRepo,
		linkCacheRepo: linkCacheRepo,
		timeout:       timeout,
		logger:        logger,
	}, nil
}

// Check probes the store and the cache concurrently. Probe failures are
// reported as unhealthy, never returned.
func (h *healthUseCase) Check(ctx context.Context) *domain.Health {
	var (
		health domain.Health
		g      errgroup.Group
	)
	g.Go(func() error {
		health.Database = h.probe(ctx, "database", h.linkRepo.Ping)
		return nil
	})
	g.Go(func() error {
		health.Cache = h.probe(ctx, "redis", h.linkCacheRepo.Ping)
		return nil
	})
	g.Wait()
	return &health
}

func (h *healthUseCase) probe(ctx context.Context, name string, ping func(ctx context.Context) error) (healthy bool) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("health probe panic", loggerKit.String("dependency", name), loggerKit.String("panic", fmt.Sprint(r)))
			healthy = false
		}
	}()

	if err := ping(ctx); err != nil {
		h.logger.Warn("health probe failed", loggerKit.String("dependency", name), loggerKit.Error(err))
		return false
	}
	return true
}
