package pricing

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rds-cost/core/factstore"
	"rds-cost/core/types"
	"rds-cost/internal/logging"
)

// DefaultConcurrency bounds parallel price list calls when the config does
// not say otherwise. The price list API throttles aggressively.
const DefaultConcurrency = 8

// Collector fans pricing lookups out over a source and lands the facts in
// the store. A combination that cannot be priced becomes an unavailable
// fact; only context cancellation aborts a run.
type Collector struct {
	source      Source
	store       *factstore.Store
	logger      *zap.Logger
	concurrency int
}

// NewCollector builds a collector writing into store.
func NewCollector(source Source, store *factstore.Store, concurrency int) *Collector {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Collector{
		source:      source,
		store:       store,
		logger:      logging.Named("collector"),
		concurrency: concurrency,
	}
}

// Collect prices every spec under every purchase option.
func (c *Collector) Collect(ctx context.Context, specs []types.InstanceSpec) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, spec := range specs {
		for _, opt := range types.PricingOptions() {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				fact, err := c.source.Fetch(ctx, spec, opt)
				if err != nil {
					c.logger.Warn("pricing lookup failed",
						zap.String("instance", spec.InstanceType),
						zap.String("engine", spec.Engine),
						zap.String("option", string(opt)),
						zap.Error(err))
				}
				if fact == nil {
					fact = types.Unavailable(spec, opt)
				}
				c.store.Put(fact)
				return nil
			})
		}
	}

	return g.Wait()
}

// ApplyReservedFallback retries every unavailable reserved fact through the
// offerings API and replaces the ones it manages to price.
func (c *Collector) ApplyReservedFallback(ctx context.Context, fallback FallbackSource) error {
	missing := c.store.UnavailableReserved()
	if len(missing) == 0 {
		return nil
	}
	c.logger.Info("retrying reserved terms through the offerings API",
		zap.Int("count", len(missing)))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, unpriced := range missing {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fact, err := fallback.FetchReservedOffering(ctx, unpriced.Spec, unpriced.Option)
			if err != nil {
				c.logger.Debug("reserved offering lookup failed",
					zap.String("instance", unpriced.Spec.InstanceType),
					zap.String("option", string(unpriced.Option)),
					zap.Error(err))
				return nil
			}
			if fact != nil && fact.Available {
				c.store.Put(fact)
			}
			return nil
		})
	}

	return g.Wait()
}
