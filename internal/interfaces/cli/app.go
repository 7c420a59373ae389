package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lexintel/caselaw-intelligence/internal/application/parse"
	"github.com/lexintel/caselaw-intelligence/internal/config"
	"github.com/lexintel/caselaw-intelligence/internal/domain/patent"
	"github.com/lexintel/caselaw-intelligence/internal/extraction/parser"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/database/postgres"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/database/redis"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/fetch"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/patents/googlepatents"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/patents/uspto"
	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/storage/jsonstore"
)

// runLockTTL bounds how long a crashed batch run can keep its corpus locked.
const runLockTTL = 30 * time.Minute

// App bundles the wired corpus service with the resources behind it.
// Commands obtain one through buildApp and must Close it when done.
type App struct {
	Service *parse.Service
	Store   *jsonstore.Store
	Config  *config.Config
	Logger  logging.Logger

	closers []func()
}

// Close releases connections and servers in reverse construction order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp wires the full service stack from the command's configuration:
// the JSON store, the HTTP fetcher (optionally cached through redis), the
// opinion parser with its patent-data providers, the optional Postgres
// mirror, and the optional metrics exporter.  politeness spaces out batch
// requests; commands that fetch nothing pass zero.
func buildApp(cmd *cobra.Command, politeness time.Duration) (*App, error) {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return nil, err
	}
	cfg, log := cliCtx.Config, cliCtx.Logger
	ctx := cmd.Context()

	app := &App{Config: cfg, Logger: log}
	app.Store = jsonstore.New(cfg.Storage.DataDir, cfg.Storage.Suffix, log)

	client, err := fetch.NewClient(cfg.Fetch, log)
	if err != nil {
		return nil, err
	}
	var fetcher fetch.Fetcher = client

	opts := parse.Options{Politeness: politeness}

	if cfg.Redis.Enabled {
		rc, err := redis.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = rc.Close() })

		var cacheOpts []redis.PageCacheOption
		if cfg.Redis.KeyPrefix != "" {
			cacheOpts = append(cacheOpts, redis.WithKeyPrefix(cfg.Redis.KeyPrefix))
		}
		if cfg.Redis.DefaultTTL > 0 {
			cacheOpts = append(cacheOpts, redis.WithTTL(cfg.Redis.DefaultTTL))
		}
		cache := redis.NewPageCache(rc, log, cacheOpts...)
		fetcher = fetch.NewCachedFetcher(fetcher, cache, cfg.Fetch.ScholarBaseURL)
		opts.Lock = redis.NewRunLock(rc, cfg.Storage.Suffix, runLockTTL)
	}

	if cfg.Database.Enabled {
		if err := postgres.RunMigrations(postgres.MigrateDSN(cfg.Database)); err != nil {
			app.Close()
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.Database, log)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, pool.Close)
		opts.Mirror = postgres.NewCaseRepository(pool, log)
	}

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            "caselaw",
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, log)
		if err != nil {
			app.Close()
			return nil, err
		}
		opts.Metrics = prometheus.NewAppMetrics(collector)

		if cfg.Metrics.Addr != "" {
			srv := prometheus.NewServer(cfg.Metrics.Addr, cfg.Metrics.Path, collector)
			go func() {
				if err := srv.Start(); err != nil {
					log.Error("metrics server failed", logging.Err(err))
				}
			}()
			app.closers = append(app.closers, func() { _ = srv.Close() })
		}
	}

	var (
		data       patent.DataProvider
		continuity patent.ContinuityProvider
		history    patent.HistoryProvider
	)
	if !cfg.Parse.SkipPatent {
		data = googlepatents.NewScraper(fetcher, app.Store, cfg.Fetch.PatentsBaseURL, log)
	}
	if !cfg.Parse.SkipApplication {
		u := uspto.NewClient(cfg.USPTO, log)
		continuity, history = u, u
	}

	p := parser.New(log, data, continuity, history)
	app.Service = parse.NewService(fetcher, app.Store, p,
		cfg.Fetch.ScholarBaseURL, cfg.Parse, cfg.Worker, opts, log)
	return app, nil
}
