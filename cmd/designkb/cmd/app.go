package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/designkb/data"
	"github.com/kailas-cloud/designkb/internal/bm25"
	"github.com/kailas-cloud/designkb/internal/config"
	"github.com/kailas-cloud/designkb/internal/detect"
	dbRedis "github.com/kailas-cloud/designkb/internal/db/redis"
	"github.com/kailas-cloud/designkb/internal/domain/row"
	logpkg "github.com/kailas-cloud/designkb/internal/logger"
	"github.com/kailas-cloud/designkb/internal/metrics"
	"github.com/kailas-cloud/designkb/internal/registry"
	"github.com/kailas-cloud/designkb/internal/repository/rows"
	"github.com/kailas-cloud/designkb/internal/repository/source"
	compositeuc "github.com/kailas-cloud/designkb/internal/usecase/composite"
	healthuc "github.com/kailas-cloud/designkb/internal/usecase/health"
	searchuc "github.com/kailas-cloud/designkb/internal/usecase/search"
)

// dataProvider loads data sources and reports backend reachability.
type dataProvider interface {
	Load(ctx context.Context, locator string) ([]row.Row, error)
	Ping(ctx context.Context) error
}

// app is the composition root shared by all subcommands.
type app struct {
	env      string
	cfg      config.Config
	log      *zap.Logger
	registry *registry.Registry
	provider dataProvider
	store    *dbRedis.Store
	rows     *rows.Cache
	search   *searchuc.Service
	compose  *compositeuc.Service
	health   *healthuc.Service
}

// loadConfig resolves the configuration: --config, then config/<env>.yaml, then built-in defaults.
// --data-dir switches the data driver to dir.
func loadConfig(g *globalFlags) (config.Config, string, error) {
	env := g.env
	if env == "" {
		env = config.GetEnv()
	}

	var (
		cfg config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.Load(env)
		if errors.Is(err, fs.ErrNotExist) {
			cfg, err = config.Default(), nil
		}
	}
	if err != nil {
		return config.Config{}, "", err
	}

	if g.dataDir != "" {
		cfg.Data.Driver = config.DriverDir
		cfg.Data.Dir = g.dataDir
		if err := cfg.Validate(); err != nil {
			return config.Config{}, "", fmt.Errorf("invalid config: %w", err)
		}
	}
	return cfg, env, nil
}

// newApp wires configuration, logging, data access and use cases.
// defaultLevel applies when neither --log-level nor logging.level is set.
func newApp(ctx context.Context, g *globalFlags, defaultLevel string) (*app, error) {
	cfg, env, err := loadConfig(g)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := g.logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	if level == "" {
		level = defaultLevel
	}
	log, err := logpkg.NewLogger(env, level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	a := &app{env: env, cfg: cfg, log: log}

	if cfg.Registry.Path != "" {
		a.registry, err = registry.Load(cfg.Registry.Path)
		if err != nil {
			a.Close()
			return nil, err
		}
	} else {
		a.registry = registry.Default()
	}

	if err := a.openProvider(ctx); err != nil {
		a.Close()
		return nil, err
	}

	scorer, err := bm25.NewScorer(cfg.Search.Params())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create scorer: %w", err)
	}

	a.rows = rows.New(a.provider, metrics.RowCacheTotal)
	detector := detect.New(a.registry.DetectRules(), a.registry.Fallback())
	a.search = searchuc.New(a.registry, a.rows, detector, scorer)
	a.compose = compositeuc.New(a.search)
	a.health = healthuc.New(a.provider, a.rows, a.registry.Sources())

	log.Debug("designkb ready",
		zap.String("env", env),
		zap.String("data_driver", cfg.Data.Driver),
		zap.Int("domains", len(a.registry.Domains())),
		zap.Int("stacks", len(a.registry.Stacks())),
	)
	return a, nil
}

func (a *app) openProvider(ctx context.Context) error {
	switch a.cfg.Data.Driver {
	case config.DriverDir:
		a.provider = source.NewFS(os.DirFS(a.cfg.Data.Dir))
	case config.DriverRedis:
		store, err := a.openStore(ctx)
		if err != nil {
			return err
		}
		a.provider = source.NewKV(store, a.cfg.Data.KeyPrefix)
	default:
		a.provider = source.NewFS(data.FS)
	}
	return nil
}

// openStore connects to Redis and waits until it answers PING.
func (a *app) openStore(ctx context.Context) (*dbRedis.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    a.cfg.Database.Addrs,
		Password: a.cfg.Database.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis store: %w", err)
	}
	timeout := time.Duration(a.cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis not ready: %w", err)
	}
	a.log.Debug("Connected to redis", zap.Strings("addrs", a.cfg.Database.Addrs))
	a.store = store
	return store, nil
}

// context returns ctx carrying the app logger.
func (a *app) context(ctx context.Context) context.Context {
	return logpkg.ContextWithLogger(ctx, a.log)
}

// Close releases the Redis connection and flushes the logger.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
