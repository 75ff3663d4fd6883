// Package bootstrap builds the service graph shared by the server and the CLI
// from a loaded config.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/byigitt/kaiban/common/llm"
	"github.com/byigitt/kaiban/core/config"
	"github.com/byigitt/kaiban/core/db"
	"github.com/byigitt/kaiban/internal/dispatch"
	"github.com/byigitt/kaiban/internal/oracle"
	"github.com/byigitt/kaiban/internal/queue"
	"github.com/byigitt/kaiban/internal/service"
	"github.com/byigitt/kaiban/internal/store"
	"github.com/byigitt/kaiban/internal/store/memory"
)

type App struct {
	Config   config.Config
	Services *service.Services
	Oracle   oracle.Oracle
	DB       *db.DB        // nil with the memory backend
	Redis    *redis.Client // nil when REDIS_URL is empty

	closers []func() error
}

// Options override parts of the graph. Zero values use the config. A
// RedisClient passed in stays owned by the caller and survives Close.
type Options struct {
	Oracle      oracle.Oracle
	RedisClient *redis.Client
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	app := &App{Config: cfg}

	deps, err := app.openStores(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	o := opts.Oracle
	if o == nil {
		o, err = NewOracle(ctx, cfg.Oracle)
		if err != nil {
			app.Close()
			return nil, err
		}
	}
	app.Oracle = o
	deps.Oracle = o

	client := opts.RedisClient
	if client == nil && cfg.Redis.Enabled() {
		client, err = connectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, client.Close)
	}
	if client != nil {
		app.Redis = client
		deps.Publisher = queue.NewRedisPublisher(client, cfg.Redis.EventsStream, cfg.Redis.EventsMaxLen)
		deps.Idempotency = queue.NewRedisDeduper(client, cfg.Redis.IdempotencyTTL)
		slog.InfoContext(ctx, "redis features enabled", "stream", cfg.Redis.EventsStream)
	}

	app.Services = service.NewServices(deps)
	return app, nil
}

func (a *App) openStores(ctx context.Context, cfg config.Config) (service.Deps, error) {
	switch cfg.Store {
	case config.StoreMemory:
		mem := memory.New()
		slog.InfoContext(ctx, "using in-memory store")
		return service.Deps{
			Stores:     mem.Stores(),
			TxRunner:   service.NewMemoryTxRunner(mem),
			Dispatcher: dispatch.New(dispatch.NewMemoryTxRunner(mem)),
		}, nil
	case config.StorePostgres:
		database, err := db.New(ctx, cfg.DB)
		if err != nil {
			return service.Deps{}, fmt.Errorf("connecting to database: %w", err)
		}
		a.DB = database
		a.closers = append(a.closers, func() error {
			database.Close()
			return nil
		})
		slog.InfoContext(ctx, "database connected")
		return service.Deps{
			Stores:     store.NewStores(database.Queries()),
			TxRunner:   service.NewTxRunner(database),
			Dispatcher: dispatch.New(dispatch.NewTxRunner(database)),
		}, nil
	default:
		return service.Deps{}, fmt.Errorf("unsupported store backend: %s", cfg.Store)
	}
}

// NewOracle builds the oracle named by cfg.Provider. The scripted oracle
// starts empty and fails every command until calls are enqueued.
func NewOracle(ctx context.Context, cfg config.OracleConfig) (oracle.Oracle, error) {
	if cfg.Scripted() {
		return oracle.NewScripted(), nil
	}

	caller, err := llm.NewToolCaller(ctx, llm.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", cfg.Provider, err)
	}

	o, err := oracle.NewLLMOracle(caller, oracle.LLMOptions{
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("creating oracle: %w", err)
	}
	slog.InfoContext(ctx, "oracle ready", "provider", cfg.Provider, "model", caller.Model())
	return o, nil
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

// Ready reports whether the backing services answer. The memory backend
// is always ready.
func (a *App) Ready(ctx context.Context) error {
	if a.DB != nil {
		if err := a.DB.Ping(ctx); err != nil {
			return err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("pinging redis: %w", err)
		}
	}
	return nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
