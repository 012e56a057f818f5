// Package server wires the userkeeper components together and runs the
// HTTP API and the gRPC health service until the process is signalled.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/config"
	"github.com/dmitrijs2005/userkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/userkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/userkeeper/internal/server/ratelimit"
	"github.com/dmitrijs2005/userkeeper/internal/server/users"

	gs "github.com/dmitrijs2005/userkeeper/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repo    *users.MemoryRepository
	limiter *ratelimit.Limiter
	handler http.Handler
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	tokens, err := auth.NewTokenService(c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	repo := users.NewMemoryRepository()
	us := users.NewService(repo, auth.NewBcryptHasher(c.HashCost), tokens, logger)

	m := metrics.New()
	m.RegisterUserCount(repo.Len)

	limiter := ratelimit.New(c.RateLimitMax, c.RateLimitWindow)

	h := httpapi.NewHandler(httpapi.Options{
		Users:        us,
		Gateway:      auth.NewGateway(tokens),
		Limiter:      limiter,
		Metrics:      m,
		Logger:       logger,
		MaxBodyBytes: c.MaxBodyBytes,
	})

	return &App{
		config:  c,
		logger:  logger,
		repo:    repo,
		limiter: limiter,
		handler: h.Routes(),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.HTTPAddr(), app.handler, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.GRPCHealthAddr, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives or one of
// the servers fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.GRPCHealthAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.limiter.Close()
	app.logger.Info(ctx, "App stopped", "users", app.repo.Len())
}
