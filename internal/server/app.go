// Package server initializes and runs the records service: it selects the
// storage backend, wires the services, and starts the HTTP API with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"fintrack/internal/logging"
	"fintrack/internal/server/config"
	"fintrack/internal/server/db"
	"fintrack/internal/server/httpapi"
	"fintrack/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager db.RepositoryManager
	api     *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout)

	var manager db.RepositoryManager
	var err error
	if c.DatabaseDSN == "" {
		logger.Warn(context.Background(), "no database DSN configured, using in-memory storage")
		manager = db.NewInMemoryRepositoryManager()
	} else {
		manager, err = db.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	us := services.NewUserService(manager.Users(), logger, []byte(c.SecretKey), c.TokenValidityDuration)
	rs := services.NewRecordService(manager.Records(), logger)

	api := httpapi.NewServer(c.EndpointAddr, logger, us, rs)

	return &App{config: c, logger: logger, manager: manager, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.api.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
