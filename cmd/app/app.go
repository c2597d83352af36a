package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ecell/portal-api/internal/api"
	"github.com/ecell/portal-api/internal/config"
	"github.com/ecell/portal-api/internal/db"
	"github.com/ecell/portal-api/internal/logger"
	"github.com/ecell/portal-api/internal/repository/dao"
	"github.com/ecell/portal-api/internal/scheduler"
)

const (
	defaultConfigPath = "./cmd/app/config.yml"
	shutdownTimeout   = 10 * time.Second
)

func Start() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer logger.Sync()

	gormDB, err := db.Open(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			zap.L().Error("failed to close database", zap.Error(err))
		}
	}()

	if err = dao.InitTables(gormDB); err != nil {
		return fmt.Errorf("failed to initialize tables -> %w", err)
	}

	services := api.NewServices(gormDB)

	if conf.Scheduler.Enabled {
		sched, err := scheduler.NewScheduler(conf.Scheduler, services.Events)
		if err != nil {
			return fmt.Errorf("failed to initialize scheduler -> %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	s := api.NewServer(conf, services)

	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr), zap.String("driver", conf.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case sig := <-quit:
		zap.L().Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}
