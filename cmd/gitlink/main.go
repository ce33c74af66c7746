package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sara6310472/Gitlink/internal/config"
	"github.com/sara6310472/Gitlink/internal/repository/postgres"
	"github.com/sara6310472/Gitlink/internal/service"
	myhttp "github.com/sara6310472/Gitlink/internal/transport/http"
	"github.com/sara6310472/Gitlink/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting gitlink", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := db.DB().Close(); err != nil {
			log.Error("db close failed", slog.String("error", err.Error()))
		}
	}()

	gateway := postgres.NewGateway(db.DB(), log)
	coordinator := postgres.NewCoordinator(db.DB(), log)
	users := postgres.NewUserRepository(gateway, log)
	projects := postgres.NewProjectRepository(gateway, log)
	applications := postgres.NewApplicationRepository(gateway, log)

	notifier := &service.LogNotifier{Log: log}

	userService := service.NewUserService(users, gateway, coordinator, notifier, log)
	projectService := service.NewProjectService(projects, gateway, coordinator, log)
	applicationService := service.NewApplicationService(applications, gateway, coordinator, notifier, log)

	srv := myhttp.NewServer(log, userService, projectService, applicationService)
	httpServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Routes(),
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %w", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %w", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %w", err)
	}
}
