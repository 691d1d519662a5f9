package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/cli"
	"expensetracker/internal/controller"
	"expensetracker/internal/events"
	apphttp "expensetracker/internal/http"
	"expensetracker/internal/log"
	"expensetracker/internal/model"
	"expensetracker/internal/view"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []controller.Option{
		controller.WithValidator(cfg.Rules()),
		controller.WithLogger(logger),
	}

	if cfg.EventsEnabled() {
		publisher, err := events.Dial(ctx, cfg.Events(), logger)
		if err != nil {
			logger.Error("Failed to connect to AMQP, continuing without events", log.FieldError, err)
		} else {
			defer publisher.Close()
			opts = append(opts, controller.WithEvents(publisher))
			logger.Info("Publishing transaction events", "exchange", cfg.AMQPExchange)
		}
	}

	table := view.NewTable()
	ctrl := controller.New(model.New(), table, opts...)

	// Show the empty table with its total row before the first request.
	ctrl.Refresh()

	if f, err := cfg.DefaultFilter(); err != nil {
		logger.Error("Invalid default filter", log.FieldError, err)
		os.Exit(1)
	} else if f != nil {
		ctrl.SetFilter(f)
	}

	srv := apphttp.NewServer(":"+cfg.Port, ctrl, table, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting expense tracker", log.FieldOperation, log.OpStartup, "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully", "transactions", len(ctrl.Transactions()))
}
