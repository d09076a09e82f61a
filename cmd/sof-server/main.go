// Command sof-server runs the Statement of Facts extraction service: HTTP
// API, background processing worker and SQLite persistence.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qikCode/marithon-project/internal/api"
	"github.com/qikCode/marithon-project/internal/chat"
	"github.com/qikCode/marithon-project/internal/config"
	"github.com/qikCode/marithon-project/internal/document"
	"github.com/qikCode/marithon-project/internal/extraction"
	"github.com/qikCode/marithon-project/internal/processing"
	"github.com/qikCode/marithon-project/internal/storage/sqlite"
	"github.com/qikCode/marithon-project/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "sof-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting sof-server",
		logger.String("addr", cfg.Server.Addr()),
		logger.String("database", cfg.Storage.DatabasePath))

	db, err := sqlite.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	documents := sqlite.NewDocumentStorage(db, log)
	events := sqlite.NewEventStorage(db, log)
	files := document.NewProcessor(cfg.Documents, log)
	extractor := extraction.NewService(log)

	worker := processing.NewWorker(ctx, documents, events, extractor, files, cfg.Processing, log)
	if err := worker.Start(); err != nil {
		return fmt.Errorf("starting worker: %w", err)
	}

	chatService := chat.NewService(chat.NewDataAggregator(documents, events, log), cfg.Chat, log, nil)

	router := api.NewRouter(documents, events, files, worker, chatService, cfg, log)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", logger.Error(err))
	}
	if err := worker.Stop(); err != nil {
		log.Error("Worker shutdown failed", logger.Error(err))
	}

	log.Info("Shutdown complete")
	return nil
}
