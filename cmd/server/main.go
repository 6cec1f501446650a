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

	"github.com/robfig/cron/v3"

	"github.com/pep299/template-blog-publisher/internal/config"
	"github.com/pep299/template-blog-publisher/internal/di"
	"github.com/pep299/template-blog-publisher/internal/logger"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("Template Blog Publisher Server\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment Variables:\n")
		fmt.Printf("  OPENAI_API_KEY          OpenAI API key (required)\n")
		fmt.Printf("  MYSQL_DSN               WordPress database DSN (required)\n")
		fmt.Printf("  PORT                    Server port (default: 8080)\n")
		fmt.Printf("  HOST                    Server host (default: 0.0.0.0)\n")
		fmt.Printf("  ARCHIVE_BUCKET          Cloud Storage bucket for drafts (default: memory)\n")
		fmt.Printf("  ARCHIVE_RETENTION_DAYS  Days to keep drafts, 0 keeps all (default: 30)\n")
		fmt.Printf("  ARCHIVE_PRUNE_SCHEDULE  Cron spec of the prune job (default: @daily)\n")
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Template Blog Publisher Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, err := di.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create container", "error", err)
	}
	defer container.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      container.Server().SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	c := cron.New()
	if cfg.ArchiveRetentionDays > 0 {
		_, err := c.AddFunc(cfg.ArchivePruneSchedule, func() {
			cutoff := time.Now().AddDate(0, 0, -cfg.ArchiveRetentionDays)
			removed, err := container.Drafts.Prune(ctx, cutoff)
			if err != nil {
				log.Error("Draft pruning failed", "error", err)
				return
			}
			log.Info("Pruned drafts", "removed", removed, "cutoff", cutoff)
		})
		if err != nil {
			log.Fatal("Invalid prune schedule", "schedule", cfg.ArchivePruneSchedule, "error", err)
		}
		log.Info("Draft pruning scheduled", "schedule", cfg.ArchivePruneSchedule, "retention_days", cfg.ArchiveRetentionDays)
	}
	c.Start()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting server", "addr", cfg.Addr(), "version", Version)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", "error", err)
		}
	}()

	<-sigChan
	log.Info("Shutting down server")

	// Let a running prune finish before cancelling background work.
	<-c.Stop().Done()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", "error", err)
	}

	log.Info("Server stopped")
}
