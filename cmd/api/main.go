package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/complysort/complysort/internal/config"
	"github.com/complysort/complysort/internal/database"
	"github.com/complysort/complysort/internal/joplin"
	"github.com/complysort/complysort/internal/logger"
	"github.com/complysort/complysort/internal/organizer"
	"github.com/complysort/complysort/internal/scheduler"
	"github.com/complysort/complysort/internal/server"
	"github.com/complysort/complysort/internal/services"
	"github.com/complysort/complysort/internal/version"
)

func main() {
	// Setup logging with rotation
	logDir := "data/logs"
	_ = os.MkdirAll(logDir, 0o755)

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "complysort.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	// Log to both stdout and file
	mw := io.MultiWriter(os.Stdout, rotator)
	log.SetOutput(mw)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Init(cfg.IsDevelopment(), mw)

	// Handle one-shot CLI commands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "classify":
			runOnce(cfg, "classify")
			return
		case "rollback":
			runOnce(cfg, "rollback")
			return
		default:
			log.Fatalf("Usage: %s [classify|rollback]", os.Args[0])
		}
	}

	log.Printf("starting %s on version %s", version.Name, version.Full())

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	srv, err := server.New(db, cfg)
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	sched := scheduler.New(srv.Runs)
	if err := sched.Start(cfg.CronSpec); err != nil {
		log.Fatalf("start scheduler: %v", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("starting %s on :%s", version.Name, cfg.HTTPPort)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// runOnce executes a single classification or rollback run without the HTTP
// server, for cron jobs and shell use.
func runOnce(cfg config.Config, kind string) {
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	var annotator organizer.Annotator
	if cfg.JoplinToken != "" {
		annotator = joplin.NewClient(cfg.JoplinURL, cfg.JoplinToken)
	}
	runs := services.NewRunService(db, cfg, annotator, services.NewNotificationService(db))

	switch kind {
	case "classify":
		run, err := runs.Classify(context.Background())
		if err != nil {
			log.Fatalf("classification failed: %v", err)
		}
		fmt.Printf("classification complete: processed=%d matched=%d copies=%d unmatched=%d failures=%d\n",
			run.Processed, run.Matched, run.Copies, run.Unmatched, run.Failures)
	case "rollback":
		run, err := runs.Rollback(context.Background())
		if err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		fmt.Printf("rollback complete: attempted=%d restored=%d skipped=%d failures=%d\n",
			run.Processed, run.Matched, run.Unmatched, run.Failures)
	}
}
